package registry

import (
	"fmt"
	"strings"
	"time"

	"docregistry/internal/model"
)

const dateLayout = "2006-01-02"

const catalogDepartments = "departments"

// Violation records an origin or destination that is not in the catalog its document type
// requires.
type Violation struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Catalog string `json:"catalog"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s %q is not in %s", v.Field, v.Value, v.Catalog)
}

func validateDocument(doc model.Document) error {
	if !doc.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, doc.Type)
	}
	if _, err := time.Parse(dateLayout, doc.RegistrationDate); err != nil {
		return validationError("registrationDate %q is not a YYYY-MM-DD date", doc.RegistrationDate)
	}
	if doc.DocDate != "" {
		if _, err := time.Parse(dateLayout, doc.DocDate); err != nil {
			return validationError("docDate %q is not a YYYY-MM-DD date", doc.DocDate)
		}
	}
	if strings.TrimSpace(doc.Summary) == "" {
		return validationError("summary is required")
	}
	if strings.TrimSpace(doc.Origin) == "" {
		return validationError("origin is required")
	}
	if strings.TrimSpace(doc.Destination) == "" {
		return validationError("destination is required")
	}
	if !doc.Type.AutoNumbered() && strings.TrimSpace(doc.DocNumber) == "" {
		return validationError("docNumber is required for %s documents", doc.Type)
	}
	for i, a := range doc.Attachments {
		if strings.TrimSpace(a.Name) == "" {
			return validationError("attachment %d has no name", i)
		}
		if a.Size < 0 {
			return validationError("attachment %q has a negative size", a.Name)
		}
		switch a.Kind {
		case model.AttachmentLegacy, "":
		case model.AttachmentStored:
			if a.ContentRef == "" {
				return validationError("attachment %q is stored but has no contentRef", a.Name)
			}
		default:
			return validationError("attachment %q has unknown kind %q", a.Name, a.Kind)
		}
	}
	return nil
}

// checkCatalogs applies the origin/destination role matrix:
//
//	Entrada  origin free text,  destination department
//	Salida   origin department, destination free text
//	Interno  origin department, destination department
//
// An empty catalog is not checked.
func checkCatalogs(c model.Catalogs, doc model.Document) []Violation {
	var out []Violation
	dept := func(field, value string) {
		if len(c.Departments) > 0 && !c.HasDepartment(value) {
			out = append(out, Violation{Field: field, Value: value, Catalog: catalogDepartments})
		}
	}
	switch doc.Type {
	case model.TypeEntrada:
		dept("destination", doc.Destination)
	case model.TypeSalida:
		dept("origin", doc.Origin)
	case model.TypeInterno:
		dept("origin", doc.Origin)
		dept("destination", doc.Destination)
	}
	return out
}

package model

import "time"

// DocumentType is the flow direction of a registered document.
type DocumentType string

const (
	TypeEntrada DocumentType = "Entrada"
	TypeSalida  DocumentType = "Salida"
	TypeInterno DocumentType = "Interno"
)

// Valid reports whether t is one of the known flow types.
func (t DocumentType) Valid() bool {
	switch t {
	case TypeEntrada, TypeSalida, TypeInterno:
		return true
	}
	return false
}

// AutoNumbered reports whether documents of this type receive a system-generated docNumber.
func (t DocumentType) AutoNumbered() bool {
	return t == TypeSalida || t == TypeInterno
}

// Status is the workflow state of a document. Only StatusCompleted exists today.
type Status string

const StatusCompleted Status = "Completado"

// Document is one correspondence record in the registry.
// Dates are kept as ISO 8601 (YYYY-MM-DD) strings so that lexical order is chronological order.
type Document struct {
	ID               string       `json:"id"`
	Type             DocumentType `json:"type"`
	RegistrationDate string       `json:"registrationDate"`
	DocDate          string       `json:"docDate"`
	DocNumber        string       `json:"docNumber"`
	Origin           string       `json:"origin"`
	Destination      string       `json:"destination"`
	Summary          string       `json:"summary"`
	Observations     string       `json:"observations"`
	Status           Status       `json:"status"`
	Attachments      []Attachment `json:"attachments"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// Clone returns a copy that shares no slices with d.
func (d Document) Clone() Document {
	out := d
	if d.Attachments != nil {
		out.Attachments = make([]Attachment, len(d.Attachments))
		copy(out.Attachments, d.Attachments)
	}
	return out
}

// FileName is the legacy single-file column value: the first attachment's name, if any.
func (d Document) FileName() string {
	if len(d.Attachments) == 0 {
		return ""
	}
	return d.Attachments[0].Name
}

// DocumentPatch carries the fields of an edit request. Nil fields are left untouched.
type DocumentPatch struct {
	Type             *DocumentType `json:"type,omitempty"`
	RegistrationDate *string       `json:"registrationDate,omitempty"`
	DocDate          *string       `json:"docDate,omitempty"`
	DocNumber        *string       `json:"docNumber,omitempty"`
	Origin           *string       `json:"origin,omitempty"`
	Destination      *string       `json:"destination,omitempty"`
	Summary          *string       `json:"summary,omitempty"`
	Observations     *string       `json:"observations,omitempty"`
	Attachments      *[]Attachment `json:"attachments,omitempty"`
}

package model

import "slices"

// Catalogs holds the closed lists of names that constrain origin and destination fields.
type Catalogs struct {
	Departments      []string `json:"departments" yaml:"departments"`
	ExternalEntities []string `json:"externalEntities" yaml:"external_entities"`
}

// HasDepartment reports whether name is a known department.
func (c Catalogs) HasDepartment(name string) bool {
	return slices.Contains(c.Departments, name)
}

// HasExternalEntity reports whether name is a known external entity.
func (c Catalogs) HasExternalEntity(name string) bool {
	return slices.Contains(c.ExternalEntities, name)
}

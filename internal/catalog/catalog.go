// Package catalog loads the reference data document: the department and external entity
// catalogs plus the initial user accounts.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"docregistry/internal/model"
	"docregistry/internal/repository"
)

//go:embed seed.yaml
var defaultSeed []byte

// User is an account created when the users table is empty. Password is plain text in the
// seed document and hashed before it is stored.
type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Name     string `yaml:"name"`
}

// Seed is the reference data document.
type Seed struct {
	model.Catalogs `yaml:",inline"`
	Users          []User `yaml:"users"`
}

// Default returns the embedded seed document.
func Default() (Seed, error) {
	return Parse(defaultSeed)
}

// Load reads the seed document at path, or the embedded default when path is empty.
func Load(path string) (Seed, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a seed document. Unknown keys are rejected.
func Parse(data []byte) (Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Seed{}, err
	}
	return s, nil
}

// Validate rejects blank and duplicate entries.
func (s Seed) Validate() error {
	var errs []error
	errs = append(errs, checkNames("departments", s.Departments)...)
	errs = append(errs, checkNames("external_entities", s.ExternalEntities)...)

	users := make(map[string]struct{}, len(s.Users))
	for i, u := range s.Users {
		if u.Username == "" || u.Password == "" {
			errs = append(errs, fmt.Errorf("users[%d]: username and password are required", i))
			continue
		}
		if _, dup := users[u.Username]; dup {
			errs = append(errs, fmt.Errorf("users[%d]: duplicate username %q", i, u.Username))
		}
		users[u.Username] = struct{}{}
	}
	return errors.Join(errs...)
}

func checkNames(list string, names []string) []error {
	var errs []error
	seen := make(map[string]struct{}, len(names))
	for i, n := range names {
		if n == "" {
			errs = append(errs, fmt.Errorf("%s[%d]: empty name", list, i))
			continue
		}
		if _, dup := seen[n]; dup {
			errs = append(errs, fmt.Errorf("%s[%d]: duplicate name %q", list, i, n))
		}
		seen[n] = struct{}{}
	}
	return errs
}

// Static serves catalogs held in memory. Backends without catalog tables use it.
type Static struct {
	catalogs model.Catalogs
}

// NewStatic returns a repository over c.
func NewStatic(c model.Catalogs) *Static {
	return &Static{catalogs: c}
}

var _ repository.CatalogRepository = (*Static)(nil)

func (s *Static) Catalogs(context.Context) (model.Catalogs, error) {
	return s.catalogs, nil
}

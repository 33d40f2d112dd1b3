package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docregistry/internal/model"
)

func TestDefault(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Len(t, s.Departments, 13)
	assert.Equal(t, "Pleno", s.Departments[0])
	assert.Equal(t, "Secretaría General", s.Departments[12])
	assert.True(t, s.HasExternalEntity("Ministerio de Defensa Nacional"))
	assert.True(t, s.HasExternalEntity("IMPYDE"))
	require.Len(t, s.Users, 2)
	assert.Equal(t, User{Username: "admin", Password: "admin123", Role: "Admin", Name: "Administrador Sistema"}, s.Users[0])
	assert.Equal(t, "Receptionist", s.Users[1].Role)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
departments: [Archivo, Dirección]
external_entities: [Ministerio]
`), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Archivo", "Dirección"}, s.Departments)
	assert.Equal(t, []string{"Ministerio"}, s.ExternalEntities)
	assert.Empty(t, s.Users)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read seed file")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "unknown key", doc: "departmentz: [A]", wantErr: "parse seed"},
		{name: "duplicate department", doc: "departments: [A, A]", wantErr: `departments[1]: duplicate name "A"`},
		{name: "empty entity", doc: `external_entities: [""]`, wantErr: "external_entities[0]: empty name"},
		{
			name:    "user without password",
			doc:     "users:\n  - username: admin\n",
			wantErr: "users[0]: username and password are required",
		},
		{
			name:    "duplicate user",
			doc:     "users:\n  - {username: a, password: x}\n  - {username: a, password: y}\n",
			wantErr: `users[1]: duplicate username "a"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStatic(t *testing.T) {
	c := model.Catalogs{Departments: []string{"Pleno"}}
	got, err := NewStatic(c).Catalogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

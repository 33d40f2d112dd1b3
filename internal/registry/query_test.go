package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docregistry/internal/model"
)

func ids(docs []model.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	docs := []model.Document{
		{ID: "001", Type: model.TypeEntrada, Summary: "Informe anual", Origin: "Ministerio X", Destination: "Secretaría General", RegistrationDate: "2024-05-01", DocDate: "2024-04-28"},
		{ID: "002", Type: model.TypeSalida, Summary: "Convocatoria", Origin: "Pleno", Destination: "GETESA", DocNumber: "CNDES/SAL/2024/001", RegistrationDate: "2024-06-11", DocDate: "2024-06-11", Observations: "Urgente"},
		{ID: "003", Type: model.TypeInterno, Summary: "Memorándum", Origin: "Presidente", Destination: "Consejería", DocNumber: "CNDES/INT/2024/001", RegistrationDate: "2024-07-02", DocDate: "2024-07-01"},
	}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "summary case-insensitive", term: "informe", want: []string{"001"}},
		{name: "no match", term: "zzz", want: []string{}},
		{name: "empty term matches all", term: "", want: []string{"001", "002", "003"}},
		{name: "id", term: "003", want: []string{"003"}},
		{name: "origin", term: "ministerio x", want: []string{"001"}},
		{name: "destination", term: "getesa", want: []string{"002"}},
		{name: "doc number", term: "cndes/int", want: []string{"003"}},
		{name: "observations", term: "URGENTE", want: []string{"002"}},
		{name: "type", term: "salida", want: []string{"002"}},
		{name: "registration date", term: "2024-06", want: []string{"002"}},
		{name: "doc date", term: "04-28", want: []string{"001"}},
		{name: "any field matches", term: "2024/001", want: []string{"002", "003"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(docs, tt.term)))
		})
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	docs := []model.Document{{ID: "001", Summary: "a"}, {ID: "002", Summary: "b"}}
	_ = Filter(docs, "b")
	assert.Equal(t, []string{"001", "002"}, ids(docs))
}

func TestSort(t *testing.T) {
	t.Run("same date sorts by id descending", func(t *testing.T) {
		docs := []model.Document{
			{ID: "001", RegistrationDate: "2024-05-01"},
			{ID: "003", RegistrationDate: "2024-05-01"},
		}
		Sort(docs)
		assert.Equal(t, []string{"003", "001"}, ids(docs))
	})

	t.Run("newer date first", func(t *testing.T) {
		docs := []model.Document{
			{ID: "009", RegistrationDate: "2023-12-31"},
			{ID: "002", RegistrationDate: "2024-01-02"},
			{ID: "005", RegistrationDate: "2024-01-02"},
			{ID: "100", RegistrationDate: "2023-12-31"},
		}
		Sort(docs)
		assert.Equal(t, []string{"005", "002", "100", "009"}, ids(docs))
	})

	t.Run("ids compare as strings", func(t *testing.T) {
		docs := []model.Document{
			{ID: "99", RegistrationDate: "2024-01-01"},
			{ID: "100", RegistrationDate: "2024-01-01"},
		}
		Sort(docs)
		assert.Equal(t, []string{"99", "100"}, ids(docs))
	})
}

func TestQuery(t *testing.T) {
	docs := []model.Document{
		{ID: "001", Summary: "Informe", RegistrationDate: "2024-01-01"},
		{ID: "002", Summary: "Acta", RegistrationDate: "2024-03-01"},
		{ID: "003", Summary: "Informe final", RegistrationDate: "2024-02-01"},
	}
	assert.Equal(t, []string{"003", "001"}, ids(Query(docs, "informe")))
}

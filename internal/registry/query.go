package registry

import (
	"sort"
	"strings"

	"docregistry/internal/model"
)

// Filter returns the documents for which term is a case-insensitive substring of any
// searchable field. An empty term matches every document. The input is not modified.
func Filter(docs []model.Document, term string) []model.Document {
	out := make([]model.Document, 0, len(docs))
	needle := strings.ToLower(term)
	for _, d := range docs {
		if needle == "" || matches(d, needle) {
			out = append(out, d)
		}
	}
	return out
}

func matches(d model.Document, needle string) bool {
	fields := [...]string{
		d.ID,
		d.Summary,
		d.Origin,
		d.Destination,
		d.DocNumber,
		d.Observations,
		string(d.Type),
		d.RegistrationDate,
		d.DocDate,
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Sort orders docs in place by registration date, newest first, breaking ties by id in
// descending lexicographic order. Ids compare as strings, which matches numeric order only
// while every id has the same zero-padded width.
func Sort(docs []model.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := docs[i], docs[j]
		if a.RegistrationDate != b.RegistrationDate {
			return a.RegistrationDate > b.RegistrationDate
		}
		return a.ID > b.ID
	})
}

// Query filters docs by term and returns the matches sorted.
func Query(docs []model.Document, term string) []model.Document {
	out := Filter(docs, term)
	Sort(out)
	return out
}

package blob

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docregistry/internal/model"
	"docregistry/internal/repository"
)

type mapBackend struct {
	values  map[string][]byte
	readErr error
}

func newMapBackend() *mapBackend {
	return &mapBackend{values: make(map[string][]byte)}
}

func (m *mapBackend) Read(_ context.Context, key string) ([]byte, bool, error) {
	if m.readErr != nil {
		return nil, false, m.readErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mapBackend) Write(_ context.Context, key string, data []byte) error {
	m.values[key] = data
	return nil
}

func TestStore_EmptyBackend(t *testing.T) {
	ctx := context.Background()
	s := New(newMapBackend(), "")

	docs, err := s.LoadDocuments(ctx)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)

	counters, err := s.LoadCounters(ctx)
	require.NoError(t, err)
	assert.Nil(t, counters)
}

func TestStore_DocumentsRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := newMapBackend()
	s := New(backend, "test:")

	modified := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	docs := []model.Document{
		{
			ID:               "002",
			Type:             model.TypeSalida,
			RegistrationDate: "2024-05-02",
			DocNumber:        "CNDES/SAL/2024/001",
			Attachments: []model.Attachment{
				model.StoredAttachment("oficio.pdf", 1024, "application/pdf", "attachments/oficio.pdf", &modified),
			},
			CreatedAt: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
		},
		{ID: "001", Type: model.TypeEntrada, RegistrationDate: "2024-05-01", Attachments: []model.Attachment{}},
	}
	require.NoError(t, s.SaveDocuments(ctx, docs))
	assert.Contains(t, backend.values, "test:cndes_documents")
	assert.Contains(t, string(backend.values["test:cndes_documents"]), `"fileName":"oficio.pdf"`)

	got, err := s.LoadDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, docs, got)
}

func TestStore_LegacyFileName(t *testing.T) {
	backend := newMapBackend()
	backend.values[DocumentsKey] = []byte(`[{"id":"001","type":"Entrada","registrationDate":"2023-01-10","fileName":"escaneo.jpg"}]`)
	s := New(backend, "")

	docs, err := s.LoadDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, []model.Attachment{model.LegacyAttachment("escaneo.jpg")}, docs[0].Attachments)
}

func TestStore_BrowserFileAttachments(t *testing.T) {
	backend := newMapBackend()
	backend.values[DocumentsKey] = []byte(`[{"id":"001","type":"Entrada","registrationDate":"2024-05-01",` +
		`"attachments":[{"name":"a.pdf","size":10,"type":"application/pdf","lastModified":1714557600000,"url":"blob:http://localhost/1"}]}]`)
	s := New(backend, "")

	docs, err := s.LoadDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	modified := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, []model.Attachment{{
		Kind:         model.AttachmentLegacy,
		Name:         "a.pdf",
		Size:         10,
		MimeType:     "application/pdf",
		LastModified: &modified,
	}}, docs[0].Attachments)
}

func TestStore_CountersRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := newMapBackend()
	backend.values[CountersKey] = []byte(`{"salida":5,"interno":3,"year":2023}`)
	s := New(backend, "")

	got, err := s.LoadCounters(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.CounterState{SalidaCount: 5, InternoCount: 3, Year: 2023}, *got)

	require.NoError(t, s.SaveCounters(ctx, model.CounterState{SalidaCount: 1, Year: 2024, OrderSeq: 9}))
	assert.JSONEq(t, `{"salida":1,"interno":0,"year":2024,"orderSeq":9}`, string(backend.values[CountersKey]))
}

func TestStore_CorruptSlots(t *testing.T) {
	ctx := context.Background()
	backend := newMapBackend()
	backend.values[DocumentsKey] = []byte(`{not json`)
	backend.values[CountersKey] = []byte(`[]`)
	s := New(backend, "")

	_, err := s.LoadDocuments(ctx)
	assert.ErrorIs(t, err, repository.ErrCorruptSlot)

	_, err = s.LoadCounters(ctx)
	assert.ErrorIs(t, err, repository.ErrCorruptSlot)
}

func TestStore_BackendError(t *testing.T) {
	backend := newMapBackend()
	backend.readErr = errors.New("unreachable")
	s := New(backend, "")

	_, err := s.LoadDocuments(context.Background())
	assert.EqualError(t, err, "unreachable")
}

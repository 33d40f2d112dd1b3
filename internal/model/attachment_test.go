package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachment_UnmarshalJSON(t *testing.T) {
	modified := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want Attachment
	}{
		{
			name: "browser file shape",
			in:   `{"name":"a.pdf","size":10,"type":"application/pdf","lastModified":1714557600000,"url":"blob:http://localhost/x"}`,
			want: Attachment{Kind: AttachmentLegacy, Name: "a.pdf", Size: 10, MimeType: "application/pdf", LastModified: &modified},
		},
		{
			name: "current shape",
			in:   `{"kind":"stored","name":"a.pdf","size":10,"mimeType":"application/pdf","lastModified":"2024-05-01T10:00:00Z","contentRef":"attachments/a.pdf"}`,
			want: StoredAttachment("a.pdf", 10, "application/pdf", "attachments/a.pdf", &modified),
		},
		{
			name: "mimeType wins over type",
			in:   `{"name":"a.pdf","mimeType":"application/pdf","type":"text/plain","contentRef":"k"}`,
			want: Attachment{Kind: AttachmentStored, Name: "a.pdf", MimeType: "application/pdf", ContentRef: "k"},
		},
		{
			name: "null lastModified",
			in:   `{"kind":"legacy","name":"scan.jpg","lastModified":null}`,
			want: LegacyAttachment("scan.jpg"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Attachment
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttachment_UnmarshalJSON_BadLastModified(t *testing.T) {
	var a Attachment
	assert.ErrorContains(t, json.Unmarshal([]byte(`{"name":"a","lastModified":true}`), &a), "lastModified")
}

func TestAttachment_RoundTrip(t *testing.T) {
	modified := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	in := StoredAttachment("a.pdf", 10, "application/pdf", "attachments/a.pdf", &modified)

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"type"`)

	var out Attachment
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

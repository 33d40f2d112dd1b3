package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// AttachmentKind tags which variant of Attachment a value holds.
type AttachmentKind string

const (
	// AttachmentLegacy only carries a file name migrated from the old single fileName column.
	AttachmentLegacy AttachmentKind = "legacy"
	// AttachmentStored carries full metadata and a reference to the stored bytes.
	AttachmentStored AttachmentKind = "stored"
)

// Attachment is file metadata attached to a document. The bytes themselves live outside the
// registry and are reachable through ContentRef.
type Attachment struct {
	Kind         AttachmentKind `json:"kind"`
	Name         string         `json:"name"`
	Size         int64          `json:"size"`
	MimeType     string         `json:"mimeType,omitempty"`
	LastModified *time.Time     `json:"lastModified,omitempty"`
	ContentRef   string         `json:"contentRef,omitempty"`
}

// LegacyAttachment builds the metadata-only variant for a bare file name.
func LegacyAttachment(name string) Attachment {
	return Attachment{Kind: AttachmentLegacy, Name: name}
}

// StoredAttachment builds the variant that references stored content.
func StoredAttachment(name string, size int64, mimeType, contentRef string, lastModified *time.Time) Attachment {
	return Attachment{
		Kind:         AttachmentStored,
		Name:         name,
		Size:         size,
		MimeType:     mimeType,
		LastModified: lastModified,
		ContentRef:   contentRef,
	}
}

// Normalize fills Kind for values decoded without it: anything with a content reference is
// stored, anything else is legacy.
func (a Attachment) Normalize() Attachment {
	if a.Kind == "" {
		if a.ContentRef != "" {
			a.Kind = AttachmentStored
		} else {
			a.Kind = AttachmentLegacy
		}
	}
	return a
}

// HasContent reports whether the attachment can be resolved to bytes.
func (a Attachment) HasContent() bool {
	return a.Kind == AttachmentStored && a.ContentRef != ""
}

// UnmarshalJSON also accepts the browser File shape older records were saved with: the MIME
// type under "type" and lastModified as epoch milliseconds. A missing kind is normalized.
func (a *Attachment) UnmarshalJSON(data []byte) error {
	type plain Attachment
	var raw struct {
		plain
		LastModified json.RawMessage `json:"lastModified"`
		Type         string          `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Attachment(raw.plain)
	if out.MimeType == "" {
		out.MimeType = raw.Type
	}
	modified, err := decodeLastModified(raw.LastModified)
	if err != nil {
		return err
	}
	out.LastModified = modified
	*a = out.Normalize()
	return nil
}

func decodeLastModified(raw json.RawMessage) (*time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var t time.Time
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("lastModified: %w", err)
		}
		return &t, nil
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return nil, fmt.Errorf("lastModified: %w", err)
	}
	t := time.UnixMilli(int64(ms)).UTC()
	return &t, nil
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"docregistry/internal/model"
	"docregistry/internal/repository"
)

// RegistryPostgres is a PostgreSQL implementation of repository.Persistence.
// It uses database/sql with parameterized queries and contains no business logic.
type RegistryPostgres struct {
	db *sql.DB
}

// NewRegistryPostgres creates a new RegistryPostgres repository.
func NewRegistryPostgres(db *sql.DB) *RegistryPostgres {
	return &RegistryPostgres{db: db}
}

var (
	_ repository.Persistence       = (*RegistryPostgres)(nil)
	_ repository.CatalogRepository = (*RegistryPostgres)(nil)
)

const documentColumns = `id, registration_date, type, doc_number, doc_date, origin, destination,
		summary, observations, status, file_name, attachments, created_at`

// LoadDocuments returns every row, newest first.
func (r *RegistryPostgres) LoadDocuments(ctx context.Context) ([]model.Document, error) {
	q := `SELECT ` + documentColumns + `
		FROM documents
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		var (
			d           model.Document
			fileName    sql.NullString
			attachments []byte
		)
		if err := rows.Scan(
			&d.ID,
			&d.RegistrationDate,
			&d.Type,
			&d.DocNumber,
			&d.DocDate,
			&d.Origin,
			&d.Destination,
			&d.Summary,
			&d.Observations,
			&d.Status,
			&fileName,
			&attachments,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		d.Attachments, err = decodeAttachments(attachments, fileName.String)
		if err != nil {
			return nil, fmt.Errorf("%w: document %s: %v", repository.ErrCorruptSlot, d.ID, err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// SaveDocuments replaces the table contents inside one transaction.
func (r *RegistryPostgres) SaveDocuments(ctx context.Context, docs []model.Document) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return err
	}

	q := `INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for _, d := range docs {
		var attachments []byte
		attachments, err = json.Marshal(nonNil(d.Attachments))
		if err != nil {
			return fmt.Errorf("encode attachments of %s: %w", d.ID, err)
		}
		if _, err = tx.ExecContext(ctx, q,
			d.ID,
			d.RegistrationDate,
			d.Type,
			d.DocNumber,
			d.DocDate,
			d.Origin,
			d.Destination,
			d.Summary,
			d.Observations,
			d.Status,
			nullString(d.FileName()),
			attachments,
			d.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert document %s: %w", d.ID, err)
		}
	}
	return tx.Commit()
}

// LoadCounters reads the singleton counters row; it returns nil when the row is absent.
func (r *RegistryPostgres) LoadCounters(ctx context.Context) (*model.CounterState, error) {
	const q = `
		SELECT salida_count, interno_count, year, order_seq
		FROM counters
		WHERE id = 1
	`
	var c model.CounterState
	if err := r.db.QueryRowContext(ctx, q).Scan(&c.SalidaCount, &c.InternoCount, &c.Year, &c.OrderSeq); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// SaveCounters upserts the singleton counters row.
func (r *RegistryPostgres) SaveCounters(ctx context.Context, state model.CounterState) error {
	const q = `
		INSERT INTO counters (id, salida_count, interno_count, year, order_seq)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			salida_count = EXCLUDED.salida_count,
			interno_count = EXCLUDED.interno_count,
			year = EXCLUDED.year,
			order_seq = EXCLUDED.order_seq
	`
	_, err := r.db.ExecContext(ctx, q, state.SalidaCount, state.InternoCount, state.Year, state.OrderSeq)
	return err
}

// Catalogs reads both seeded catalog tables in their seeding order.
func (r *RegistryPostgres) Catalogs(ctx context.Context) (model.Catalogs, error) {
	departments, err := r.names(ctx, `SELECT name FROM departments ORDER BY position, name`)
	if err != nil {
		return model.Catalogs{}, fmt.Errorf("load departments: %w", err)
	}
	entities, err := r.names(ctx, `SELECT name FROM external_entities ORDER BY position, name`)
	if err != nil {
		return model.Catalogs{}, fmt.Errorf("load external entities: %w", err)
	}
	return model.Catalogs{Departments: departments, ExternalEntities: entities}, nil
}

func (r *RegistryPostgres) names(ctx context.Context, q string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// decodeAttachments reads the attachments column, falling back to the legacy file_name
// column for rows written before attachments existed.
func decodeAttachments(raw []byte, fileName string) ([]model.Attachment, error) {
	var out []model.Attachment
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
	}
	if len(out) == 0 && fileName != "" {
		return []model.Attachment{model.LegacyAttachment(fileName)}, nil
	}
	return nonNil(out), nil
}

func nonNil(a []model.Attachment) []model.Attachment {
	if a == nil {
		return []model.Attachment{}
	}
	return a
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

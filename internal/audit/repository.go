package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the audit timeline. Writes go through Insert only.
type Repository interface {
	ListByCompany(ctx context.Context, companyID string, limit int) ([]Entry, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListByCompany(ctx context.Context, companyID string, limit int) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `SELECT id, company_id, entity_type, entity_id, action, payload_json, created_at, created_by
FROM audit_log WHERE company_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var raw string
		if err := rows.Scan(&entry.ID, &entry.CompanyID, &entry.EntityType, &entry.EntityID, &entry.Action, &raw, &entry.CreatedAt, &entry.CreatedBy); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &entry.Payload); err != nil {
			entry.Payload = map[string]any{"raw": raw}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

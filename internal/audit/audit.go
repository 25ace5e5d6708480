// Package audit appends immutable records of ledger mutations. Entries
// are written with the caller's transaction so that an entry exists iff
// the mutation it documents committed.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Entry is one append-only audit record.
type Entry struct {
	ID         string         `json:"id"`
	CompanyID  string         `json:"company_id"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Action     string         `json:"action"`
	Payload    map[string]any `json:"payload"`
	CreatedAt  string         `json:"created_at"`
	CreatedBy  string         `json:"created_by"`
}

// Insert writes the entry using the surrounding transaction. There is no
// pool-backed variant: audit entries must never outlive a rolled-back
// mutation.
func Insert(ctx context.Context, tx pgx.Tx, entry Entry) error {
	if entry.Action == "" || entry.EntityType == "" || entry.EntityID == "" {
		return errors.New("audit: entry requires action, entity_type and entity_id")
	}
	payload := entry.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("audit: marshal payload: %w", err)
	}
	_, err = tx.Exec(ctx, `INSERT INTO audit_log (id, company_id, entity_type, entity_id, action, payload_json, created_at, created_by)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		entry.ID, entry.CompanyID, entry.EntityType, entry.EntityID, entry.Action, string(raw), entry.CreatedAt, entry.CreatedBy)
	return err
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/afterschool-console/internal/models"
)

const auditSchema = `CREATE TABLE IF NOT EXISTS console_transition_audit (
	id UUID PRIMARY KEY,
	session_id TEXT NOT NULL,
	actor_role TEXT NOT NULL,
	actor_name TEXT NOT NULL DEFAULT '',
	kind TEXT NOT NULL,
	target_id TEXT NOT NULL DEFAULT '',
	payload JSONB,
	outcome TEXT NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	request_id TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
)`

// AuditRepository journals console transitions into Postgres.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository constructs an audit repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// EnsureSchema creates the journal table when missing.
func (r *AuditRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, auditSchema); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

// Record stores one transition entry.
func (r *AuditRepository) Record(ctx context.Context, entry *models.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO console_transition_audit (id, session_id, actor_role, actor_name, kind, target_id, payload, outcome, message, request_id, created_at) VALUES (:id, :session_id, :actor_role, :actor_name, :kind, :target_id, :payload, :outcome, :message, :request_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

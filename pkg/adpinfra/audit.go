package adpinfra

import (
	"context"
	"time"

	"github.com/abraxas-iag/gateway/pkg/adp"
	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

// AuditRecord is one row of the delegation_audit table: the raw signed
// envelope accepted for a given (subject, agent_id, tool_id), kept for
// audit.
type AuditRecord struct {
	ID        int64     `db:"id"`
	Subject   string    `db:"subject"`
	AgentID   string    `db:"agent_id"`
	ToolID    string    `db:"tool_id"`
	Envelope  string    `db:"envelope"`
	CreatedAt time.Time `db:"created_at"`
}

// AuditRepository persists accepted delegation envelopes to Postgres via
// sqlx in a repository-over-sqlx style; it is the module's only
// Postgres-backed store.
type AuditRepository struct {
	db *sqlx.DB
}

func OpenAuditRepository(dsn string) (*AuditRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, err
	}
	return &AuditRepository{db: db}, nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS delegation_audit (
	id SERIAL PRIMARY KEY,
	subject TEXT NOT NULL,
	agent_id TEXT NOT NULL,
	tool_id TEXT NOT NULL,
	envelope TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (r *AuditRepository) Close() error {
	return r.db.Close()
}

// Record inserts one accepted delegation envelope into the audit trail.
func (r *AuditRepository) Record(ctx context.Context, d adp.Delegation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO delegation_audit (subject, agent_id, tool_id, envelope) VALUES ($1, $2, $3, $4)`,
		d.Subject.String(), d.AgentID.String(), d.ToolID.String(), d.Envelope,
	)
	return err
}

// ForKey lists the audit trail for one (subject, agent_id, tool_id), most
// recent first.
func (r *AuditRepository) ForKey(ctx context.Context, subject, agentID, toolID string) ([]AuditRecord, error) {
	var out []AuditRecord
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, subject, agent_id, tool_id, envelope, created_at FROM delegation_audit
		 WHERE subject = $1 AND agent_id = $2 AND tool_id = $3
		 ORDER BY created_at DESC`,
		subject, agentID, toolID,
	)
	return out, err
}

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/hireflow/assess/model"
)

// RegisterCandidate inserts a new candidate row and returns its id.
// Candidates are append-only; there is no update or delete path.
func RegisterCandidate(ctx context.Context, db *sql.DB, c model.Candidate) (int, error) {
	if c.Role == "" {
		c.Role = model.RoleCandidate
	}

	var id int
	err := db.QueryRowContext(ctx, `
		INSERT INTO candidate (name, email, doc, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		c.Name, c.Email, c.Doc, c.Role, time.Now().UTC(),
	).Scan(&id)
	return id, err
}

func CandidateExists(ctx context.Context, db *sql.DB, id int) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx,
		"SELECT 1 FROM candidate WHERE id = ?", id,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

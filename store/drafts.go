package store

import (
	"context"
	"database/sql"
	"time"
)

// SaveDrafts upserts the given responses for one candidate in a single
// transaction. Saving the same key again overwrites response and timestamp;
// it never accumulates duplicate rows.
func SaveDrafts(ctx context.Context, db *sql.DB, candidateID int, answers map[int]string) error {
	if len(answers) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO draft_answer (candidate_id, question_id, response_text, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (candidate_id, question_id)
		DO UPDATE SET response_text = excluded.response_text, updated_at = excluded.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for questionID, text := range answers {
		_, err = stmt.ExecContext(ctx, candidateID, questionID, text, now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadDrafts returns every saved draft for the candidate, reflecting the
// latest upsert per question. No drafts is an empty map, not an error.
func LoadDrafts(ctx context.Context, db *sql.DB, candidateID int) (map[int]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT question_id, response_text
		FROM draft_answer
		WHERE candidate_id = ?`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drafts := map[int]string{}
	for rows.Next() {
		var questionID int
		var text string
		if err = rows.Scan(&questionID, &text); err != nil {
			return nil, err
		}
		drafts[questionID] = text
	}
	return drafts, rows.Err()
}

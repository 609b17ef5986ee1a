package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/hireflow/assess/log"
	"github.com/hireflow/assess/model"
	"github.com/hireflow/assess/scoring"
)

// Finalize scores the buffered responses against the catalog and persists the
// attempt: one submission row, one answer row per objective question (absent
// responses score as empty strings) and one free_response row per answered
// free-text question, all in a single transaction. Submissions are write-once;
// calling Finalize again appends a new one, it never touches a prior row.
func Finalize(ctx context.Context, db *sql.DB, questions []model.Question, candidateID int, startedAt, finishedAt time.Time, buffer map[int]string) (int, error) {
	duration := finishedAt.Sub(startedAt).Seconds()
	if duration < 0 {
		// a stale resumed-session clock must not persist a negative duration
		log.Warnf("store.finalize: negative duration %.1fs for candidate %d, clamping to 0", duration, candidateID)
		duration = 0
	}

	total := 0
	records := make([]model.AnswerRecord, 0, len(questions))
	var freeTexts []model.FreeResponse
	for _, q := range questions {
		response := buffer[q.ID]
		if !q.Objective() {
			if strings.TrimSpace(response) != "" {
				freeTexts = append(freeTexts, model.FreeResponse{QuestionID: q.ID, ResponseText: response})
			}
			continue
		}

		correct, awarded := scoring.Score(q, response)
		total += awarded
		records = append(records, model.AnswerRecord{
			QuestionID:   q.ID,
			ResponseText: response,
			IsCorrect:    correct,
			ScoreAwarded: awarded,
		})
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var submissionID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO submission (candidate_id, started_at, finished_at, duration_sec, score_total)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		candidateID, startedAt.UTC(), finishedAt.UTC(), duration, total,
	).Scan(&submissionID)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO answer (submission_id, question_id, response_text, is_correct, score_awarded)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err = stmt.ExecContext(ctx, submissionID, rec.QuestionID, rec.ResponseText, rec.IsCorrect, rec.ScoreAwarded)
		if err != nil {
			return 0, err
		}
	}

	for _, fr := range freeTexts {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO free_response (submission_id, question_id, response_text)
			VALUES (?, ?, ?)`,
			submissionID, fr.QuestionID, fr.ResponseText,
		)
		if err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return submissionID, nil
}

// GetSubmission reads one submission row back.
func GetSubmission(ctx context.Context, db *sql.DB, id int) (model.Submission, error) {
	var s model.Submission
	err := db.QueryRowContext(ctx, `
		SELECT id, candidate_id, started_at, finished_at, duration_sec, score_total
		FROM submission
		WHERE id = ?`,
		id,
	).Scan(&s.ID, &s.CandidateID, &s.StartedAt, &s.FinishedAt, &s.DurationSec, &s.ScoreTotal)
	return s, err
}

package store

import (
	"context"
	"database/sql"

	"github.com/hireflow/assess/model"
)

// Summarize builds the reviewer rollup, one row per submission, joined to its
// candidate and answer records. Submissions without answer rows roll up to
// zero counts, never NULL. It reads only persisted rows and can be recomputed
// at any time.
func Summarize(ctx context.Context, db *sql.DB) ([]model.SubmissionSummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT
			s.id, s.candidate_id, c.name, c.email, c.doc,
			COALESCE(SUM(a.is_correct), 0),
			COALESCE(SUM(1 - a.is_correct), 0),
			COALESCE(SUM(a.score_awarded), 0),
			s.score_total, s.duration_sec, s.started_at, s.finished_at
		FROM submission s
		JOIN candidate c ON (c.id = s.candidate_id)
		LEFT OUTER JOIN answer a ON (a.submission_id = s.id)
		GROUP BY s.id
		ORDER BY s.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []model.SubmissionSummary{}
	for rows.Next() {
		var sum model.SubmissionSummary
		err = rows.Scan(
			&sum.SubmissionID, &sum.CandidateID, &sum.Name, &sum.Email, &sum.Doc,
			&sum.Correct, &sum.Incorrect, &sum.PointsAwarded,
			&sum.ScoreTotal, &sum.DurationSec, &sum.StartedAt, &sum.FinishedAt,
		)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// KPIs computes the reviewer dashboard metrics over the whole cohort.
// Averages over an empty cohort are 0, not NULL.
func KPIs(ctx context.Context, db *sql.DB) (model.KPI, error) {
	var kpi model.KPI
	err := db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM candidate WHERE role = ?),
			(SELECT COUNT(*) FROM submission),
			(SELECT COALESCE(AVG(score_total), 0) FROM submission),
			(SELECT COALESCE(AVG(duration_sec), 0) FROM submission)`,
		model.RoleCandidate,
	).Scan(&kpi.Candidates, &kpi.Submissions, &kpi.MeanScore, &kpi.MeanDurationSec)
	return kpi, err
}

// ListAnswers returns every persisted answer record in submission order, for
// the reviewer's per-question comparative view.
func ListAnswers(ctx context.Context, db *sql.DB) ([]model.AnswerRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT submission_id, question_id, response_text, is_correct, score_awarded
		FROM answer
		ORDER BY submission_id, question_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.AnswerRecord{}
	for rows.Next() {
		var rec model.AnswerRecord
		err = rows.Scan(&rec.SubmissionID, &rec.QuestionID, &rec.ResponseText, &rec.IsCorrect, &rec.ScoreAwarded)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListFreeResponses returns the free-text answers awaiting manual review.
func ListFreeResponses(ctx context.Context, db *sql.DB) ([]model.FreeResponse, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT submission_id, question_id, response_text
		FROM free_response
		ORDER BY submission_id, question_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []model.FreeResponse{}
	for rows.Next() {
		var fr model.FreeResponse
		if err = rows.Scan(&fr.SubmissionID, &fr.QuestionID, &fr.ResponseText); err != nil {
			return nil, err
		}
		responses = append(responses, fr)
	}
	return responses, rows.Err()
}

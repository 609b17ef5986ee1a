package model

import "time"

type QuestionType string

const (
	MCQ      QuestionType = "MCQ"
	Formula  QuestionType = "FORMULA"
	FreeText QuestionType = "FREE_TEXT"
)

const (
	RoleCandidate = "candidate"
	RoleReviewer  = "reviewer"
)

type Question struct {
	ID       int          `json:"id"`
	Category string       `json:"category"`
	Type     QuestionType `json:"type"`
	Points   int          `json:"points"`
	Prompt   string       `json:"prompt"`
	Options  []Option     `json:"options,omitempty"`
	Golden   string       `json:"golden_answer,omitempty"`
}

// Objective questions are auto-scorable; free text goes to manual review.
func (q Question) Objective() bool {
	return q.Type == MCQ || q.Type == Formula
}

type Option struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

type Candidate struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Doc       string    `json:"doc"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type DraftAnswer struct {
	CandidateID  int       `json:"candidate_id"`
	QuestionID   int       `json:"question_id"`
	ResponseText string    `json:"response_text"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Submission struct {
	ID          int       `json:"id"`
	CandidateID int       `json:"candidate_id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	DurationSec float64   `json:"duration_sec"`
	ScoreTotal  int       `json:"score_total"`
}

type AnswerRecord struct {
	SubmissionID int    `json:"submission_id"`
	QuestionID   int    `json:"question_id"`
	ResponseText string `json:"response_text"`
	IsCorrect    bool   `json:"is_correct"`
	ScoreAwarded int    `json:"score_awarded"`
}

type FreeResponse struct {
	SubmissionID int    `json:"submission_id"`
	QuestionID   int    `json:"question_id"`
	ResponseText string `json:"response_text"`
}

// SubmissionSummary is one reviewer-facing rollup row, one per submission.
type SubmissionSummary struct {
	SubmissionID  int       `json:"submission_id"`
	CandidateID   int       `json:"candidate_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Doc           string    `json:"doc"`
	Correct       int       `json:"correct_count"`
	Incorrect     int       `json:"incorrect_count"`
	PointsAwarded int       `json:"points_awarded"`
	ScoreTotal    int       `json:"score_total"`
	DurationSec   float64   `json:"duration_sec"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

type KPI struct {
	Candidates      int     `json:"candidates"`
	Submissions     int     `json:"submissions"`
	MeanScore       float64 `json:"mean_score"`
	MeanDurationSec float64 `json:"mean_duration_sec"`
}

package routes

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/hireflow/assess/app"
	"github.com/hireflow/assess/httpx"
	"github.com/hireflow/assess/log"
	"github.com/hireflow/assess/model"
	"github.com/hireflow/assess/session"
	"github.com/hireflow/assess/store"
)

func RegisterCandidate(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var candidate model.Candidate
		err := render.DecodeJSON(r.Body, &candidate)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if candidate.Name == "" || candidate.Email == "" || candidate.Doc == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "register.validate",
				"name, email and doc are required")
			return
		}

		candidate.Role = model.RoleCandidate
		id, err := store.RegisterCandidate(r.Context(), app.DB, candidate)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_candidate", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": id,
		})
	}
}

// candidateQuestion is the candidate-facing view of a catalog question:
// golden answers are never exposed mid-test.
type candidateQuestion struct {
	ID       int                `json:"id"`
	Category string             `json:"category"`
	Type     model.QuestionType `json:"type"`
	Points   int                `json:"points"`
	Prompt   string             `json:"prompt"`
	Options  []model.Option     `json:"options,omitempty"`
}

func ListQuestions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog := app.Catalog.Questions()

		questions := make([]candidateQuestion, len(catalog))
		for i, q := range catalog {
			questions[i] = candidateQuestion{
				ID:       q.ID,
				Category: q.Category,
				Type:     q.Type,
				Points:   q.Points,
				Prompt:   q.Prompt,
				Options:  q.Options,
			}
		}

		render.JSON(w, r, map[string]any{
			"questions": questions,
		})
	}
}

func StartSession(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidateID, ok := candidateParam(w, r, app)
		if !ok {
			return
		}

		sess, err := app.Sessions.Start(r.Context(), candidateID)
		if err != nil {
			httpx.LogInternalError(w, "db.load_drafts", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"candidate_id": sess.CandidateID,
			"started_at":   sess.StartedAt,
			"answers":      sess.Snapshot(),
		})
	}
}

func UpdateAnswers(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidateID, ok := candidateParam(w, r, app)
		if !ok {
			return
		}

		sess, ok := app.Sessions.Get(candidateID)
		if !ok {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "session.not_started")
			return
		}

		var body struct {
			Answers map[int]string `json:"answers"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		// buffer-only mutation: nothing hits storage until an explicit save
		sess.SetAll(body.Answers)
		w.WriteHeader(http.StatusNoContent)
	}
}

func SaveProgress(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidateID, ok := candidateParam(w, r, app)
		if !ok {
			return
		}

		err := app.Sessions.Flush(r.Context(), candidateID)
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, session.ErrNotStarted):
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "session.not_started")
		default:
			httpx.LogInternalError(w, "db.save_drafts", err)
		}
	}
}

func SubmitAttempt(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidateID, ok := candidateParam(w, r, app)
		if !ok {
			return
		}

		sess, ok := app.Sessions.Get(candidateID)
		if !ok {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "session.not_started")
			return
		}

		submissionID, err := store.Finalize(
			r.Context(), app.DB,
			app.Catalog.Questions(),
			candidateID,
			sess.StartedAt, time.Now(),
			sess.Snapshot(),
		)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_submission", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"submission_id": submissionID,
		})
	}
}

func candidateParam(w http.ResponseWriter, r *http.Request, app app.App) (int, bool) {
	candidateID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
		return 0, false
	}

	exists, err := store.CandidateExists(r.Context(), app.DB, candidateID)
	if err != nil {
		httpx.LogInternalError(w, "db.get_candidate", err)
		return 0, false
	}
	if !exists {
		httpx.LogNotFound(w, "get_candidate", candidateID)
		return 0, false
	}
	return candidateID, true
}

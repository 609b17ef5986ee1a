package routes

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"
	"github.com/xuri/excelize/v2"

	"github.com/hireflow/assess/app"
	"github.com/hireflow/assess/httpx"
	"github.com/hireflow/assess/model"
	"github.com/hireflow/assess/store"
)

func ReviewerSummary(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kpi, err := store.KPIs(r.Context(), app.DB)
		if err != nil {
			httpx.LogInternalError(w, "db.get_kpis", err)
			return
		}

		summaries, err := store.Summarize(r.Context(), app.DB)
		if err != nil {
			httpx.LogInternalError(w, "db.get_summary", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"kpi":         kpi,
			"submissions": summaries,
		})
	}
}

// reviewerAnswer is one row of the per-question comparative view: the
// persisted answer record joined with its catalog question, golden answer
// included.
type reviewerAnswer struct {
	model.AnswerRecord
	Category string             `json:"category,omitempty"`
	Type     model.QuestionType `json:"type,omitempty"`
	Prompt   string             `json:"prompt,omitempty"`
	Golden   string             `json:"golden_answer,omitempty"`
	Points   int                `json:"points,omitempty"`
}

func ReviewerAnswers(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.ListAnswers(r.Context(), app.DB)
		if err != nil {
			httpx.LogInternalError(w, "db.get_answers", err)
			return
		}

		answers := make([]reviewerAnswer, len(records))
		for i, rec := range records {
			answers[i] = reviewerAnswer{AnswerRecord: rec}
			if q, ok := app.Catalog.ByID(rec.QuestionID); ok {
				answers[i].Category = q.Category
				answers[i].Type = q.Type
				answers[i].Prompt = q.Prompt
				answers[i].Golden = q.Golden
				answers[i].Points = q.Points
			}
		}

		freeTexts, err := store.ListFreeResponses(r.Context(), app.DB)
		if err != nil {
			httpx.LogInternalError(w, "db.get_free_responses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"answers":        answers,
			"free_responses": freeTexts,
		})
	}
}

var exportHeader = []string{
	"submission_id", "name", "email", "doc",
	"buenas", "malas", "puntos_obtenidos", "score_total",
	"duration_sec", "started_at", "finished_at",
}

func exportRow(s model.SubmissionSummary) []string {
	return []string{
		strconv.Itoa(s.SubmissionID),
		s.Name,
		s.Email,
		s.Doc,
		strconv.Itoa(s.Correct),
		strconv.Itoa(s.Incorrect),
		strconv.Itoa(s.PointsAwarded),
		strconv.Itoa(s.ScoreTotal),
		strconv.FormatFloat(s.DurationSec, 'f', 1, 64),
		s.StartedAt.UTC().Format(time.RFC3339),
		s.FinishedAt.UTC().Format(time.RFC3339),
	}
}

func ExportCSV(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := store.Summarize(r.Context(), app.DB)
		if err != nil {
			httpx.LogInternalError(w, "db.get_summary", err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="resultados.csv"`)

		out := csv.NewWriter(w)
		if err := out.Write(exportHeader); err != nil {
			httpx.LogInternalError(w, "export.csv.header", err)
			return
		}
		for _, s := range summaries {
			if err := out.Write(exportRow(s)); err != nil {
				httpx.LogInternalError(w, "export.csv.row", err)
				return
			}
		}
		out.Flush()
		if err := out.Error(); err != nil {
			httpx.LogInternalError(w, "export.csv.flush", err)
		}
	}
}

func ExportXLSX(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := store.Summarize(r.Context(), app.DB)
		if err != nil {
			httpx.LogInternalError(w, "db.get_summary", err)
			return
		}

		records, err := store.ListAnswers(r.Context(), app.DB)
		if err != nil {
			httpx.LogInternalError(w, "db.get_answers", err)
			return
		}

		f, err := buildWorkbook(summaries, records)
		if err != nil {
			httpx.LogInternalError(w, "export.xlsx.build", err)
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="resultados.xlsx"`)
		if err := f.Write(w); err != nil {
			httpx.LogInternalError(w, "export.xlsx.write", err)
		}
	}
}

func buildWorkbook(summaries []model.SubmissionSummary, records []model.AnswerRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	const submissionsSheet = "Submissions"
	if err := f.SetSheetName("Sheet1", submissionsSheet); err != nil {
		return nil, err
	}

	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(submissionsSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, s := range summaries {
		row := []any{
			s.SubmissionID, s.Name, s.Email, s.Doc,
			s.Correct, s.Incorrect, s.PointsAwarded, s.ScoreTotal,
			s.DurationSec,
			s.StartedAt.UTC().Format(time.RFC3339),
			s.FinishedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(submissionsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	const answersSheet = "Answers"
	if _, err := f.NewSheet(answersSheet); err != nil {
		return nil, err
	}
	answersHeader := []any{"submission_id", "question_id", "response_text", "is_correct", "score_awarded"}
	if err := f.SetSheetRow(answersSheet, "A1", &answersHeader); err != nil {
		return nil, err
	}
	for i, rec := range records {
		row := []any{rec.SubmissionID, rec.QuestionID, rec.ResponseText, rec.IsCorrect, rec.ScoreAwarded}
		if err := f.SetSheetRow(answersSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func ReloadCatalog(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// a failed reload keeps serving the previous catalog
		if err := app.Catalog.Reload(); err != nil {
			httpx.LogInternalError(w, "catalog.reload", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"questions": len(app.Catalog.Questions()),
		})
	}
}

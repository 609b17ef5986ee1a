package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/hireflow/assess/model"
)

const questionSheet = "Preguntas"

// Workbook column headers, as found in the question template.
const (
	colID      = "id"
	colCat     = "categoria"
	colType    = "tipo"
	colPoints  = "puntos"
	colPrompt  = "enunciado"
	colOptions = "opciones"
	colGolden  = "respuesta_correcta"
)

// Catalog holds the read-only question set loaded from an xlsx workbook.
// Reload swaps the whole set atomically; a failed reload keeps the old one.
type Catalog struct {
	path string

	mu        sync.RWMutex
	questions []model.Question
	byID      map[int]model.Question
}

func Load(path string) (*Catalog, error) {
	c := &Catalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) Reload() error {
	f, err := excelize.OpenFile(c.path)
	if err != nil {
		return fmt.Errorf("open question workbook %s: %w", c.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(questionSheet)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", questionSheet, err)
	}
	if len(rows) < 2 {
		return fmt.Errorf("sheet %s has no question rows", questionSheet)
	}

	cols := map[string]int{}
	for i, header := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{colID, colCat, colType, colPoints, colPrompt} {
		if _, ok := cols[required]; !ok {
			return fmt.Errorf("sheet %s: missing column %q", questionSheet, required)
		}
	}

	questions := make([]model.Question, 0, len(rows)-1)
	byID := make(map[int]model.Question, len(rows)-1)
	for i, row := range rows[1:] {
		q, err := parseQuestion(row, cols)
		if err != nil {
			return fmt.Errorf("sheet %s row %d: %w", questionSheet, i+2, err)
		}
		if _, dup := byID[q.ID]; dup {
			return fmt.Errorf("sheet %s row %d: duplicate question id %d", questionSheet, i+2, q.ID)
		}
		questions = append(questions, q)
		byID[q.ID] = q
	}

	c.mu.Lock()
	c.questions, c.byID = questions, byID
	c.mu.Unlock()
	return nil
}

func parseQuestion(row []string, cols map[string]int) (q model.Question, err error) {
	q.ID, err = strconv.Atoi(cell(row, cols, colID))
	if err != nil {
		return q, fmt.Errorf("bad id: %w", err)
	}

	q.Category = cell(row, cols, colCat)
	q.Prompt = cell(row, cols, colPrompt)

	q.Type, err = parseType(cell(row, cols, colType))
	if err != nil {
		return q, err
	}

	q.Points, err = strconv.Atoi(cell(row, cols, colPoints))
	if err != nil {
		return q, fmt.Errorf("bad puntos: %w", err)
	}
	if q.Points < 0 {
		return q, fmt.Errorf("negative puntos %d", q.Points)
	}

	q.Golden = cell(row, cols, colGolden)
	q.Options = parseOptions(cell(row, cols, colOptions))

	if q.Type == model.MCQ && len(q.Options) == 0 {
		return q, fmt.Errorf("MCQ question %d has no options", q.ID)
	}
	return q, nil
}

func parseType(raw string) (model.QuestionType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "MCQ":
		return model.MCQ, nil
	case "FORMULA", "FORMULA_EXCEL":
		return model.Formula, nil
	case "FREE_TEXT":
		return model.FreeText, nil
	}
	return "", fmt.Errorf("unknown question type %q", raw)
}

// parseOptions splits the pipe-delimited option list and assigns each option
// its letter by position, so letter lookup never scans option text at runtime.
func parseOptions(raw string) []model.Option {
	var options []model.Option
	for _, o := range strings.Split(raw, "|") {
		if o = strings.TrimSpace(o); o != "" {
			options = append(options, model.Option{
				Letter: string(rune('A' + len(options))),
				Text:   o,
			})
		}
	}
	return options
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Questions returns the catalog in workbook order.
func (c *Catalog) Questions() []model.Question {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.questions
}

// Objective returns only the auto-scorable questions.
func (c *Catalog) Objective() []model.Question {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var objective []model.Question
	for _, q := range c.questions {
		if q.Objective() {
			objective = append(objective, q)
		}
	}
	return objective
}

func (c *Catalog) ByID(id int) (model.Question, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.byID[id]
	return q, ok
}

package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hireflow/assess/model"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(questionSheet)
	require.NoError(t, err)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(questionSheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

var header = []any{"id", "categoria", "tipo", "puntos", "enunciado", "opciones", "respuesta_correcta"}

func TestLoad(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		header,
		{1, "Excel", "MCQ", 5, "Which function sums a range?", "A) SUM | B) COUNT | C) AVERAGE", "A"},
		{101, "Excel", "FORMULA_EXCEL", 10, "Conditional sum over A:B", "", "SUMIFS(B:B;A:A;\"X\")|SUMAR.SI.CONJUNTO(B:B;A:A;\"X\")"},
		{301, "Python", "FREE_TEXT", 15, "Implement fizzbuzz(n)", "", ""},
	})

	cat, err := Load(path)
	require.NoError(t, err)

	qs := cat.Questions()
	require.Len(t, qs, 3)

	q, ok := cat.ByID(1)
	require.True(t, ok)
	assert.Equal(t, model.MCQ, q.Type)
	assert.Equal(t, 5, q.Points)
	require.Len(t, q.Options, 3)
	assert.Equal(t, "A", q.Options[0].Letter)
	assert.Equal(t, "B", q.Options[1].Letter)
	assert.Equal(t, "C", q.Options[2].Letter)
	assert.Equal(t, "B) COUNT", q.Options[1].Text)

	// the legacy FORMULA_EXCEL type maps onto FORMULA
	q, ok = cat.ByID(101)
	require.True(t, ok)
	assert.Equal(t, model.Formula, q.Type)

	q, ok = cat.ByID(301)
	require.True(t, ok)
	assert.Equal(t, model.FreeText, q.Type)
	assert.Empty(t, q.Golden)
	assert.False(t, q.Objective())

	objective := cat.Objective()
	require.Len(t, objective, 2)
	assert.Equal(t, 1, objective[0].ID)
	assert.Equal(t, 101, objective[1].ID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestLoadRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		row  []any
	}{
		{"unknown type", []any{1, "Excel", "ESSAY", 5, "?", "A) x", "A"}},
		{"non-numeric id", []any{"one", "Excel", "MCQ", 5, "?", "A) x", "A"}},
		{"negative points", []any{1, "Excel", "MCQ", -5, "?", "A) x", "A"}},
		{"mcq without options", []any{1, "Excel", "MCQ", 5, "?", "", "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeWorkbook(t, [][]any{header, tt.row})
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		header,
		{1, "Excel", "MCQ", 5, "?", "A) x | B) y", "A"},
		{1, "SQL", "MCQ", 5, "?", "A) x | B) y", "B"},
	})
	_, err := Load(path)
	assert.Error(t, err)
}

func TestReloadKeepsOldCatalogOnFailure(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		header,
		{1, "Excel", "MCQ", 5, "?", "A) x | B) y", "A"},
	})

	cat, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cat.Questions(), 1)

	cat.path = filepath.Join(t.TempDir(), "gone.xlsx")
	assert.Error(t, cat.Reload())
	assert.Len(t, cat.Questions(), 1)
}

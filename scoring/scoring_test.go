package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hireflow/assess/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"diacritics stripped", "café", "CAFE"},
		{"already canonical", "CAFE", "CAFE"},
		{"surrounding whitespace trimmed", "  hola  ", "HOLA"},
		{"interior whitespace preserved", "  a  b ", "A  B"},
		{"empty", "", ""},
		{"whitespace only", "   \t\n", ""},
		{"mixed accents", "Álvaro Núñez", "ALVARO NUNEZ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeEquivalence(t *testing.T) {
	assert.Equal(t, Normalize("café"), Normalize("CAFE"))

	// The bare normalizer keeps interior whitespace, so these differ...
	assert.NotEqual(t, Normalize("  a  b "), Normalize("ab"))
	// ...and only the formula fold makes them equal.
	assert.Equal(t, foldFormula("  a  b "), foldFormula("ab"))
}

func TestFoldFormula(t *testing.T) {
	assert.Equal(t, foldFormula("SUM(A1:A10)"), foldFormula("SUM( A1 : A10 )"))
	assert.Equal(t, "SUM(A1:A10)", foldFormula("sum( a1 : a10 )"))
}

func TestVariants(t *testing.T) {
	assert.Equal(t,
		[]string{"SUMAR.SI.CONJUNTO(...)", "SUMIFS(...)"},
		Variants(" SUMAR.SI.CONJUNTO(...) | SUMIFS(...) "))
	assert.Nil(t, Variants(""))
	assert.Nil(t, Variants(" | | "))
}

func TestScoreMCQ(t *testing.T) {
	q := model.Question{ID: 1, Type: model.MCQ, Points: 5, Golden: "B"}

	tests := []struct {
		name     string
		response string
		correct  bool
		awarded  int
	}{
		{"full option text", "B) Some text", true, 5},
		{"lowercase letter", "b", true, 5},
		{"wrong letter", "C", false, 0},
		{"empty response", "", false, 0},
		{"whitespace padded", "  b  ", true, 5},
		{"garbage", "zzz!!!", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, awarded := Score(q, tt.response)
			assert.Equal(t, tt.correct, correct)
			assert.Equal(t, tt.awarded, awarded)
		})
	}
}

func TestScoreFormula(t *testing.T) {
	q := model.Question{
		ID:     101,
		Type:   model.Formula,
		Points: 10,
		Golden: "SUMAR.SI.CONJUNTO(B:B;A:A;\"X\")|SUMIFS(B:B;A:A;\"X\")",
	}

	tests := []struct {
		name     string
		response string
		correct  bool
	}{
		{"first variant", "SUMAR.SI.CONJUNTO(B:B;A:A;\"X\")", true},
		{"second variant", "SUMIFS(B:B;A:A;\"X\")", true},
		{"extra whitespace", "SUMIFS( B:B ; A:A ; \"X\" )", true},
		{"lowercase", "sumifs(b:b;a:a;\"x\")", true},
		{"accented input folds", "SUMAR.SI.CONJUNTO(B:B;A:A;\"X\")", true},
		{"no match", "COUNTIF(B:B;\"X\")", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, awarded := Score(q, tt.response)
			assert.Equal(t, tt.correct, correct)
			if tt.correct {
				assert.Equal(t, 10, awarded)
			} else {
				assert.Zero(t, awarded)
			}
		})
	}
}

func TestScoreFreeTextNeverAutoScored(t *testing.T) {
	q := model.Question{ID: 301, Type: model.FreeText, Points: 15}

	correct, awarded := Score(q, "def fizzbuzz(n): ...")
	assert.False(t, correct)
	assert.Zero(t, awarded)
}

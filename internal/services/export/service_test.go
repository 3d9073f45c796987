package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/common"
	"github.com/ternarybob/qanda/internal/models"
	"golang.org/x/image/font/gofont/goregular"
)

func sampleResult(n int) *models.GenerationResult {
	qa := make([]models.QAPair, n)
	for i := range qa {
		qa[i] = models.QAPair{
			Question: fmt.Sprintf("What is fact number %d about café culture?", i+1),
			Answer:   strings.Repeat(fmt.Sprintf("Answer %d explains the *detail* carefully. ", i+1), 6),
		}
	}
	return &models.GenerationResult{
		ID:         "qa_test",
		Topic:      "Coffee History",
		Difficulty: models.DifficultyMedium,
		QAList:     qa,
		Sources: []models.Source{
			{URI: "https://a.example/coffee", Title: "Coffee [A]", Summary: "A history of coffee."},
			{URI: "https://b.example/beans", Title: "Beans"},
		},
		CreatedAt: time.Now(),
	}
}

func TestFilename(t *testing.T) {
	service := NewService(arbor.NewLogger(), nil)

	tests := []struct {
		topic      string
		difficulty models.Difficulty
		want       string
	}{
		{"Photosynthesis", models.DifficultyEasy, "QA_Photosynthesis_easy.pdf"},
		{"World War II", models.DifficultyHard, "QA_World_War_II_hard.pdf"},
		{"tabs\tand  spaces", models.DifficultyMedium, "QA_tabs_and_spaces_medium.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			assert.Equal(t, tt.want, service.Filename(tt.topic, tt.difficulty))
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(sampleResult(2))

	assert.True(t, strings.HasPrefix(md, "# Q&A: Coffee History\n"))
	assert.Contains(t, md, "**Difficulty:** Medium")
	assert.Contains(t, md, "## 1\\. What is fact number 1")
	assert.Contains(t, md, "## 2\\. What is fact number 2")
	assert.Contains(t, md, `\*detail\*`)
	assert.Contains(t, md, "## Sources")
	assert.Contains(t, md, `**Coffee \[A\]**`)
	assert.Contains(t, md, "<https://a.example/coffee>")
	assert.Contains(t, md, "*A history of coffee.*")
}

func TestRenderMarkdown_NoSources(t *testing.T) {
	result := sampleResult(1)
	result.Sources = nil

	assert.NotContains(t, RenderMarkdown(result), "## Sources")
}

func TestEscapeInline(t *testing.T) {
	assert.Equal(t, `a b`, escapeInline(" a\n\n b "))
	assert.Equal(t, `\- item`, escapeInline("- item"))
	assert.Equal(t, `1\. first`, escapeInline("1. first"))
	assert.Equal(t, `\#tag \_x\_`, escapeInline("#tag _x_"))
}

func TestExportPDF(t *testing.T) {
	service := NewService(arbor.NewLogger(), nil)

	pdfBytes, err := service.ExportPDF(sampleResult(5))
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))

	pages, err := PageCount(pdfBytes)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pages, 1)
}

func TestExportPDF_Paginates(t *testing.T) {
	service := NewService(arbor.NewLogger(), nil)

	pdfBytes, err := service.ExportPDF(sampleResult(20))
	require.NoError(t, err)

	pages, err := PageCount(pdfBytes)
	require.NoError(t, err)
	assert.Greater(t, pages, 1)
}

func TestExportPDF_NilResult(t *testing.T) {
	service := NewService(arbor.NewLogger(), nil)

	_, err := service.ExportPDF(nil)
	assert.ErrorIs(t, err, models.ErrNoResult)
}

func TestPageCount_Invalid(t *testing.T) {
	_, err := PageCount([]byte("not a pdf"))
	assert.Error(t, err)
}

func TestRendererTranslate(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")

	core := newPDFRenderer(pdf, nil, baseFont, false)
	assert.Equal(t, "caf\xe9", core.translate("café"))
	assert.Equal(t, ".mega", core.translate("Ωmega"))

	unicode := newPDFRenderer(pdf, nil, utf8Font, true)
	assert.Equal(t, "明治維新 Ωmega", unicode.translate("明治維新 Ωmega"))
}

func TestExportPDF_UTF8Font(t *testing.T) {
	fontPath := filepath.Join(t.TempDir(), "goregular.ttf")
	require.NoError(t, os.WriteFile(fontPath, goregular.TTF, 0644))

	service := NewService(arbor.NewLogger(), &common.ExportConfig{FontPath: fontPath})
	require.NotNil(t, service.font)

	result := sampleResult(3)
	result.Topic = "Ωmega and Δelta"
	result.QAList[0].Answer = "Σ is the summation sign."

	pdfBytes, err := service.ExportPDF(result)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))

	pages, err := PageCount(pdfBytes)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pages, 1)
}

func TestNewService_MissingFontFallsBack(t *testing.T) {
	service := NewService(arbor.NewLogger(), &common.ExportConfig{FontPath: filepath.Join(t.TempDir(), "missing.ttf")})
	assert.Nil(t, service.font)

	_, err := service.ExportPDF(sampleResult(1))
	assert.NoError(t, err)
}

package export

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/common"
	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Service implements interfaces.ExportService
type Service struct {
	logger arbor.ILogger
	md     goldmark.Markdown
	font   []byte // TrueType font for non cp1252 text; nil uses the core font
}

var _ interfaces.ExportService = (*Service)(nil)

// NewService creates a new export service. An unreadable config.FontPath is
// logged and the core cp1252 font is used instead.
func NewService(logger arbor.ILogger, config *common.ExportConfig) *Service {
	s := &Service{
		logger: logger,
		md:     goldmark.New(goldmark.WithExtensions(extension.Linkify)),
	}

	if config != nil && config.FontPath != "" {
		font, err := os.ReadFile(config.FontPath)
		if err != nil {
			logger.Warn().Err(err).Str("font_path", config.FontPath).Msg("Failed to read export font, using core font")
		} else {
			s.font = font
		}
	}

	return s
}

var filenameWhitespace = regexp.MustCompile(`\s+`)

// Filename returns QA_<topic>_<difficulty>.pdf with whitespace runs in topic replaced by "_"
func (s *Service) Filename(topic string, difficulty models.Difficulty) string {
	return fmt.Sprintf("QA_%s_%s.pdf", filenameWhitespace.ReplaceAllString(topic, "_"), difficulty)
}

// ExportPDF renders result to an A4 PDF. Content that overflows a page continues on the next.
func (s *Service) ExportPDF(result *models.GenerationResult) ([]byte, error) {
	if result == nil {
		return nil, models.ErrNoResult
	}

	markdown := RenderMarkdown(result)

	s.logger.Debug().
		Str("result_id", result.ID).
		Int("qa_count", len(result.QAList)).
		Int("markdown_len", len(markdown)).
		Msg("Exporting result to PDF")

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Q&A: %s", result.Topic), true)
	pdf.SetCreator("qanda", true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	family := baseFont
	if s.font != nil {
		for _, style := range []string{"", "B", "I", "BI"} {
			pdf.AddUTF8FontFromBytes(utf8Font, style, s.font)
		}
		family = utf8Font
	}

	pdf.AddPage()
	pdf.SetFont(family, "", baseSize)

	source := []byte(markdown)
	doc := s.md.Parser().Parse(text.NewReader(source))

	renderer := newPDFRenderer(pdf, source, family, s.font != nil)
	if err := renderer.render(doc); err != nil {
		s.logger.Error().Err(err).Msg("Failed to render PDF")
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate PDF output")
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}

	s.logger.Debug().
		Int("pdf_size", buf.Len()).
		Int("pages", pdf.PageNo()).
		Msg("PDF generated successfully")

	return buf.Bytes(), nil
}

// PageCount reads a PDF document and returns its number of pages
func PageCount(pdf []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF: %w", err)
	}
	return n, nil
}

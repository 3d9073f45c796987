package export

import (
	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

const (
	baseFont   = "Arial"
	utf8Font   = "QandaUTF8"
	baseSize   = 10.0
	lineHeight = 5.0
)

// pdfRenderer walks a goldmark AST and writes it to an fpdf document
type pdfRenderer struct {
	pdf       *fpdf.Fpdf
	source    []byte
	family    string
	translate func(string) string
	bold      bool
	italic    bool
	listLevel int
}

func newPDFRenderer(pdf *fpdf.Fpdf, source []byte, family string, utf8 bool) *pdfRenderer {
	r := &pdfRenderer{
		pdf:       pdf,
		source:    source,
		family:    family,
		translate: func(s string) string { return s },
	}
	if !utf8 {
		// Core fonts are cp1252; runes outside it render as '.'
		r.translate = pdf.UnicodeTranslatorFromDescriptor("")
	}
	return r
}

func (r *pdfRenderer) render(node ast.Node) error {
	if err := ast.Walk(node, r.walk); err != nil {
		return err
	}
	return r.pdf.Error()
}

func (r *pdfRenderer) updateFont() {
	style := ""
	if r.bold {
		style += "B"
	}
	if r.italic {
		style += "I"
	}
	r.pdf.SetFont(r.family, style, baseSize)
}

func (r *pdfRenderer) write(s string) {
	r.pdf.Write(lineHeight, r.translate(s))
}

func (r *pdfRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		r.heading(node, entering)
	case *ast.Paragraph:
		if !entering {
			r.pdf.Ln(lineHeight + 2)
		}
	case *ast.Text:
		if entering {
			r.text(node)
		}
	case *ast.Emphasis:
		if node.Level == 2 {
			r.bold = entering
		} else {
			r.italic = entering
		}
		r.updateFont()
	case *ast.AutoLink:
		if entering {
			r.link(string(node.URL(r.source)), string(node.Label(r.source)))
		}
		return ast.WalkSkipChildren, nil
	case *ast.Link:
		if entering {
			r.link(string(node.Destination), string(node.Text(r.source)))
		}
		return ast.WalkSkipChildren, nil
	case *ast.List:
		r.list(entering)
	case *ast.ListItem:
		if entering {
			r.pdf.Ln(lineHeight)
			r.pdf.SetX(r.leftMargin() + float64(r.listLevel-1)*5)
			r.write("- ")
		}
	case *ast.ThematicBreak:
		if entering {
			left, _, right, _ := r.pdf.GetMargins()
			width, _ := r.pdf.GetPageSize()
			r.pdf.Ln(2)
			r.pdf.Line(left, r.pdf.GetY(), width-right, r.pdf.GetY())
			r.pdf.Ln(2)
		}
	}
	return ast.WalkContinue, nil
}

func (r *pdfRenderer) heading(n *ast.Heading, entering bool) {
	if !entering {
		r.pdf.Ln(lineHeight + 3)
		r.updateFont()
		return
	}

	r.pdf.Ln(4)
	size := 11.0
	switch n.Level {
	case 1:
		size = 16
	case 2:
		size = 12
	}
	r.pdf.SetFont(r.family, "B", size)
}

func (r *pdfRenderer) text(n *ast.Text) {
	r.write(string(util.UnescapePunctuations(n.Text(r.source))))
	switch {
	case n.HardLineBreak():
		r.pdf.Ln(lineHeight)
		if r.listLevel > 0 {
			r.pdf.SetX(r.leftMargin() + float64(r.listLevel)*5)
		}
	case n.SoftLineBreak():
		r.write(" ")
	}
}

func (r *pdfRenderer) link(url, label string) {
	if label == "" {
		label = url
	}
	r.pdf.SetTextColor(30, 80, 160)
	r.pdf.WriteLinkString(lineHeight, r.translate(label), url)
	r.pdf.SetTextColor(0, 0, 0)
}

func (r *pdfRenderer) list(entering bool) {
	if entering {
		r.listLevel++
		return
	}
	r.listLevel--
	if r.listLevel == 0 {
		r.pdf.Ln(lineHeight)
	}
}

func (r *pdfRenderer) leftMargin() float64 {
	left, _, _, _ := r.pdf.GetMargins()
	return left
}

// Package pdfdoc builds simple single-column PDF documents (title, labelled
// fields, a table and a footer) on top of fpdf.
package pdfdoc

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

const (
	margin     = 20.0
	lineHeight = 8.0
	fontFamily = "Helvetica"
)

// Column describes one table column. Align is "L", "C" or "R".
type Column struct {
	Header string
	Width  float64
	Align  string
}

// Document is an A4 portrait document written top to bottom.
type Document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// New starts a document with one blank page.
func New(title string) *Document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(title, true)
	pdf.SetCreator("licorera-api", true)
	pdf.AddPage()
	return &Document{
		pdf: pdf,
		// core fonts are cp1252; translate so names like "Patrón" render
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// Title writes a large centred heading.
func (d *Document) Title(text string) {
	d.pdf.SetFont(fontFamily, "B", 20)
	d.pdf.CellFormat(0, 12, d.tr(text), "", 1, "C", false, 0, "")
	d.pdf.Ln(lineHeight)
}

// Field writes a "label: value" line.
func (d *Document) Field(label, value string) {
	d.pdf.SetFont(fontFamily, "B", 12)
	d.pdf.CellFormat(35, lineHeight, d.tr(label+":"), "", 0, "L", false, 0, "")
	d.pdf.SetFont(fontFamily, "", 12)
	d.pdf.CellFormat(0, lineHeight, d.tr(value), "", 1, "L", false, 0, "")
}

// Table writes a header row and the given rows. Rows shorter than cols are
// padded with blanks.
func (d *Document) Table(cols []Column, rows [][]string) {
	d.pdf.Ln(lineHeight / 2)
	d.pdf.SetFont(fontFamily, "B", 12)
	d.pdf.SetFillColor(235, 235, 235)
	for _, c := range cols {
		d.pdf.CellFormat(c.Width, lineHeight+2, d.tr(c.Header), "B", 0, c.Align, true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont(fontFamily, "", 12)
	for _, row := range rows {
		for i, c := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			d.pdf.CellFormat(c.Width, lineHeight+2, d.tr(cell), "", 0, c.Align, false, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

// Total writes a bold, right-aligned summary line under the table.
func (d *Document) Total(label, value string) {
	d.pdf.Ln(lineHeight / 2)
	d.pdf.SetFont(fontFamily, "B", 14)
	d.pdf.CellFormat(0, lineHeight+2, d.tr(label+": "+value), "T", 1, "R", false, 0, "")
}

// Footer writes a centred closing line.
func (d *Document) Footer(text string) {
	d.pdf.Ln(lineHeight * 2)
	d.pdf.SetFont(fontFamily, "I", 12)
	d.pdf.CellFormat(0, lineHeight, d.tr(text), "", 1, "C", false, 0, "")
}

// Bytes renders the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

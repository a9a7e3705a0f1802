// Package pdf renders a generated itinerary as a downloadable PDF. The
// renderer consumes the itinerary purely as display data; retrieval
// never depends on it.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/tourgether/tourgether/internal/itinerary"
	"github.com/tourgether/tourgether/internal/region"
)

// Palette.
var (
	primaryBlue = [3]int{26, 84, 144}
	darkGray    = [3]int{44, 62, 80}
	midGray     = [3]int{110, 118, 125}
)

// Renderer lays out itineraries on A4 pages.
type Renderer struct{}

// NewRenderer creates a PDF renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the PDF bytes for an itinerary.
func (r *Renderer) Render(it itinerary.Itinerary) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 18)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	r.header(doc, tr, it.Metadata)
	r.body(doc, tr, it.Text)
	r.attractions(doc, tr, it.Attractions)
	r.footer(doc, tr, it.Metadata)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(doc *fpdf.Fpdf, tr func(string) string, meta itinerary.Metadata) {
	doc.SetTextColor(primaryBlue[0], primaryBlue[1], primaryBlue[2])
	doc.SetFont("Helvetica", "B", 28)
	doc.CellFormat(0, 14, tr(meta.Destination), "", 1, "C", false, 0, "")

	doc.SetTextColor(darkGray[0], darkGray[1], darkGray[2])
	doc.SetFont("Helvetica", "", 14)
	doc.CellFormat(0, 8, tr(fmt.Sprintf("%d-Day Travel Itinerary", meta.Days)), "", 1, "C", false, 0, "")

	details := fmt.Sprintf("Budget: %s  |  Focus: %s", meta.Budget, displayTripType(meta.TripType))
	if meta.Region != "" {
		details += "  |  Region: " + region.DisplayName(meta.Region)
	}
	doc.SetTextColor(midGray[0], midGray[1], midGray[2])
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, tr(details), "", 1, "C", false, 0, "")
	doc.Ln(6)
}

// body walks the itinerary text line by line. Lines opening with "### "
// are day headers; the rest flows as paragraphs.
func (r *Renderer) body(doc *fpdf.Fpdf, tr func(string) string, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		switch {
		case line == "":
			doc.Ln(2)
		case strings.HasPrefix(line, "### "):
			doc.Ln(2)
			doc.SetTextColor(primaryBlue[0], primaryBlue[1], primaryBlue[2])
			doc.SetFont("Helvetica", "B", 13)
			doc.MultiCell(0, 7, tr(strings.TrimPrefix(line, "### ")), "", "L", false)
			doc.Ln(1)
		case strings.HasPrefix(line, "## ") || strings.HasPrefix(line, "# "):
			doc.Ln(2)
			doc.SetTextColor(primaryBlue[0], primaryBlue[1], primaryBlue[2])
			doc.SetFont("Helvetica", "B", 15)
			doc.MultiCell(0, 8, tr(strings.TrimLeft(line, "# ")), "", "L", false)
			doc.Ln(1)
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			doc.SetTextColor(darkGray[0], darkGray[1], darkGray[2])
			doc.SetFont("Helvetica", "", 10)
			doc.SetX(doc.GetX() + 4)
			doc.MultiCell(0, 5.5, tr("• "+stripMarkdown(line[2:])), "", "L", false)
		default:
			doc.SetTextColor(darkGray[0], darkGray[1], darkGray[2])
			doc.SetFont("Helvetica", "", 10)
			doc.MultiCell(0, 5.5, tr(stripMarkdown(line)), "", "L", false)
		}
	}
}

func (r *Renderer) attractions(doc *fpdf.Fpdf, tr func(string) string, items []itinerary.Featured) {
	if len(items) == 0 {
		return
	}

	doc.Ln(6)
	doc.SetTextColor(primaryBlue[0], primaryBlue[1], primaryBlue[2])
	doc.SetFont("Helvetica", "B", 15)
	doc.CellFormat(0, 9, tr("Featured Attractions"), "", 1, "L", false, 0, "")
	doc.Ln(1)

	for _, a := range items {
		name := a.Name
		if name == "" {
			name = "Attraction"
		}
		doc.SetTextColor(darkGray[0], darkGray[1], darkGray[2])
		doc.SetFont("Helvetica", "B", 10)
		doc.MultiCell(0, 5.5, tr("• "+name), "", "L", false)
		if a.PictureURL != "" {
			doc.SetTextColor(midGray[0], midGray[1], midGray[2])
			doc.SetFont("Helvetica", "", 8)
			doc.SetX(doc.GetX() + 4)
			doc.MultiCell(0, 4.5, tr(a.PictureURL), "", "L", false)
		}
	}
}

func (r *Renderer) footer(doc *fpdf.Fpdf, tr func(string) string, meta itinerary.Metadata) {
	doc.Ln(8)
	doc.SetTextColor(midGray[0], midGray[1], midGray[2])
	doc.SetFont("Helvetica", "I", 8)
	doc.CellFormat(0, 5,
		tr("Generated by TourGether on "+meta.GeneratedAt.Format("Jan 2, 2006 15:04 MST")),
		"", 1, "C", false, 0, "")
}

// stripMarkdown removes bold/italic markers the model tends to emit.
func stripMarkdown(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	return strings.ReplaceAll(s, "__", "")
}

func displayTripType(t string) string {
	return strings.ReplaceAll(t, "_", " ")
}

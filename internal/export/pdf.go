// Package export renders recipes and shopping lists for download, sharing and
// online shopping.
package export

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/homsent/homsent-chef/backend/internal/model"
)

const (
	pageMargin       = 15.0
	detailLabelWidth = 45.0
	lineHeight       = 6.0
	itemSpacing      = 3.0
	noValue          = "N/A"
	emptyList        = "No especificado."
)

type rgb struct{ r, g, b int }

var (
	colorGold  = rgb{212, 175, 55}
	colorWhite = rgb{255, 255, 255}
	colorBlack = rgb{0, 0, 0}
	colorGray  = rgb{170, 170, 170}
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName is the download name of a recipe PDF.
func FileName(title string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(title), "_") + ".pdf"
}

// WriteRecipePDF renders r as an A4 document on a black background.
func WriteRecipePDF(w io.Writer, r model.Recipe) error {
	doc := renderRecipe(r)
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to render recipe PDF: %w", err)
	}
	return nil
}

// RecipePDF renders r into memory.
func RecipePDF(r model.Recipe) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteRecipePDF(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type recipeDoc struct {
	pdf          *fpdf.Fpdf
	tr           func(string) string
	pageW, pageH float64
	contentW     float64
}

func renderRecipe(r model.Recipe) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pageW, pageH := pdf.GetPageSize()
	d := &recipeDoc{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		pageW:    pageW,
		pageH:    pageH,
		contentW: pageW - 2*pageMargin,
	}

	pdf.SetTitle(r.Title, true)
	pdf.SetCreator("Homsent Chef", true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AliasNbPages("")
	pdf.SetHeaderFunc(d.background)
	pdf.SetFooterFunc(d.footer)

	pdf.AddPage()
	d.logo()
	d.heading(r)
	d.rule()
	pdf.Ln(8)
	d.details(r)
	pdf.Ln(6)
	d.rule()
	pdf.Ln(12)
	d.list("Ingredientes", r.Ingredients, false)
	d.list("Utensilios", r.Utensils, false)
	d.list("Instrucciones", r.Instructions, true)
	return pdf
}

func (d *recipeDoc) setText(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }

func (d *recipeDoc) background() {
	d.pdf.SetFillColor(colorBlack.r, colorBlack.g, colorBlack.b)
	d.pdf.Rect(0, 0, d.pageW, d.pageH, "F")
}

func (d *recipeDoc) footer() {
	d.pdf.SetY(-10)
	d.pdf.SetFont("Helvetica", "", 9)
	d.setText(colorGray)
	text := fmt.Sprintf("Receta generada por Homsent Chef AI - Página %d de {nb}", d.pdf.PageNo())
	d.pdf.CellFormat(0, 6, d.tr(text), "", 0, "C", false, 0, "")
}

// logo draws the gold medallion with the house initial.
func (d *recipeDoc) logo() {
	const radius = 12.0
	y := d.pdf.GetY()
	cx := d.pageW / 2
	d.pdf.SetFillColor(colorGold.r, colorGold.g, colorGold.b)
	d.pdf.Circle(cx, y+radius, radius, "F")
	d.pdf.SetFont("Helvetica", "B", 20)
	d.setText(colorBlack)
	d.pdf.SetXY(cx-radius, y+radius/2)
	d.pdf.CellFormat(2*radius, radius, "H", "", 0, "C", false, 0, "")
	d.pdf.SetXY(pageMargin, y+2*radius+10)
}

func (d *recipeDoc) heading(r model.Recipe) {
	d.pdf.SetFont("Helvetica", "B", 26)
	d.setText(colorGold)
	d.pdf.MultiCell(d.contentW, 10, d.tr(r.Title), "", "C", false)
	d.pdf.Ln(4)

	d.pdf.SetFont("Helvetica", "I", 12)
	d.setText(colorWhite)
	inset := d.contentW * 0.05
	d.pdf.SetX(pageMargin + inset)
	d.pdf.MultiCell(d.contentW-2*inset, lineHeight, d.tr(r.Description), "", "C", false)
	d.pdf.Ln(6)
}

func (d *recipeDoc) rule() {
	if d.pdf.GetY()+12 > d.pageH-pageMargin {
		d.pdf.AddPage()
	}
	y := d.pdf.GetY()
	d.pdf.SetDrawColor(colorGold.r, colorGold.g, colorGold.b)
	d.pdf.Line(pageMargin, y, d.pageW-pageMargin, y)
}

func (d *recipeDoc) details(r model.Recipe) {
	rows := []struct{ label, value string }{
		{"Tiempo de Preparación", r.PrepTime},
		{"Tiempo de Cocción", r.CookTime},
		{"Coste", string(r.Cost)},
		{"Tipo de Dieta", string(r.DietType)},
		{"Origen", string(r.Origin)},
	}
	for _, row := range rows {
		value := strings.TrimSpace(row.value)
		if value == "" {
			value = noValue
		}
		d.pdf.SetFont("Helvetica", "B", 11)
		d.setText(colorWhite)
		d.pdf.CellFormat(detailLabelWidth, lineHeight, d.tr(row.label+":"), "", 0, "L", false, 0, "")

		d.pdf.SetFont("Helvetica", "", 11)
		d.setText(colorGray)
		d.pdf.MultiCell(d.contentW-detailLabelWidth-2, lineHeight, d.tr(value), "", "L", false)
		d.pdf.Ln(2)
	}
}

func (d *recipeDoc) list(title string, items []string, numbered bool) {
	if d.pdf.GetY()+15 > d.pageH-pageMargin {
		d.pdf.AddPage()
	}
	d.pdf.SetFont("Helvetica", "B", 16)
	d.setText(colorGold)
	d.pdf.CellFormat(0, 8, d.tr(title), "", 1, "L", false, 0, "")

	if len(items) == 0 {
		d.pdf.SetFont("Helvetica", "I", 11)
		d.setText(colorGray)
		d.pdf.SetX(pageMargin + 2)
		d.pdf.CellFormat(0, lineHeight, d.tr(emptyList), "", 1, "L", false, 0, "")
		d.pdf.Ln(8)
		return
	}

	d.pdf.SetFont("Helvetica", "", 11)
	d.setText(colorWhite)
	indent := 2.0
	if numbered {
		indent = 5
	}
	for i, item := range items {
		prefix := "• "
		if numbered {
			prefix = fmt.Sprintf("%d. ", i+1)
		}
		d.pdf.SetX(pageMargin + indent)
		d.pdf.MultiCell(d.contentW-indent, lineHeight, d.tr(prefix+item), "", "L", false)
		d.pdf.Ln(itemSpacing)
	}
	d.pdf.Ln(8)
}

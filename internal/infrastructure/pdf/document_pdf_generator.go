// Package pdf genera la representación imprimible de los documentos comerciales
// (견적서, 발주서, 의뢰서).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título del documento │ N° documento + fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINATARIO: empresa / contacto │ EMISOR: responsable      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: No | Artículo | Especif. | Cant. | P.Unit | Importe  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + condiciones (entrega, pago, validez, notas)         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

var _ ports.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const customFamily = "korean"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.DocumentPDFGenerator usando Maroto v2.
// Con una fuente TTF configurada el texto coreano se renderiza; sin ella se usa helvetica.
type MarotoPDFGenerator struct {
	fontPath string
}

// NewMarotoPDFGenerator construye el generador. fontPath puede ser vacío.
func NewMarotoPDFGenerator(fontPath string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{fontPath: fontPath}
}

// Generate genera el PDF del documento y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(doc *entity.Document, company *entity.Company, owner *entity.User) ([]byte, error) {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithTitle(documentTitle(doc.Type)+" "+doc.DocumentNumber, true).
		WithAuthor(owner.Name, true)

	family := "helvetica"
	if g.fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(customFamily, fontstyle.Normal, g.fontPath).
			AddUTF8Font(customFamily, fontstyle.Bold, g.fontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("pdf: cargar fuente: %w", err)
		}
		b = b.WithCustomFonts(fonts)
		family = customFamily
	}
	m := maroto.New(b.WithDefaultFont(&props.Font{Family: family, Size: 9}).Build())

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(doc, company, owner))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(doc.Content.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(doc))
	m.AddRows(termsRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y número + fecha (der).
func headerRow(doc *entity.Document) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(documentTitle(doc.Type), props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New(doc.DocumentNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New("일자: "+doc.Date.Format("2006-01-02"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// partiesRow: destinatario (empresa y contacto) y emisor (responsable).
func partiesRow(doc *entity.Document, company *entity.Company, owner *entity.User) core.Row {
	contact := nonEmpty(strings.TrimSpace(doc.ContactName+" "+doc.ContactLevel), "—")
	return row.New(20).Add(
		col.New(7).Add(
			text.New("수신", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(company.Name+" 귀하", props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("담당자: %s   |   Tel: %s   |   Fax: %s",
				contact,
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Fax, "—"),
			), props.Text{Size: 8, Top: 13, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("담당", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(strings.TrimSpace(owner.Name+" "+owner.Level), props.Text{Size: 10, Align: align.Right, Top: 6}),
			text.New(nonEmpty(owner.Email, ""), props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de artículos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("No", 1, align.Center),
		h("품명", 4, align.Left),
		h("규격", 2, align.Left),
		h("수량", 1, align.Center),
		h("단가", 2, align.Right),
		h("금액", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableItemRows: una fila por artículo.
func tableItemRows(items []entity.DocumentItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.Spec, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(string(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(it.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalRow: total del documento alineado a la derecha.
func totalRow(doc *entity.Document) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("합계 금액:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("₩"+formatMoney(doc.TotalAmount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// termsRows: condiciones presentes en el contenido (las vacías se omiten).
func termsRows(doc *entity.Document) []core.Row {
	var terms [][2]string
	if doc.ValidUntil != nil {
		terms = append(terms, [2]string{"유효기간", doc.ValidUntil.Format("2006-01-02")})
	}
	if doc.DeliveryDate != nil {
		terms = append(terms, [2]string{"납기일", doc.DeliveryDate.Format("2006-01-02")})
	}
	c := doc.Content
	for _, t := range [][2]string{
		{"납품장소", c.DeliveryPlace},
		{"납품조건", c.DeliveryTerm},
		{"결제조건", c.PaymentMethod},
		{"비고", c.Notes},
	} {
		if t[1] != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return nil
	}
	rows := []core.Row{row.New(4)}
	for _, t := range terms {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(t[0], props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorPrimary})),
			col.New(10).Add(text.New(t[1], props.Text{Size: 8, Top: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func documentTitle(docType string) string {
	switch docType {
	case entity.DocumentTypeOrder:
		return "발 주 서"
	case entity.DocumentTypeRequestQuote:
		return "의 뢰 서"
	default:
		return "견 적 서"
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney redondea a unidades e inserta comas de miles.
// Ej: 25000 → "25,000", -1000000 → "-1,000,000"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}

// Package pdf implementa la generación de la ficha de producción en PDF:
// el documento que se imprime al planificar un lote para que el barista
// sepa qué pesar, y que queda como comprobante una vez confirmado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio + Sucursal  │  FICHA DE PRODUCCIÓN + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LOTE: Producto × tazas + estado                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ingrediente | Cantidad | Costo Unit. | Total        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Costo total del lote / COSTO POR TAZA             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID del lote + nota                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/application/production"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 58, Blue: 26} // café tostado
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoSheetGenerator implementa production.BatchSheetGenerator usando Maroto v2.
type MarotoSheetGenerator struct{}

// NewMarotoSheetGenerator construye el generador.
func NewMarotoSheetGenerator() *MarotoSheetGenerator { return &MarotoSheetGenerator{} }

// GenerateBatchSheet genera el PDF de la ficha y devuelve sus bytes.
func (g *MarotoSheetGenerator) GenerateBatchSheet(_ context.Context, data production.BatchSheetData) ([]byte, error) {
	batch := data.Batch
	if batch == nil {
		return nil, fmt.Errorf("pdf: lote vacío")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de Producción", true).
		WithAuthor(nonEmpty(data.BusinessName, "Baristo"), true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(batchRow(batch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de ingredientes congelados
	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(batch.Lines) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(batch))

	// Footer: QR del lote + nota
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(batch) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: negocio + sucursal (izq) y título + fecha (der).
func headerRow(data production.BatchSheetData) core.Row {
	fecha := data.Batch.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(data.BusinessName, "Mi cafetería"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Sucursal: "+nonEmpty(data.BranchName, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FICHA DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+shortID(data.Batch.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// batchRow: producto, tazas planificadas y estado del lote.
func batchRow(batch *dto.ProductionBatchResponse) core.Row {
	estado := statusLabel(batch.Status)
	if batch.CommittedAt != nil {
		estado += " el " + batch.CommittedAt.Format("02/01/2006 15:04")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("LOTE DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s × %d tazas", nonEmpty(batch.ProductName, batch.ProductID), batch.Quantity), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Estado: "+estado, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ingredientes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ingrediente", 5, align.Left),
		h("Cantidad", 3, align.Right),
		h("Costo Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableLineRows: una fila por renglón congelado de la receta.
func tableLineRows(lines []dto.ProductionLineResponse) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				nonEmpty(l.IngredientName, l.IngredientID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				l.Quantity.String()+" "+l.Unit,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.UnitCost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(l.LineTotal.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: costo total del lote y costo por taza.
func totalsRow(batch *dto.ProductionBatchResponse) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 6,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 6,
		})
	}

	return row.New(18).Add(
		col.New(4), // espacio izquierdo
		col.New(4).Add(
			label("Costo total del lote:"),
			grandLabel("COSTO POR TAZA:"),
		),
		col.New(4).Add(
			value("$"+formatMoney(batch.TotalCost.StringFixed(0))),
			grandValue("$"+formatMoney(batch.CostPerCup.StringFixed(0))),
		),
	)
}

// footerRows: código QR con el ID del lote + nota de planificación.
func footerRows(batch *dto.ProductionBatchResponse) []core.Row {
	rows := []core.Row{
		row.New(35).Add(
			col.New(4).Add(code.NewQr(batch.ID, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código para abrir\neste lote en la aplicación.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("Los costos unitarios quedaron congelados\nal momento de planificar el lote.", props.Text{
					Style: fontstyle.Bold, Size: 9, Top: 16,
					Left: 3, Color: colorPrimary,
				}),
			),
		),
	}

	if batch.Note != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Nota: "+batch.Note, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// statusLabel traduce el estado del lote para la ficha impresa.
func statusLabel(status string) string {
	switch status {
	case entity.ProductionStatusPlanned:
		return "PLANIFICADO"
	case entity.ProductionStatusCommitted:
		return "CONFIRMADO"
	case entity.ProductionStatusCancelled:
		return "CANCELADO"
	}
	return status
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID recorta el UUID para el número visible de la ficha.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if neg {
		return "-" + string(buf)
	}
	return string(buf)
}

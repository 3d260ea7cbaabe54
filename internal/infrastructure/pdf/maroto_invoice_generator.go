// Package pdf renders the printable invoice handed to patients.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Clinic name          │  Invoice number + date      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILLED TO: patient name                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Description | Amount                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Total / Paid / Balance due                         │
//	│  FOOTER: payment history + status                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/clinova/clinic-api/internal/application/billing"
	"github.com/clinova/clinic-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 110, Blue: 94}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.PDFGenerator = (*MarotoInvoiceGenerator)(nil)

// MarotoInvoiceGenerator implements billing.PDFGenerator with Maroto v2.
type MarotoInvoiceGenerator struct{}

// NewMarotoInvoiceGenerator builds the generator.
func NewMarotoInvoiceGenerator() *MarotoInvoiceGenerator { return &MarotoInvoiceGenerator{} }

// Generate renders the invoice and returns the PDF bytes.
func (g *MarotoInvoiceGenerator) Generate(invoice *dto.InvoiceResponse, clinicName string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+invoice.Number, true).
		WithAuthor(clinicName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, clinicName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(patientRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(invoice.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	if len(invoice.Payments) > 0 {
		m.AddRows(line.NewRow(3))
		for _, r := range paymentRows(invoice.Payments) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: clinic name (left), invoice number and date (right).
func headerRow(invoice *dto.InvoiceResponse, clinicName string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(clinicName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Patient Invoice", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Date: "+invoice.Date, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func patientRow(invoice *dto.InvoiceResponse) core.Row {
	due := invoice.DueDate
	if due == "" {
		due = "—"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILLED TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.PatientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Due date: "+due, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(8).Add(
		col.New(9).Add(text.New("Description", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Left,
			Color: colorPrimary, Top: 2, Left: 1,
		})),
		col.New(3).Add(text.New("Amount (Rs.)", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func itemRows(items []dto.InvoiceItemResponse) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(9).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				it.Amount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(invoice *dto.InvoiceResponse) core.Row {
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
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Total:"),
			label("Paid:"),
			grandLabel("BALANCE DUE:"),
		),
		col.New(4).Add(
			value("Rs. "+invoice.Total.StringFixed(2)),
			value("Rs. "+invoice.Paid.StringFixed(2)),
			grandValue("Rs. "+invoice.Balance.StringFixed(2)),
		),
	)
}

func paymentRows(payments []dto.PaymentResponse) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PAYMENTS RECEIVED", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, p := range payments {
		method := p.Method
		if method == "" {
			method = "—"
		}
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(
				p.PaidAt+"  ("+method+")",
				props.Text{Size: 7.5, Color: colorGray, Top: 1, Left: 1},
			)),
			col.New(6).Add(text.New(
				"Rs. "+p.Amount.StringFixed(2),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return rows
}

func footerRow(invoice *dto.InvoiceResponse) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Status: "+invoice.Status, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center,
			Color: colorPrimary, Top: 2,
		}),
		text.New("Keep this document for your records.", props.Text{
			Size: 6.5, Color: colorGray, Align: align.Center, Top: 7,
		}),
	))
}

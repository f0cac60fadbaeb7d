package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"grocery-api/internal/domain/order"
	"grocery-api/internal/pkg/config"
	"grocery-api/internal/pkg/errs"
)

// Renderer turns an order snapshot into an invoice document.
type Renderer interface {
	Render(o *order.Order) ([]byte, error)
}

// PDFRenderer lays the invoice out with gofpdf: header, customer block,
// line items with the offer product breakdown, then totals.
type PDFRenderer struct {
	companyName  string
	supportEmail string
}

func NewPDFRenderer(cfg config.Config) *PDFRenderer {
	return &PDFRenderer{
		companyName:  cfg.Invoice.CompanyName,
		supportEmail: cfg.Invoice.SupportEmail,
	}
}

func (r *PDFRenderer) Render(o *order.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	r.header(pdf, o)
	r.customerBlock(pdf, o)
	r.lineItems(pdf, o)
	r.totals(pdf, o)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errs.Wrap(err, "failed to render invoice pdf")
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) header(pdf *gofpdf.Fpdf, o *order.Order) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, r.companyName)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, r.supportEmail)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice for order %s", o.Number))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Placed %s", o.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(10)
}

func (r *PDFRenderer) customerBlock(pdf *gofpdf.Fpdf, o *order.Order) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Customer")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)

	name := o.Customer.FirstName + " " + o.Customer.LastName
	pdf.Cell(0, 5, name)
	pdf.Ln(5)
	pdf.Cell(0, 5, o.Customer.Phone)
	pdf.Ln(5)

	switch o.Fulfillment {
	case order.MethodDelivery:
		if o.Delivery != nil {
			pdf.Cell(0, 5, fmt.Sprintf("Delivery to %s, %s %s", o.Delivery.Address, o.Delivery.City, o.Delivery.PostalCode))
			pdf.Ln(5)
		}
	case order.MethodPickup:
		if o.Pickup != nil {
			pdf.Cell(0, 5, fmt.Sprintf("Pickup at %s", o.Pickup.PickupAt.Format("2006-01-02 15:04")))
			pdf.Ln(5)
		}
	}
	pdf.Ln(6)
}

func (r *PDFRenderer) lineItems(pdf *gofpdf.Fpdf, o *order.Order) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(120, 7, "Item")
	pdf.Cell(20, 7, "Qty")
	pdf.CellFormat(40, 7, "Amount", "", 0, "R", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)

	for _, line := range o.OfferLines {
		pdf.Cell(120, 6, line.Name)
		pdf.Cell(20, 6, fmt.Sprintf("%d", line.Quantity))
		pdf.CellFormat(40, 6, money(line.DiscountedTotalCents), "", 0, "R", false, 0, "")
		pdf.Ln(6)

		pdf.SetFont("Helvetica", "I", 9)
		for _, item := range line.Items {
			pdf.Cell(10, 5, "")
			pdf.Cell(110, 5, item.Name)
			pdf.Cell(20, 5, "")
			pdf.CellFormat(40, 5, money(item.DiscountedPriceCents), "", 0, "R", false, 0, "")
			pdf.Ln(5)
		}
		pdf.SetFont("Helvetica", "", 10)
	}

	for _, line := range o.ProductLines {
		pdf.Cell(120, 6, line.Name)
		pdf.Cell(20, 6, fmt.Sprintf("%d", line.Quantity))
		pdf.CellFormat(40, 6, money(line.TotalCents), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) totals(pdf *gofpdf.Fpdf, o *order.Order) {
	row := func(label string, cents int64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.Cell(140, 6, "")
		pdf.Cell(20, 6, label)
		pdf.CellFormat(20, 6, money(cents), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	row("Subtotal", o.Totals.SubtotalCents, false)
	if o.Totals.SavingsCents > 0 {
		row("Savings", -o.Totals.SavingsCents, false)
	}
	row("Delivery", o.Totals.DeliveryFeeCents, false)
	row("Tax", o.Totals.TaxCents, false)
	row("Total", o.Totals.TotalCents, true)
}

func money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

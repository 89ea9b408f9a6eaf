package order

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Renderer turns one order into a printable document. It never mutates the
// order.
type Renderer interface {
	ContentType() string
	FileName(ord Order) string
	Render(w io.Writer, ord Order) error
}

type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

func (r *PDFRenderer) FileName(ord Order) string {
	return fmt.Sprintf("receipt-%s.pdf", ord.OrderID)
}

func (r *PDFRenderer) Render(w io.Writer, ord Order) error {
	pdf := fpdf.New("P", "mm", "A5", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Receipt "+ord.OrderID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(ord.RestaurantName), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Order "+ord.OrderID, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, ord.OrderTime.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Customer: "+ord.Customer.Name), "", 1, "L", false, 0, "")
	if ord.Customer.Mobile != "" {
		pdf.CellFormat(0, 6, tr("Mobile: "+ord.Customer.Mobile), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, tr("Table: "+ord.Customer.Table), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Status: "+string(ord.Status), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(62, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(16, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range ord.Items {
		pdf.CellFormat(62, 6, tr(item.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.2f", item.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(16, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", item.Total), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(98, 8, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", ord.TotalPrice), "T", 1, "R", false, 0, "")

	return pdf.Output(w)
}

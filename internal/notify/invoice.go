package notify

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
)

// InvoiceGenerator renders an order into a binary invoice document.
type InvoiceGenerator interface {
	Render(order *models.Order) ([]byte, error)
}

// PDFInvoiceGenerator produces the PDF invoice attached to order emails.
// The order number doubles as the payment variable symbol.
type PDFInvoiceGenerator struct {
	SupplierName    string
	SupplierAddress string
	BankAccount     string
}

func NewPDFInvoiceGenerator(supplierName, supplierAddress, bankAccount string) *PDFInvoiceGenerator {
	return &PDFInvoiceGenerator{
		SupplierName:    supplierName,
		SupplierAddress: supplierAddress,
		BankAccount:     bankAccount,
	}
}

func (g *PDFInvoiceGenerator) Render(order *models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1250")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Faktura %s", order.Number)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, tr(g.SupplierName))
	pdf.Ln(5)
	pdf.Cell(0, 5, tr(g.SupplierAddress))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 5, tr("Odběratel:"))
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, tr(fmt.Sprintf("%s %s", order.Contact.FirstName, order.Contact.LastName)))
	pdf.Ln(5)
	pdf.Cell(0, 5, tr(order.Contact.Street))
	pdf.Ln(5)
	pdf.Cell(0, 5, tr(fmt.Sprintf("%s %s", order.Contact.Zip, order.Contact.City)))
	pdf.Ln(10)

	pdf.Cell(0, 5, tr(fmt.Sprintf("Variabilní symbol: %s", order.Number)))
	pdf.Ln(5)
	if g.BankAccount != "" {
		pdf.Cell(0, 5, tr(fmt.Sprintf("Číslo účtu: %s", g.BankAccount)))
		pdf.Ln(5)
	}
	pdf.Ln(5)

	// Item table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, tr("Položka"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, tr("Ks"), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, tr("Cena/ks (Kč)"), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, tr("Celkem (Kč)"), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.Items {
		name := item.ProductName
		if item.VariantName != nil {
			name = fmt.Sprintf("%s – %s", name, *item.VariantName)
		}
		pdf.CellFormat(90, 7, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, formatKc(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, formatKc(item.LineTotal), "1", 1, "R", false, 0, "")
	}

	pdf.CellFormat(145, 7, tr("Doprava"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, formatKc(order.ShippingCost), "1", 1, "R", false, 0, "")
	pdf.CellFormat(145, 7, tr("Platba"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, formatKc(order.PaymentCost), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(145, 7, tr("Celkem k úhradě"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, formatKc(order.Total), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatKc(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

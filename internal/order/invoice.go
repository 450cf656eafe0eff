package order

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderInvoice produces the PDF invoice for an order: header, shipping
// address, items table, totals breakdown and payment info.
func RenderInvoice(ord Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Invoice Number: "+ord.InvoiceNumber, "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, "Date: "+ord.Date.Format("02/01/2006"), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, "Status: "+ord.Status, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "BU", 12)
	pdf.CellFormat(0, 6, "Ship To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, ord.Address.FirstName+" "+ord.Address.LastName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, ord.Address.Street, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("%s, %s %s", ord.Address.City, ord.Address.State, ord.Address.Zipcode), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, ord.Address.Country, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Phone: "+ord.Address.Phone, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "BU", 12)
	pdf.CellFormat(0, 6, "Order Items:", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	widths := []float64{80, 20, 20, 30, 30}
	headers := []string{"Item", "Size", "Qty", "Price", "Total"}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range ord.Items {
		name := item.Name
		if runes := []rune(name); len(runes) > 35 {
			name = string(runes[:35])
		}
		pdf.CellFormat(widths[0], 7, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, item.Size, "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%d", item.Quantity), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, money(item.Price), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 7, money(item.Price*float64(item.Quantity)), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(180, 0, "", "T", 1, "L", false, 0, "")
	pdf.Ln(4)

	subtotal := ord.Amount + ord.DiscountAmount - ord.DeliveryFee
	pdf.CellFormat(150, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, money(subtotal), "", 1, "R", false, 0, "")
	if ord.DiscountAmount > 0 {
		pdf.CellFormat(150, 6, fmt.Sprintf("Discount (%s):", ord.CouponCode), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, "-"+money(ord.DiscountAmount), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(150, 6, "Delivery:", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, money(ord.DeliveryFee), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 8, "Total:", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, money(ord.Amount), "", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Payment Method: "+ord.PaymentMethod, "", 1, "L", false, 0, "")
	paid := "Pending"
	if ord.Payment {
		paid = "Paid"
	}
	pdf.CellFormat(0, 5, "Payment Status: "+paid, "", 1, "L", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 4, "Thank you for shopping with Forever!", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, "For any queries, contact support@forever.com", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}

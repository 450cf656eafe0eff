package order

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvoice(t *testing.T) {
	ord := Order{
		ID:     42,
		UserID: 7,
		Items: []Item{
			{ProductID: 1, Name: "Round Neck Tee", Size: "M", Quantity: 2, Price: 250},
		},
		Amount:        510,
		Address:       Address{FirstName: "Asha", LastName: "Rao", Street: "12 MG Road", City: "Bengaluru"},
		Status:        StatusPlaced,
		PaymentMethod: MethodCOD,
		PaymentStatus: PaymentCODPending,
		DeliveryFee:   10,
		InvoiceNumber: "INV-12345678-ABCD",
		Date:          time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	pdf, err := RenderInvoice(ord)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderInvoiceWithDiscount(t *testing.T) {
	ord := Order{
		ID:             43,
		Items:          []Item{{Name: "Slim Jeans", Size: "32", Quantity: 1, Price: 900}},
		Amount:         810,
		DiscountAmount: 100,
		DeliveryFee:    10,
		PaymentMethod:  MethodStripe,
		PaymentStatus:  PaymentPaid,
		InvoiceNumber:  "INV-87654321-WXYZ",
		Date:           time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	pdf, err := RenderInvoice(ord)
	require.NoError(t, err)
	assert.Greater(t, len(pdf), 500)
}

func TestRenderInvoiceTruncatesLongMultibyteName(t *testing.T) {
	// 40 two-byte runes: a byte-wise cut at 35 would land mid-rune
	ord := Order{
		ID:            44,
		Items:         []Item{{Name: strings.Repeat("é", 40), Size: "M", Quantity: 1, Price: 250}},
		Amount:        260,
		DeliveryFee:   10,
		PaymentMethod: MethodCOD,
		PaymentStatus: PaymentCODPending,
		InvoiceNumber: "INV-11223344-QRST",
		Date:          time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	pdf, err := RenderInvoice(ord)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

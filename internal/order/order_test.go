package order

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPlaced, StatusPacking, true},
		{StatusPlaced, StatusShipped, true},
		{StatusPlaced, StatusCancelled, true},
		{StatusPlaced, StatusDelivered, false},
		{StatusPacking, StatusShipped, true},
		{StatusPacking, StatusCancelled, true},
		{StatusPacking, StatusPlaced, false},
		{StatusShipped, StatusOutForDelivery, true},
		{StatusShipped, StatusCancelled, false},
		{StatusOutForDelivery, StatusDelivered, true},
		{StatusOutForDelivery, StatusShipped, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPlaced, false},
		{"bogus", StatusPacking, false},
		{StatusPlaced, "bogus", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalPayment(t *testing.T) {
	assert.True(t, TerminalPayment(PaymentPaid))
	assert.True(t, TerminalPayment(PaymentFailed))
	assert.True(t, TerminalPayment(PaymentRefunded))
	assert.True(t, TerminalPayment(PaymentCODCollected))
	assert.False(t, TerminalPayment(PaymentPending))
	assert.False(t, TerminalPayment(PaymentCODPending))
}

func TestNewInvoiceNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-\d{8}-[0-9A-F]{4}$`)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	inv := NewInvoiceNumber(now)
	assert.Regexp(t, pattern, inv)
}

func TestNewInvoiceNumberTimestampSegment(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	want := ms[len(ms)-8:]

	inv := NewInvoiceNumber(now)
	assert.Equal(t, want, inv[4:12])
}

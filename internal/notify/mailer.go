package notify

import (
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/forevershop/forever-backend/internal/order"
)

type Logger interface {
	Printf(format string, v ...interface{})
}

// Mailer sends transactional mail over SMTP. Every send swallows and logs
// its own error: mail is best-effort and must never fail an order or a
// registration.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger Logger
}

func NewMailer(host string, port int, username, password, from string, logger Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: logger,
	}
}

func (m *Mailer) Welcome(email, name string) {
	body := fmt.Sprintf(`<h2>Welcome to Forever, %s!</h2>
<p>Your account has been created. Happy shopping!</p>`, name)
	m.send(email, "Welcome to Forever! 🎉", body)
}

func (m *Mailer) PasswordReset(email, code string) {
	body := fmt.Sprintf(`<h2>Password Reset</h2>
<p>Your one-time code is:</p>
<h1 style="letter-spacing: 4px">%s</h1>
<p>The code expires in 10 minutes. If you did not request a reset, ignore this mail.</p>`, code)
	m.send(email, "Password Reset OTP - Forever", body)
}

func (m *Mailer) OrderConfirmation(ord order.Order) {
	var rows strings.Builder
	for _, item := range ord.Items {
		fmt.Fprintf(&rows, "<tr><td>%s (%s)</td><td>%d</td><td>%.2f</td></tr>",
			item.Name, item.Size, item.Quantity, item.Price)
	}
	body := fmt.Sprintf(`<h2>Order Confirmed!</h2>
<p>Invoice: %s</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Item</th><th>Qty</th><th>Price</th></tr>
%s
</table>
<p>Total: %.2f (%s)</p>
<p>We will let you know as soon as your order ships.</p>`,
		ord.InvoiceNumber, rows.String(), ord.Amount, ord.PaymentMethod)
	m.send(ord.Address.Email, fmt.Sprintf("Order Confirmed! #%s", ord.InvoiceNumber), body)
}

func (m *Mailer) StatusUpdate(ord order.Order, status string) {
	body := fmt.Sprintf(`<h2>Order Update</h2>
<p>Your order %s is now: <strong>%s</strong></p>`, ord.InvoiceNumber, status)
	m.send(ord.Address.Email, fmt.Sprintf("Order Update - %s", status), body)
}

func (m *Mailer) send(to, subject, htmlBody string) {
	if to == "" {
		return
	}
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "Forever Store")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil && m.logger != nil {
		m.logger.Printf("mail %q to %s failed: %v", subject, to, err)
	}
}

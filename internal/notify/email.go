package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"gopkg.in/gomail.v2"
)

// Email template identifiers.
const (
	TemplateOrderOperator = "order_operator"
	TemplateOrderCustomer = "order_customer"
)

// EmailSender dispatches one transactional email from a template identifier
// and a flat parameter set.
type EmailSender interface {
	Send(templateID, to, subject string, params map[string]interface{}) error
}

var emailTemplates = map[string]*template.Template{
	TemplateOrderOperator: template.Must(template.New(TemplateOrderOperator).Parse(`
		<h2>Nová objednávka č. {{.OrderNumber}}</h2>
		<p>{{.FirstName}} {{.LastName}} &lt;{{.Email}}&gt;<br>
		{{.Street}}, {{.City}} {{.Zip}}</p>
		<p>Doprava: {{.Shipping}} ({{.ShippingCost}} Kč)<br>
		Platba: {{.Payment}} ({{.PaymentCost}} Kč)</p>
		{{if .PickupPoint}}<p>Výdejní místo: {{.PickupPoint}}</p>{{end}}
		{{.ItemsHTML}}
		<p><strong>Celkem: {{.Total}} Kč</strong></p>
		{{if .InvoiceURL}}<p>Faktura: <a href="{{.InvoiceURL}}">{{.InvoiceURL}}</a></p>{{end}}
		{{if .Note}}<p>Poznámka: {{.Note}}</p>{{end}}
	`)),
	TemplateOrderCustomer: template.Must(template.New(TemplateOrderCustomer).Parse(`
		<h2>Děkujeme za objednávku!</h2>
		<p>Dobrý den {{.FirstName}},</p>
		<p>Vaši objednávku č. <strong>{{.OrderNumber}}</strong> jsme přijali a pustíme se do výroby.</p>
		{{.ItemsHTML}}
		<p>Doprava: {{.ShippingCost}} Kč<br>
		Platba: {{.PaymentCost}} Kč<br>
		<strong>Celkem: {{.Total}} Kč</strong></p>
		{{if .BankAccount}}<p>Platbu prosím zašlete na účet {{.BankAccount}}, variabilní symbol {{.OrderNumber}}.</p>{{end}}
		{{if .InvoiceURL}}<p>Fakturu najdete zde: <a href="{{.InvoiceURL}}">{{.InvoiceURL}}</a></p>{{end}}
		<p>Magnetické vzpomínky</p>
	`)),
}

// GomailSender sends mail over SMTP. With no SMTP credentials configured it
// runs disabled and only logs, so development setups work without a mail
// account.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewGomailSender(host string, port int, user, password, from string) *GomailSender {
	if user == "" || password == "" {
		log.Println("Email: SMTP credentials not configured, sending disabled")
		return &GomailSender{from: from}
	}
	return &GomailSender{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (s *GomailSender) Send(templateID, to, subject string, params map[string]interface{}) error {
	tmpl, ok := emailTemplates[templateID]
	if !ok {
		return fmt.Errorf("unknown email template %q", templateID)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, params); err != nil {
		return fmt.Errorf("failed to render email template %q: %w", templateID, err)
	}

	if s.dialer == nil {
		log.Printf("Email: sending disabled, would send %q to %s", subject, to)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

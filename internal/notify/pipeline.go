package notify

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"strings"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
)

// Pipeline runs the post-commit notifications for a freshly assembled order:
// invoice PDF, file-hosting upload, operator and customer emails. It is only
// invoked after the order is durably stored; the caller keeps the cart when
// Dispatch fails so the shopper can retry.
type Pipeline struct {
	invoices  InvoiceGenerator
	files     FileHost
	email     EmailSender
	analytics Analytics

	operatorEmail string
	bankAccount   string
}

func NewPipeline(invoices InvoiceGenerator, files FileHost, email EmailSender, analytics Analytics, operatorEmail, bankAccount string) *Pipeline {
	return &Pipeline{
		invoices:      invoices,
		files:         files,
		email:         email,
		analytics:     analytics,
		operatorEmail: operatorEmail,
		bankAccount:   bankAccount,
	}
}

// Dispatch runs the pipeline and returns the hosted invoice URL. Any failed
// step aborts with an error; analytics is excluded from that rule and can
// never fail the dispatch.
func (p *Pipeline) Dispatch(ctx context.Context, order *models.Order) (string, error) {
	pdf, err := p.invoices.Render(order)
	if err != nil {
		return "", fmt.Errorf("invoice generation failed: %w", err)
	}

	invoiceURL, err := p.files.Upload(ctx, fmt.Sprintf("faktura-%s.pdf", order.Number), pdf)
	if err != nil {
		return "", fmt.Errorf("invoice upload failed: %w", err)
	}

	params := p.emailParams(order, invoiceURL)

	operatorSubject := fmt.Sprintf("Nová objednávka č. %s", order.Number)
	if err := p.email.Send(TemplateOrderOperator, p.operatorEmail, operatorSubject, params); err != nil {
		return "", fmt.Errorf("operator email failed: %w", err)
	}

	customerSubject := fmt.Sprintf("Potvrzení objednávky č. %s", order.Number)
	if err := p.email.Send(TemplateOrderCustomer, order.Contact.Email, customerSubject, params); err != nil {
		return "", fmt.Errorf("customer email failed: %w", err)
	}

	p.trackPurchase(order)

	return invoiceURL, nil
}

func (p *Pipeline) emailParams(order *models.Order, invoiceURL string) map[string]interface{} {
	params := map[string]interface{}{
		"OrderNumber":  order.Number,
		"FirstName":    order.Contact.FirstName,
		"LastName":     order.Contact.LastName,
		"Email":        order.Contact.Email,
		"Street":       order.Contact.Street,
		"City":         order.Contact.City,
		"Zip":          order.Contact.Zip,
		"Note":         order.Contact.Note,
		"Shipping":     string(order.Shipping),
		"Payment":      string(order.Payment),
		"ShippingCost": formatKc(order.ShippingCost),
		"PaymentCost":  formatKc(order.PaymentCost),
		"Total":        formatKc(order.Total),
		"ItemsHTML":    itemsHTML(order.Items),
		"InvoiceURL":   invoiceURL,
	}
	if order.PickupPoint != nil {
		params["PickupPoint"] = fmt.Sprintf("%s, %s, %s",
			order.PickupPoint.Name, order.PickupPoint.Street, order.PickupPoint.City)
	}
	if order.Payment == models.PaymentPrevodem {
		params["BankAccount"] = p.bankAccount
	}
	return params
}

// itemsHTML renders the itemized order fragment embedded in both emails.
func itemsHTML(items []models.OrderItem) template.HTML {
	var b strings.Builder
	b.WriteString("<table border=\"1\" cellpadding=\"4\"><tr><th>Položka</th><th>Ks</th><th>Celkem</th></tr>")
	for _, item := range items {
		name := template.HTMLEscapeString(item.ProductName)
		if item.VariantName != nil {
			name = fmt.Sprintf("%s – %s", name, template.HTMLEscapeString(*item.VariantName))
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%s Kč</td></tr>", name, item.Quantity, formatKc(item.LineTotal))
	}
	b.WriteString("</table>")
	return template.HTML(b.String())
}

func (p *Pipeline) trackPurchase(order *models.Order) {
	if p.analytics == nil {
		return
	}
	items := make([]map[string]interface{}, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, map[string]interface{}{
			"item_id":   item.ProductID,
			"item_name": item.ProductName,
			"quantity":  item.Quantity,
			"price":     item.UnitPrice,
		})
	}
	p.analytics.Track(EventPurchase, map[string]interface{}{
		"transaction_id": order.Number,
		"value":          order.Total,
		"currency":       "CZK",
		"items":          items,
	})
	log.Printf("Order %s: notifications dispatched", order.Number)
}

package notify

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
)

type fakeInvoices struct {
	fail bool
}

func (f *fakeInvoices) Render(order *models.Order) ([]byte, error) {
	if f.fail {
		return nil, fmt.Errorf("render error")
	}
	return []byte("%PDF-fake"), nil
}

type fakeFiles struct {
	fail     bool
	uploaded []string
}

func (f *fakeFiles) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if f.fail {
		return "", fmt.Errorf("upload error")
	}
	f.uploaded = append(f.uploaded, filename)
	return "https://files.example.com/" + filename, nil
}

type sentEmail struct {
	templateID string
	to         string
	params     map[string]interface{}
}

type fakeEmail struct {
	failOn string
	sent   []sentEmail
}

func (f *fakeEmail) Send(templateID, to, subject string, params map[string]interface{}) error {
	if f.failOn == templateID {
		return fmt.Errorf("smtp error")
	}
	f.sent = append(f.sent, sentEmail{templateID: templateID, to: to, params: params})
	return nil
}

type fakeAnalytics struct {
	events []string
}

func (f *fakeAnalytics) Track(event string, params map[string]interface{}) {
	f.events = append(f.events, event)
}

func testOrder() *models.Order {
	return &models.Order{
		Number: "20240115001",
		Contact: models.CustomerContact{
			FirstName: "Jana",
			LastName:  "Nováková",
			Email:     "jana.novakova@example.com",
			Street:    "Dlouhá 12",
			City:      "Praha",
			Zip:       "11000",
		},
		Shipping: models.ShippingZasilkovna,
		Payment:  models.PaymentPrevodem,
		PickupPoint: &models.PickupPoint{
			ID: "1234", Name: "Z-Box Anděl", Street: "Nádražní 1", City: "Praha",
		},
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Magnetky A5", Quantity: 9, UnitPrice: 22.78, LineTotal: 205},
		},
		Subtotal:     205,
		ShippingCost: 65,
		PaymentCost:  0,
		Total:        270,
	}
}

func newTestPipeline(invoices *fakeInvoices, files *fakeFiles, email *fakeEmail, analytics *fakeAnalytics) *Pipeline {
	return NewPipeline(invoices, files, email, analytics, "objednavky@example.com", "123456789/0100")
}

func TestDispatchSendsBothEmails(t *testing.T) {
	files := &fakeFiles{}
	email := &fakeEmail{}
	analytics := &fakeAnalytics{}
	p := newTestPipeline(&fakeInvoices{}, files, email, analytics)

	invoiceURL, err := p.Dispatch(context.Background(), testOrder())
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if invoiceURL != "https://files.example.com/faktura-20240115001.pdf" {
		t.Errorf("Unexpected invoice URL: %s", invoiceURL)
	}
	if len(email.sent) != 2 {
		t.Fatalf("Expected 2 emails, got %d", len(email.sent))
	}
	if email.sent[0].templateID != TemplateOrderOperator || email.sent[0].to != "objednavky@example.com" {
		t.Errorf("Expected operator email first, got %+v", email.sent[0])
	}
	if email.sent[1].templateID != TemplateOrderCustomer || email.sent[1].to != "jana.novakova@example.com" {
		t.Errorf("Expected customer email second, got %+v", email.sent[1])
	}
	if len(analytics.events) != 1 || analytics.events[0] != EventPurchase {
		t.Errorf("Expected one purchase event, got %v", analytics.events)
	}
}

func TestDispatchEmailParams(t *testing.T) {
	email := &fakeEmail{}
	p := newTestPipeline(&fakeInvoices{}, &fakeFiles{}, email, &fakeAnalytics{})

	if _, err := p.Dispatch(context.Background(), testOrder()); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	params := email.sent[0].params
	if params["OrderNumber"] != "20240115001" {
		t.Errorf("Expected order number in params, got %v", params["OrderNumber"])
	}
	if params["BankAccount"] != "123456789/0100" {
		t.Errorf("Expected bank account for bank-transfer orders, got %v", params["BankAccount"])
	}
	if point, ok := params["PickupPoint"].(string); !ok || !strings.Contains(point, "Z-Box Anděl") {
		t.Errorf("Expected pickup point in params, got %v", params["PickupPoint"])
	}
	items := fmt.Sprintf("%v", params["ItemsHTML"])
	if !strings.Contains(items, "Magnetky A5") {
		t.Errorf("Expected itemized fragment, got %s", items)
	}
}

func TestDispatchInvoiceFailureAborts(t *testing.T) {
	email := &fakeEmail{}
	p := newTestPipeline(&fakeInvoices{fail: true}, &fakeFiles{}, email, &fakeAnalytics{})

	_, err := p.Dispatch(context.Background(), testOrder())
	if err == nil {
		t.Fatal("Expected error from invoice failure")
	}
	if len(email.sent) != 0 {
		t.Errorf("Expected no emails after invoice failure, got %d", len(email.sent))
	}
}

func TestDispatchUploadFailureAborts(t *testing.T) {
	email := &fakeEmail{}
	p := newTestPipeline(&fakeInvoices{}, &fakeFiles{fail: true}, email, &fakeAnalytics{})

	_, err := p.Dispatch(context.Background(), testOrder())
	if err == nil {
		t.Fatal("Expected error from upload failure")
	}
	if len(email.sent) != 0 {
		t.Errorf("Expected no emails after upload failure, got %d", len(email.sent))
	}
}

func TestDispatchOperatorEmailFailureSkipsCustomer(t *testing.T) {
	email := &fakeEmail{failOn: TemplateOrderOperator}
	analytics := &fakeAnalytics{}
	p := newTestPipeline(&fakeInvoices{}, &fakeFiles{}, email, analytics)

	_, err := p.Dispatch(context.Background(), testOrder())
	if err == nil {
		t.Fatal("Expected error from operator email failure")
	}
	if len(email.sent) != 0 {
		t.Errorf("Expected no customer email after operator failure, got %d", len(email.sent))
	}
	if len(analytics.events) != 0 {
		t.Errorf("Expected no purchase event on failed dispatch, got %v", analytics.events)
	}
}

func TestDispatchWithoutAnalytics(t *testing.T) {
	p := NewPipeline(&fakeInvoices{}, &fakeFiles{}, &fakeEmail{}, nil, "op@example.com", "")

	if _, err := p.Dispatch(context.Background(), testOrder()); err != nil {
		t.Fatalf("Dispatch failed without analytics: %v", err)
	}
}

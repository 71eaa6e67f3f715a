package notify

import (
	"log"

	"github.com/go-resty/resty/v2"
)

// Analytics event names.
const (
	EventAddToCart     = "add_to_cart"
	EventBeginCheckout = "begin_checkout"
	EventPurchase      = "purchase"
)

// Analytics emits storefront events. Emission is fire-and-forget: failures
// must never affect the shopping flow.
type Analytics interface {
	Track(event string, params map[string]interface{})
}

// HTTPAnalytics posts events to a collector endpoint.
type HTTPAnalytics struct {
	client    *resty.Client
	measureID string
}

func NewHTTPAnalytics(baseURL, measureID string) *HTTPAnalytics {
	return &HTTPAnalytics{
		client:    resty.New().SetBaseURL(baseURL),
		measureID: measureID,
	}
}

func (a *HTTPAnalytics) Track(event string, params map[string]interface{}) {
	body := map[string]interface{}{
		"measurement_id": a.measureID,
		"event":          event,
		"params":         params,
	}
	resp, err := a.client.R().SetBody(body).Post("/collect")
	if err != nil {
		log.Printf("Analytics: failed to track %s: %v", event, err)
		return
	}
	if resp.IsError() {
		log.Printf("Analytics: collector rejected %s with status %d", event, resp.StatusCode())
	}
}

// NopAnalytics drops events; used when no collector is configured.
type NopAnalytics struct{}

func (NopAnalytics) Track(event string, params map[string]interface{}) {}

package notify

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
)

// PointDirectory resolves a parcel-locker pickup point by its widget id.
type PointDirectory interface {
	Point(ctx context.Context, id string) (*models.PickupPoint, error)
}

// PacketaClient fetches Zásilkovna branch descriptors. The storefront widget
// hands over a point id; we fetch the authoritative descriptor rather than
// trusting the browser payload.
type PacketaClient struct {
	client *resty.Client
	apiKey string
}

func NewPacketaClient(baseURL, apiKey string) *PacketaClient {
	return &PacketaClient{
		client: resty.New().SetBaseURL(baseURL),
		apiKey: apiKey,
	}
}

func (c *PacketaClient) Point(ctx context.Context, id string) (*models.PickupPoint, error) {
	var result struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Street string `json:"street"`
		City   string `json:"city"`
		Zip    string `json:"zip"`
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("apiKey", c.apiKey).
		SetResult(&result).
		Get(fmt.Sprintf("/branch/%s", id))
	if err != nil {
		return nil, fmt.Errorf("pickup point lookup failed: %w", err)
	}
	if resp.StatusCode() == 404 {
		return nil, fmt.Errorf("pickup point %s not found", id)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("pickup point lookup failed with status %d", resp.StatusCode())
	}

	return &models.PickupPoint{
		ID:     result.ID,
		Name:   result.Name,
		Street: result.Street,
		City:   result.City,
		Zip:    result.Zip,
	}, nil
}

// Package feeds renders the admin export documents: the price-comparison
// XML feed and the sitemap. Both are pure functions over the catalog.
package feeds

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
)

type shopItem struct {
	XMLName      xml.Name `xml:"SHOPITEM"`
	ItemID       string   `xml:"ITEM_ID"`
	ProductName  string   `xml:"PRODUCTNAME"`
	Description  string   `xml:"DESCRIPTION,omitempty"`
	URL          string   `xml:"URL"`
	ImgURL       string   `xml:"IMGURL,omitempty"`
	PriceVAT     string   `xml:"PRICE_VAT"`
	CategoryText string   `xml:"CATEGORYTEXT,omitempty"`
}

type shop struct {
	XMLName xml.Name   `xml:"SHOP"`
	Items   []shopItem `xml:"SHOPITEM"`
}

// Heureka renders the price-comparison feed for all active products. Each
// variant becomes its own feed item because variants can carry their own
// price.
func Heureka(products []models.Product, baseURL string) ([]byte, error) {
	feed := shop{}
	for i := range products {
		product := &products[i]
		if !product.Active {
			continue
		}
		url := productURL(baseURL, product.Slug)
		if len(product.Variants) == 0 {
			feed.Items = append(feed.Items, shopItem{
				ItemID:       fmt.Sprintf("%d", product.ID),
				ProductName:  product.Name,
				Description:  product.Description,
				URL:          url,
				ImgURL:       product.ImageURL,
				PriceVAT:     formatPrice(product.BasePrice),
				CategoryText: product.Category,
			})
			continue
		}
		for j := range product.Variants {
			variant := &product.Variants[j]
			feed.Items = append(feed.Items, shopItem{
				ItemID:       fmt.Sprintf("%d-%d", product.ID, variant.ID),
				ProductName:  fmt.Sprintf("%s %s", product.Name, variant.Name),
				Description:  product.Description,
				URL:          url,
				ImgURL:       product.ImageURL,
				PriceVAT:     formatPrice(product.UnitPrice(variant)),
				CategoryText: product.Category,
			})
		}
	}

	body, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render feed: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

func productURL(baseURL, slug string) string {
	return fmt.Sprintf("%s/produkt/%s", strings.TrimRight(baseURL, "/"), slug)
}

func formatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

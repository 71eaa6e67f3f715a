// Package checkout implements the checkout flow: form validation, order
// number minting and order assembly. Handlers call these pieces in order and
// only touch the notification collaborators once assembly succeeded.
package checkout

import (
	"net/mail"
	"strings"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
)

// Validate checks the whole checkout form and returns every violated field
// at once, keyed by field name. An empty map means the form may be
// submitted. The flow must not advance while this map is non-empty.
func Validate(req *models.CheckoutRequest) map[string]string {
	violations := make(map[string]string)

	requireField(violations, "first_name", req.FirstName, "Vyplňte jméno")
	requireField(violations, "last_name", req.LastName, "Vyplňte příjmení")
	requireField(violations, "street", req.Street, "Vyplňte ulici a číslo popisné")
	requireField(violations, "city", req.City, "Vyplňte město")
	requireField(violations, "zip", req.Zip, "Vyplňte PSČ")

	if strings.TrimSpace(req.Email) == "" {
		violations["email"] = "Vyplňte e-mail"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		violations["email"] = "Zadejte platný e-mail"
	}

	if strings.TrimSpace(req.Shipping) == "" {
		violations["shipping"] = "Vyberte způsob dopravy"
	} else if models.ShippingMethod(req.Shipping) == models.ShippingZasilkovna {
		if req.PickupPoint == nil && strings.TrimSpace(req.PickupPointID) == "" {
			violations["pickup_point"] = "Vyberte výdejní místo Zásilkovny"
		}
	}

	if strings.TrimSpace(req.Payment) == "" {
		violations["payment"] = "Vyberte způsob platby"
	}

	if !req.TermsAccepted {
		violations["terms_accepted"] = "Potvrďte souhlas s obchodními podmínkami"
	}

	return violations
}

func requireField(violations map[string]string, field, value, message string) {
	if strings.TrimSpace(value) == "" {
		violations[field] = message
	}
}

package checkout

import (
	"time"

	"sanfeliz/internal/order"
)

// Item is one line of a payment preference.
type Item struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	PictureURL  string `json:"picture_url,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	CurrencyID  string `json:"currency_id"`
}

// Preference is the cart summary handed to the payment provider.
type Preference struct {
	Items             []Item `json:"items"`
	ExternalReference string `json:"external_reference,omitempty"`
}

// PreferenceResult is the provider-hosted payment session handle.
type PreferenceResult struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point,omitempty"`
}

type Channel string

const (
	ChannelCheckout Channel = "checkout"
	ChannelWhatsApp Channel = "whatsapp"
)

// Order is what gets recorded after a hand-off.
type Order struct {
	ID           string       `json:"id"`
	ProductID    string       `json:"product_id"`
	ProductName  string       `json:"product_name"`
	Total        int64        `json:"total"`
	Summary      []order.Line `json:"summary"`
	Notes        string       `json:"notes,omitempty"`
	PreferenceID string       `json:"preference_id,omitempty"`
	Channel      Channel      `json:"channel"`
	CreatedAt    time.Time    `json:"created_at"`
}

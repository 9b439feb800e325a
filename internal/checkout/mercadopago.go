package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const mercadoPagoURL = "https://api.mercadopago.com/checkout/preferences"

// Relay creates payment sessions with the provider.
type Relay interface {
	CreatePreference(ctx context.Context, pref Preference) (*PreferenceResult, error)
}

type MercadoPagoClient struct {
	accessToken string
	siteURL     string
	endpoint    string
	http        *http.Client
}

func NewMercadoPagoClient(accessToken, siteURL string) *MercadoPagoClient {
	return &MercadoPagoClient{
		accessToken: accessToken,
		siteURL:     strings.TrimRight(siteURL, "/"),
		endpoint:    mercadoPagoURL,
		http:        &http.Client{Timeout: 30 * time.Second},
	}
}

// WithEndpoint overrides the preferences URL (tests, sandboxes).
func (m *MercadoPagoClient) WithEndpoint(endpoint string) *MercadoPagoClient {
	m.endpoint = endpoint
	return m
}

// CreatePreference posts the items and returns the preference handle.
func (m *MercadoPagoClient) CreatePreference(ctx context.Context, pref Preference) (*PreferenceResult, error) {
	raw, err := m.post(ctx, pref.Items, pref.ExternalReference)
	if err != nil {
		return nil, err
	}

	var result PreferenceResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	if result.ID == "" {
		return nil, errors.New("mercadopago returned no preference id")
	}
	return &result, nil
}

// Forward relays arbitrary items and returns the provider JSON untouched.
func (m *MercadoPagoClient) Forward(ctx context.Context, items json.RawMessage) ([]byte, error) {
	return m.post(ctx, items, "")
}

func (m *MercadoPagoClient) post(ctx context.Context, items any, reference string) ([]byte, error) {
	if m.accessToken == "" {
		return nil, errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	}

	payload := map[string]any{
		"items": items,
		"back_urls": map[string]string{
			"success": m.siteURL + "/success",
			"failure": m.siteURL + "/failure",
			"pending": m.siteURL + "/pending",
		},
		"auto_return": "approved",
		"payment_methods": map[string]any{
			"excluded_payment_types": []map[string]string{
				{"id": "ticket"},
			},
			"installments": 1,
		},
	}
	if reference != "" {
		payload["external_reference"] = reference
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+m.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("mercadopago api error (%d): %s", resp.StatusCode, string(raw))
	}

	return raw, nil
}

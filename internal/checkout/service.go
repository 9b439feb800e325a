package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"sanfeliz/internal/order"
)

var (
	ErrIncomplete  = errors.New("order is missing required selections")
	ErrRelayFailed = errors.New("payment provider rejected the order")
)

// Tracker receives conversion events (the storefront's analytics pixel).
type Tracker func(ctx context.Context, event string, props map[string]any)

// LogTracker writes events to the standard logger.
func LogTracker(ctx context.Context, event string, props map[string]any) {
	log.Printf("track %s %v", event, props)
}

type Service struct {
	relay   Relay
	repo    Repository
	tracker Tracker
}

func NewService(relay Relay, repo Repository, tracker Tracker) *Service {
	if tracker == nil {
		tracker = func(context.Context, string, map[string]any) {}
	}
	return &Service{relay: relay, repo: repo, tracker: tracker}
}

// Cart builds the preference sent to the provider: one line priced at
// the engine total, described by the summary.
func Cart(e *order.Engine) Preference {
	p := e.Product()

	var desc []string
	for _, l := range e.Summary() {
		if l.Label == "Producto" || l.Label == "Total" {
			continue
		}
		desc = append(desc, l.Label+": "+l.Value)
	}

	return Preference{
		Items: []Item{{
			ID:          p.ID,
			Title:       p.Name,
			Description: truncate(strings.Join(desc, " | "), 250),
			PictureURL:  p.Image,
			Quantity:    1,
			UnitPrice:   e.Total(),
			CurrencyID:  "CLP",
		}},
	}
}

// Submission is a snapshot of an engine taken before the provider call,
// so the call itself never reads the engine.
type Submission struct {
	Preference Preference
	Order      *Order
}

// Submit requests a payment session for a complete configuration. The
// engine is only read; on failure it is left as it was so the customer
// can retry.
func (s *Service) Submit(ctx context.Context, e *order.Engine) (*PreferenceResult, *Order, error) {
	sub, err := s.Prepare(ctx, e)
	if err != nil {
		return nil, nil, err
	}
	return s.Complete(ctx, sub)
}

// Prepare validates the engine and snapshots the cart.
func (s *Service) Prepare(ctx context.Context, e *order.Engine) (*Submission, error) {
	if !e.IsComplete() {
		return nil, ErrIncomplete
	}

	s.track(ctx, e, "checkout")

	return &Submission{
		Preference: Cart(e),
		Order:      s.record(e, ChannelCheckout),
	}, nil
}

// Complete calls the provider and records the order on success.
func (s *Service) Complete(ctx context.Context, sub *Submission) (*PreferenceResult, *Order, error) {
	result, err := s.relay.CreatePreference(ctx, sub.Preference)
	if err != nil {
		log.Println("checkout: create preference:", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}

	o := sub.Order
	o.PreferenceID = result.ID
	if err := s.repo.Save(ctx, o); err != nil {
		// the customer already has a payment session; keep going
		log.Println("checkout: save order:", err)
	}

	return result, o, nil
}

// RecordWhatsApp stores an order sent through the WhatsApp deep link.
func (s *Service) RecordWhatsApp(ctx context.Context, e *order.Engine) (*Order, error) {
	if !e.IsComplete() {
		return nil, ErrIncomplete
	}

	s.track(ctx, e, "whatsapp")

	o := s.record(e, ChannelWhatsApp)
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Orders(ctx context.Context, limit int) ([]Order, error) {
	return s.repo.List(ctx, limit)
}

func (s *Service) record(e *order.Engine, ch Channel) *Order {
	p := e.Product()
	return &Order{
		ProductID:   p.ID,
		ProductName: p.Name,
		Total:       e.Total(),
		Summary:     e.Summary(),
		Notes:       e.Notes(),
		Channel:     ch,
	}
}

func (s *Service) track(ctx context.Context, e *order.Engine, channel string) {
	p := e.Product()
	s.tracker(ctx, "InitiateCheckout", map[string]any{
		"content_name": p.Name,
		"content_type": string(p.Type),
		"channel":      channel,
		"value":        e.Total(),
		"currency":     "CLP",
	})
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

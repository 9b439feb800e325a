package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sanfeliz/internal/catalog"
	"sanfeliz/internal/order"
)

type fakeRelay struct {
	err   error
	calls []Preference
}

func (f *fakeRelay) CreatePreference(ctx context.Context, pref Preference) (*PreferenceResult, error) {
	f.calls = append(f.calls, pref)
	if f.err != nil {
		return nil, f.err
	}
	return &PreferenceResult{ID: "pref-123", InitPoint: "https://mp.test/init"}, nil
}

func bowlEngine() *order.Engine {
	return order.New(catalog.Product{
		ID:    "4",
		Name:  "Bowl Energético",
		Price: 19990,
		Type:  catalog.TypeBowl,
	}, order.DefaultConfig())
}

func simpleEngine() *order.Engine {
	return order.New(catalog.Product{
		ID:    "1",
		Name:  "Despertar Dulce",
		Price: 26990,
		Type:  catalog.TypeSimple,
		Options: map[catalog.Category][]catalog.Option{
			catalog.Cake: {{ID: "c1", Name: "Red Velvet"}},
		},
	}, order.DefaultConfig())
}

func TestSubmitIncomplete(t *testing.T) {
	relay := &fakeRelay{}
	svc := NewService(relay, NewInMemoryRepository(), nil)

	_, _, err := svc.Submit(context.Background(), simpleEngine())
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if len(relay.calls) != 0 {
		t.Fatalf("relay must not be called for incomplete orders")
	}
}

func TestSubmitSuccess(t *testing.T) {
	relay := &fakeRelay{}
	repo := NewInMemoryRepository()

	var events []string
	tracker := func(ctx context.Context, event string, props map[string]any) {
		events = append(events, event)
		if props["value"] != int64(26990+6990) {
			t.Errorf("unexpected tracked value %v", props["value"])
		}
	}
	svc := NewService(relay, repo, tracker)

	e := simpleEngine()
	e.SelectSingle(catalog.Cake, "c1")
	e.SetCustomization(true)

	result, o, err := svc.Submit(context.Background(), e)
	if err != nil {
		t.Fatal(err)
	}
	if result.ID != "pref-123" || o.PreferenceID != "pref-123" {
		t.Fatalf("unexpected result %+v %+v", result, o)
	}

	item := relay.calls[0].Items[0]
	if item.UnitPrice != 33980 || item.Quantity != 1 || item.CurrencyID != "CLP" {
		t.Fatalf("unexpected item %+v", item)
	}
	if !strings.Contains(item.Description, "Pastel: Red Velvet") {
		t.Fatalf("description missing selection: %q", item.Description)
	}

	if len(events) != 1 || events[0] != "InitiateCheckout" {
		t.Fatalf("unexpected events %v", events)
	}

	orders, _ := repo.List(context.Background(), 0)
	if len(orders) != 1 || orders[0].Channel != ChannelCheckout || orders[0].Total != 33980 {
		t.Fatalf("order not recorded: %+v", orders)
	}
}

func TestSubmitRelayFailureKeepsEngine(t *testing.T) {
	relay := &fakeRelay{err: errors.New("boom")}
	repo := NewInMemoryRepository()
	svc := NewService(relay, repo, nil)

	e := bowlEngine()
	e.SetNotes("para las 9am")

	_, _, err := svc.Submit(context.Background(), e)
	if !errors.Is(err, ErrRelayFailed) {
		t.Fatalf("expected ErrRelayFailed, got %v", err)
	}
	if e.State() != order.StateOpen || e.Notes() != "para las 9am" {
		t.Fatalf("engine state was touched")
	}

	orders, _ := repo.List(context.Background(), 0)
	if len(orders) != 0 {
		t.Fatalf("failed checkout must not be recorded")
	}
}

func TestRecordWhatsApp(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(&fakeRelay{}, repo, nil)

	o, err := svc.RecordWhatsApp(context.Background(), bowlEngine())
	if err != nil {
		t.Fatal(err)
	}
	if o.Channel != ChannelWhatsApp || o.ID == "" || o.Total != 19990 {
		t.Fatalf("unexpected order %+v", o)
	}
}

func TestMercadoPagoClient(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"pref-9","init_point":"https://mp.test/9"}`))
	}))
	defer srv.Close()

	client := NewMercadoPagoClient("secret", "https://sanfeliz.cl/").WithEndpoint(srv.URL)

	result, err := client.CreatePreference(context.Background(), Cart(bowlEngine()))
	if err != nil {
		t.Fatal(err)
	}
	if result.ID != "pref-9" {
		t.Fatalf("unexpected id %q", result.ID)
	}

	backURLs := got["back_urls"].(map[string]any)
	if backURLs["success"] != "https://sanfeliz.cl/success" {
		t.Fatalf("unexpected back_urls %v", backURLs)
	}
	if got["auto_return"] != "approved" {
		t.Fatalf("auto_return not set")
	}

	bad := NewMercadoPagoClient("wrong", "https://sanfeliz.cl").WithEndpoint(srv.URL)
	if _, err := bad.CreatePreference(context.Background(), Cart(bowlEngine())); err == nil {
		t.Fatal("expected error on 401")
	}
}

package quotes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/papertrade/papertrade/internal/models"
)

func TestHTTPProvider_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stock/AAPL/quote" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"symbol":"AAPL","companyName":"Apple Inc.","latestPrice":150.25}`))
	}))
	defer server.Close()

	p := NewHTTPProvider(server.URL, "test-key", time.Second)

	quote, err := p.Lookup(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if quote.Symbol != "AAPL" {
		t.Errorf("Expected symbol AAPL, got %s", quote.Symbol)
	}
	if quote.Name != "Apple Inc." {
		t.Errorf("Expected name Apple Inc., got %s", quote.Name)
	}
	if quote.Price.String() != "150.25" {
		t.Errorf("Expected price 150.25, got %s", quote.Price)
	}
}

func TestHTTPProvider_UnknownSymbol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	p := NewHTTPProvider(server.URL, "test-key", time.Second)

	_, err := p.Lookup(context.Background(), "NOPE")
	if !errors.Is(err, models.ErrUnknownSymbol) {
		t.Errorf("Expected ErrUnknownSymbol, got %v", err)
	}
}

func TestHTTPProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewHTTPProvider(server.URL, "test-key", time.Second)

	_, err := p.Lookup(context.Background(), "AAPL")
	if !errors.Is(err, models.ErrQuoteUnavailable) {
		t.Errorf("Expected ErrQuoteUnavailable, got %v", err)
	}
}

func TestHTTPProvider_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	p := NewHTTPProvider(server.URL, "test-key", 10*time.Millisecond)

	_, err := p.Lookup(context.Background(), "AAPL")
	if !errors.Is(err, models.ErrQuoteUnavailable) {
		t.Errorf("Expected ErrQuoteUnavailable on timeout, got %v", err)
	}
}

func TestHTTPProvider_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	p := NewHTTPProvider(server.URL, "test-key", time.Second)

	_, err := p.Lookup(context.Background(), "AAPL")
	if !errors.Is(err, models.ErrQuoteUnavailable) {
		t.Errorf("Expected ErrQuoteUnavailable, got %v", err)
	}
}

func TestHTTPProvider_NonPositivePrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"AAPL","companyName":"Apple Inc.","latestPrice":0}`))
	}))
	defer server.Close()

	p := NewHTTPProvider(server.URL, "test-key", time.Second)

	_, err := p.Lookup(context.Background(), "AAPL")
	if !errors.Is(err, models.ErrQuoteUnavailable) {
		t.Errorf("Expected ErrQuoteUnavailable for zero price, got %v", err)
	}
}

func TestSimulated_Lookup(t *testing.T) {
	s := NewSimulated()

	quote, err := s.Lookup(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if quote.Symbol != "AAPL" {
		t.Errorf("Expected symbol AAPL, got %s", quote.Symbol)
	}
	if quote.Name == "" {
		t.Error("Expected a display name")
	}
	if !quote.Price.IsPositive() {
		t.Errorf("Expected positive price, got %s", quote.Price)
	}
}

func TestSimulated_UnknownSymbol(t *testing.T) {
	s := NewSimulated()

	_, err := s.Lookup(context.Background(), "NOPE")
	if !errors.Is(err, models.ErrUnknownSymbol) {
		t.Errorf("Expected ErrUnknownSymbol, got %v", err)
	}
}

func TestSimulated_PricesStayPositive(t *testing.T) {
	s := NewSimulated()

	for i := 0; i < 1000; i++ {
		quote, err := s.Lookup(context.Background(), "TSLA")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if !quote.Price.IsPositive() {
			t.Fatalf("Price went non-positive after %d walks: %s", i, quote.Price)
		}
	}
}

func TestSimulated_Symbols(t *testing.T) {
	s := NewSimulated()

	symbols := s.Symbols()
	if len(symbols) != 5 {
		t.Errorf("Expected 5 symbols, got %d", len(symbols))
	}
	if symbols[0] != "AAPL" {
		t.Errorf("Expected sorted symbols starting with AAPL, got %v", symbols)
	}
}

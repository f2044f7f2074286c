// Package quotes resolves ticker symbols to current prices. The rest of
// the system treats the provider as opaque: it either returns a quote,
// reports the symbol as unknown, or reports itself as unavailable.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/papertrade/papertrade/internal/models"
	"github.com/shopspring/decimal"
)

// Provider resolves a symbol to a current quote.
type Provider interface {
	Lookup(ctx context.Context, symbol string) (*models.Quote, error)
}

// HTTPProvider fetches quotes from an IEX-style REST endpoint:
// GET {base}/stock/{symbol}/quote?token={key}.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPProvider creates a provider against the given base URL. Every
// lookup is bounded by timeout on top of whatever deadline the caller's
// context already carries.
func NewHTTPProvider(baseURL, apiKey string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
		client:  &http.Client{},
	}
}

// quotePayload matches the provider's wire format.
type quotePayload struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	LatestPrice decimal.Decimal `json:"latestPrice"`
}

// Lookup fetches the current quote for symbol. A 404 from the provider
// means the symbol does not exist; any other failure (network, timeout,
// bad payload, non-positive price) is ErrQuoteUnavailable.
func (p *HTTPProvider) Lookup(ctx context.Context, symbol string) (*models.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	reqURL := fmt.Sprintf("%s/stock/%s/quote?token=%s",
		p.baseURL, url.PathEscape(symbol), url.QueryEscape(p.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrQuoteUnavailable, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.ErrUnknownSymbol
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned status %d", models.ErrQuoteUnavailable, resp.StatusCode)
	}

	var payload quotePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrQuoteUnavailable, err)
	}

	if !payload.LatestPrice.IsPositive() {
		return nil, fmt.Errorf("%w: non-positive price for %s", models.ErrQuoteUnavailable, symbol)
	}

	return &models.Quote{
		Symbol: payload.Symbol,
		Name:   payload.CompanyName,
		Price:  payload.LatestPrice,
	}, nil
}

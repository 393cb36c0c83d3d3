package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	apperrors "metalwatch/internal/errors"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL, 5*time.Second, zerolog.Nop())
}

func TestLatest(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prices/XAU/latest" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.Write([]byte(`{"date":"2026-08-27","price_1g":7300,"carat_prices":{"22":6686.8}}`))
	})

	q, err := c.Latest(context.Background(), "XAU")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if q.Date != "2026-08-27" || q.Price1g != 7300 {
		t.Errorf("quote = %+v", q)
	}
	if q.CaratPrices["22"] != 6686.8 {
		t.Errorf("carat prices = %v", q.CaratPrices)
	}
	if q.Price8g != nil {
		t.Error("absent price_8g must stay nil")
	}
}

func TestComparison(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"today_prices": {"date":"2026-08-27","price_1g":7350},
			"yesterday_prices": {"date":"2026-08-26","price_1g":7300}
		}`))
	})

	cq, err := c.Comparison(context.Background(), "XAU")
	if err != nil {
		t.Fatalf("Comparison: %v", err)
	}
	if cq.Today.Price1g != 7350 || cq.Yesterday.Price1g != 7300 {
		t.Errorf("comparison = %+v", cq)
	}
}

func TestHistoryMonthParam(t *testing.T) {
	var gotMonth string
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMonth = r.URL.Query().Get("month")
		w.Write([]byte(`{
			"history":[{"date":"2026-08-01","price_1g":7300}],
			"availableMonths":["2026-08"],
			"selectedMonth":"2026-08"
		}`))
	})

	h, err := c.History(context.Background(), "XAU", "2026-08")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if gotMonth != "2026-08" {
		t.Errorf("month param = %q", gotMonth)
	}
	if len(h.Quotes) != 1 || len(h.AvailableMonths) != 1 || h.SelectedMonth != "2026-08" {
		t.Errorf("history = %+v", h)
	}

	// Empty month omits the parameter entirely.
	if _, err := c.History(context.Background(), "XAU", ""); err != nil {
		t.Fatalf("History without month: %v", err)
	}
	if gotMonth != "" {
		t.Errorf("empty month leaked as %q", gotMonth)
	}
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Latest(context.Background(), "XRH")
	if !errors.Is(err, apperrors.ErrMetalNotFound) {
		t.Errorf("404 must map to ErrMetalNotFound, got %v", err)
	}
}

func TestServerErrorWrapsTransport(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Latest(context.Background(), "XAU")
	var terr *apperrors.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if terr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", terr.Status)
	}
}

func TestMalformedBody(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"date": `))
	})

	_, err := c.Latest(context.Background(), "XAU")
	var terr *apperrors.TransportError
	if !errors.As(err, &terr) {
		t.Errorf("expected TransportError for malformed JSON, got %v", err)
	}
}

package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testServer(t *testing.T, hits *int64, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt64(hits, 1)
		}
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("User-Agent = %q, want %q", ua, userAgent)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestFetchCommodities_Success(t *testing.T) {
	body := `{"commodities":[
		{"commodity_name":"Gold","terminal_name":"CBD Lorville","price_buy":5800,"price_sell":0,"status_buy":1,"scu_buy":120},
		{"commodity_name":"Gold","terminal_name":"Area18","price_buy":0,"price_sell":6400,"status_sell":1,"scu_sell_stock":90}
	]}`
	srv := testServer(t, nil, body, 200)
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, time.Minute)
	offers, err := c.FetchCommodities(context.Background())
	if err != nil {
		t.Fatalf("FetchCommodities: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("len(offers) = %d, want 2", len(offers))
	}
	if offers[0].CommodityName != "Gold" || offers[0].PriceBuy != 5800 {
		t.Errorf("offer[0] = %+v", offers[0])
	}
	if offers[1].ScuSellStock != 90 {
		t.Errorf("offer[1].ScuSellStock = %v, want 90", offers[1].ScuSellStock)
	}
}

func TestFetchCommodities_HTTPError(t *testing.T) {
	srv := testServer(t, nil, `upstream exploded`, 502)
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, time.Minute)
	offers, err := c.FetchCommodities(context.Background())
	if err == nil {
		t.Fatal("expected error on HTTP 502")
	}
	if offers != nil {
		t.Errorf("offers = %v, want nil on error", offers)
	}
}

func TestFetchCommodities_DecodeError(t *testing.T) {
	srv := testServer(t, nil, `{not json`, 200)
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, time.Minute)
	if _, err := c.FetchCommodities(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFetchCommodities_NetworkError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second, time.Minute)
	if _, err := c.FetchCommodities(context.Background()); err == nil {
		t.Fatal("expected network error")
	}
}

func TestFetchCommodities_SnapshotCached(t *testing.T) {
	var hits int64
	srv := testServer(t, &hits, `{"commodities":[{"commodity_name":"Iron","terminal_name":"Area18"}]}`, 200)
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, time.Minute)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := c.FetchCommodities(ctx); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("upstream hits = %d, want 1 (snapshot cached)", got)
	}
}

func TestPing(t *testing.T) {
	srv := testServer(t, nil, `{"commodities":[]}`, 200)
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, time.Minute)
	if !c.Ping(context.Background()) {
		t.Error("Ping = false against healthy server")
	}
	srv.Close()
	if c.Ping(context.Background()) {
		t.Error("Ping = true against closed server")
	}
}

func TestPing_ServedFromFreshCache(t *testing.T) {
	var hits int64
	srv := testServer(t, &hits, `{"commodities":[{"commodity_name":"Iron","terminal_name":"Area18"}]}`, 200)
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, time.Minute)
	ctx := context.Background()
	if _, err := c.FetchCommodities(ctx); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if !c.Ping(ctx) {
			t.Fatalf("Ping %d = false with fresh snapshot", i)
		}
	}
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("upstream hits = %d, want 1 (pings answered from cache)", got)
	}
}

func TestPing_GatedByLimiter(t *testing.T) {
	var hits int64
	srv := testServer(t, &hits, `{"commodities":[]}`, 200)
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if c.Ping(ctx) {
		t.Error("Ping = true with cancelled context")
	}
	if got := atomic.LoadInt64(&hits); got != 0 {
		t.Errorf("upstream hits = %d, want 0 (limiter gates the probe)", got)
	}
}

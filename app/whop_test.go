package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
)

type mockResp struct {
	status int
	body   string
}

// mockRoundTripper serves queued responses keyed by "METHOD url" and
// records request bodies for mutation assertions.
type mockRoundTripper struct {
	mu        sync.Mutex
	responses map[string][]mockResp
	calls     map[string]int
	bodies    map[string][]string
}

func newMockRoundTripper(responses map[string][]mockResp) *mockRoundTripper {
	return &mockRoundTripper{
		responses: responses,
		calls:     make(map[string]int),
		bodies:    make(map[string][]string),
	}
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := req.Method + " " + req.URL.String()
	m.calls[key]++

	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		if len(raw) > 0 {
			m.bodies[key] = append(m.bodies[key], string(raw))
		}
	}

	list, ok := m.responses[key]
	if !ok || len(list) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	resp := list[0]
	m.responses[key] = list[1:]

	return &http.Response{
		StatusCode: resp.status,
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func (m *mockRoundTripper) callCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[key]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWhopClient(rt http.RoundTripper) *WhopClient {
	return &WhopClient{
		baseURL:   "https://api.whop.com/api/v1",
		apiKey:    "test-key",
		companyID: "biz_test",
		httpc:     &http.Client{Transport: rt},
		pagePacer: nopPacer{},
		logger:    testLogger(),
	}
}

const plansBase = "https://api.whop.com/api/v1/plans"

func plansURL(productID, cursor string) string {
	u := plansBase + "?"
	if cursor != "" {
		u += "after=" + cursor + "&"
	}
	return u + "company_id=biz_test&first=100&product_id=" + productID
}

func TestCloserLinksForProductPaginates(t *testing.T) {
	rt := newMockRoundTripper(map[string][]mockResp{
		"GET " + plansURL("prod_a", ""): {{
			status: http.StatusOK,
			body: `{"data":[
				{"id":"plan_1","product":{"id":"prod_a"},"internal_notes":"pif-a@x.com","initial_price":7000,"member_count":3},
				{"id":"plan_2","product":{"id":"prod_a"},"internal_notes":"Release notice","initial_price":100}
			],"page_info":{"has_next_page":true,"end_cursor":"cur1"}}`,
		}},
		"GET " + plansURL("prod_a", "cur1"): {{
			status: http.StatusOK,
			body: `{"data":[
				{"id":"plan_3","product":{"id":"prod_a"},"internal_notes":"split2k-b@x.com","initial_price":2000,"member_count":1},
				{"id":"plan_4","product":{"id":"prod_other"},"internal_notes":"pif-c@x.com","initial_price":7000}
			],"page_info":{"has_next_page":false,"end_cursor":""}}`,
		}},
	})

	client := newTestWhopClient(rt)
	links := client.CloserLinksForProduct(context.Background(), "prod_a", "Product A")

	if len(links) != 2 {
		t.Fatalf("got %d links, want 2 (Release note and cross-product plan excluded)", len(links))
	}
	if links[0].ID != "plan_1" || links[0].CloserEmail != "a@x.com" || links[0].LinkTypeLabel != "7K PIF" {
		t.Fatalf("first link mismatch: %+v", links[0])
	}
	if links[1].ID != "plan_3" || links[1].LinkType != "split2k" {
		t.Fatalf("second link mismatch: %+v", links[1])
	}
	if links[0].ProductName != "Product A" {
		t.Fatalf("product name = %q, want Product A", links[0].ProductName)
	}
}

func TestCloserLinksForProductChecksOutURLFallback(t *testing.T) {
	rt := newMockRoundTripper(map[string][]mockResp{
		"GET " + plansURL("prod_a", ""): {{
			status: http.StatusOK,
			body: `{"data":[
				{"id":"plan_1","product":{"id":"prod_a"},"internal_notes":"pif-a@x.com","initial_price":7000,"purchase_url":"https://buy.example/p1"},
				{"id":"plan_2","product":{"id":"prod_a"},"internal_notes":"pif-b@x.com","initial_price":7000}
			],"page_info":{"has_next_page":false}}`,
		}},
	})

	links := newTestWhopClient(rt).CloserLinksForProduct(context.Background(), "prod_a", "A")
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	if links[0].CheckoutURL != "https://buy.example/p1" {
		t.Fatalf("checkout url = %q, want upstream purchase_url", links[0].CheckoutURL)
	}
	if links[1].CheckoutURL != "https://whop.com/checkout/plan_2" {
		t.Fatalf("checkout fallback = %q", links[1].CheckoutURL)
	}
}

func TestCloserLinksForProductFailureYieldsEmpty(t *testing.T) {
	rt := newMockRoundTripper(map[string][]mockResp{
		"GET " + plansURL("prod_bad", ""): {{
			status: http.StatusBadGateway,
			body:   `{"message":"upstream down"}`,
		}},
	})

	links := newTestWhopClient(rt).CloserLinksForProduct(context.Background(), "prod_bad", "Bad")
	if len(links) != 0 {
		t.Fatalf("got %d links from failed product, want 0", len(links))
	}
}

func TestListProductsPropagatesError(t *testing.T) {
	rt := newMockRoundTripper(map[string][]mockResp{
		"GET https://api.whop.com/api/v1/products?company_id=biz_test": {{
			status: http.StatusUnauthorized,
			body:   `{"message":"bad key"}`,
		}},
	})

	_, err := newTestWhopClient(rt).ListProducts(context.Background())
	if err == nil {
		t.Fatal("expected error from products fetch")
	}
	if !strings.Contains(err.Error(), "bad key") {
		t.Fatalf("error should carry upstream message, got %v", err)
	}
}

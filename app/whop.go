package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/Palco-Teams-2/internal-dashboard/app/config"
	"github.com/Palco-Teams-2/internal-dashboard/app/models"
)

const plansPageSize = 100

// Pacer spaces successive upstream requests. *rate.Limiter satisfies it.
type Pacer interface {
	Wait(ctx context.Context) error
}

// nopPacer disables pacing (tests).
type nopPacer struct{}

func (nopPacer) Wait(context.Context) error { return nil }

// newPacer returns a fixed-interval pacer: the first call passes
// immediately, later calls are spaced at least interval apart.
func newPacer(interval time.Duration) Pacer {
	return rate.NewLimiter(rate.Every(interval), 1)
}

// WhopClient talks to the Whop payments API.
type WhopClient struct {
	baseURL   string
	apiKey    string
	companyID string
	httpc     *http.Client
	pagePacer Pacer
	logger    *slog.Logger
}

// NewWhopClient builds a client with the production pacing policy
// (300ms between successive plan pages).
func NewWhopClient(cfg config.WhopConfig, logger *slog.Logger) *WhopClient {
	return &WhopClient{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		companyID: cfg.CompanyID,
		httpc:     &http.Client{Timeout: 30 * time.Second},
		pagePacer: newPacer(300 * time.Millisecond),
		logger:    logger,
	}
}

type whopError struct {
	Status int
	Body   string
}

func (e whopError) Error() string { return fmt.Sprintf("whop http %d: %s", e.Status, e.Body) }

// doJSON performs one request against the Whop API and decodes the response.
func (w *WhopClient) doJSON(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := w.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := w.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(res.Body).Decode(&msg)
		return whopError{Status: res.StatusCode, Body: msg.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// ListProducts fetches all products for the configured company.
func (w *WhopClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	params := url.Values{}
	params.Set("company_id", w.companyID)

	var page models.ProductsPage
	if err := w.doJSON(ctx, http.MethodGet, "/products", params, nil, &page); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return page.Data, nil
}

// CloserLinksForProduct pages through a product's plans and returns its
// parsed closer links. A fetch failure is logged and yields an empty slice
// so one broken product never aborts a batch.
func (w *WhopClient) CloserLinksForProduct(ctx context.Context, productID, productName string) []models.CloserLink {
	var links []models.CloserLink
	cursor := ""

	for {
		if err := w.pagePacer.Wait(ctx); err != nil {
			w.logger.Warn("plan fetch cancelled", "product_id", productID, "error", err)
			return nil
		}

		params := url.Values{}
		params.Set("company_id", w.companyID)
		params.Set("product_id", productID)
		params.Set("first", fmt.Sprint(plansPageSize))
		if cursor != "" {
			params.Set("after", cursor)
		}

		var page models.PlansPage
		if err := w.doJSON(ctx, http.MethodGet, "/plans", params, nil, &page); err != nil {
			w.logger.Error("plan fetch failed", "product_id", productID, "error", err)
			return nil
		}

		for _, plan := range page.Data {
			// Whop sometimes returns plans from other products; drop them.
			if plan.ProductID() != productID {
				continue
			}

			parsed := parseInternalNotes(plan.InternalNotes, plan.InitialPrice)
			if parsed == nil {
				continue
			}

			checkoutURL := plan.PurchaseURL
			if checkoutURL == "" {
				checkoutURL = "https://whop.com/checkout/" + plan.ID
			}

			links = append(links, models.CloserLink{
				ID:            plan.ID,
				CloserEmail:   parsed.Email,
				LinkType:      parsed.Type,
				LinkTypeLabel: parsed.TypeLabel,
				Price:         plan.InitialPrice,
				MemberCount:   plan.MemberCount,
				CheckoutURL:   checkoutURL,
				ProductID:     productID,
				ProductName:   productName,
				CreatedAt:     plan.CreatedAt,
				InternalNotes: plan.InternalNotes,
			})
		}

		if !page.PageInfo.HasNextPage {
			return links
		}
		cursor = page.PageInfo.EndCursor
	}
}

// GetPlan fetches a single plan by id.
func (w *WhopClient) GetPlan(ctx context.Context, planID string) (*models.PlanRecord, error) {
	var plan models.PlanRecord
	if err := w.doJSON(ctx, http.MethodGet, "/plans/"+planID, nil, nil, &plan); err != nil {
		return nil, fmt.Errorf("fetch plan %s: %w", planID, err)
	}
	return &plan, nil
}

// DeletePlan deletes a single plan by id.
func (w *WhopClient) DeletePlan(ctx context.Context, planID string) error {
	if err := w.doJSON(ctx, http.MethodDelete, "/plans/"+planID, nil, nil, nil); err != nil {
		return fmt.Errorf("delete plan %s: %w", planID, err)
	}
	return nil
}

// UpdatePlan patches a plan with the given payload and returns the updated record.
func (w *WhopClient) UpdatePlan(ctx context.Context, planID string, payload map[string]any) (*models.PlanRecord, error) {
	var plan models.PlanRecord
	if err := w.doJSON(ctx, http.MethodPatch, "/plans/"+planID, nil, payload, &plan); err != nil {
		return nil, fmt.Errorf("update plan %s: %w", planID, err)
	}
	return &plan, nil
}

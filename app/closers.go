package app

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Palco-Teams-2/internal-dashboard/app/models"
)

// Priority product ids, always fetched and sorted first, in this order.
const (
	ProductBlueprintPlus     = "prod_lb9a1dpjmRkz8"
	ProductBlueprintStandard = "prod_XDKI8nmaP2ah9"
	ProductDepositLinks      = "prod_bqc3Pdc9iolas"
)

var priorityProductIDs = []string{
	ProductBlueprintPlus,
	ProductBlueprintStandard,
	ProductDepositLinks,
}

// Product display name overrides
var productDisplayNames = map[string]string{
	ProductBlueprintPlus:     "TJR's Daytrading Blueprint+",
	ProductBlueprintStandard: "TJR's Blueprint (Standard)",
	ProductDepositLinks:      "Deposit Payment Links",
}

const linksCacheTTL = 5 * time.Minute

// notesPrefix pulls the prefix token out of an existing notes value when
// rewriting the closer email on update.
var notesPrefix = regexp.MustCompile(`(?i)^([a-z0-9]+)-`)

// CloserLinkService owns the closer-link pipeline: paginated fetches via the
// Whop client, parsing, grouping, and the single-slot snapshot cache.
type CloserLinkService struct {
	whop   *WhopClient
	logger *slog.Logger

	// fullPacer spaces product fetches during a full refresh; fastPacer
	// spaces the priority-products-only paths.
	fullPacer Pacer
	fastPacer Pacer

	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	cached   []models.CloserLink
	cachedAt time.Time
}

// NewCloserLinkService wires the production pacing policy (800ms between
// products on a full fetch, 500ms on the priority fast paths).
func NewCloserLinkService(whop *WhopClient, logger *slog.Logger) *CloserLinkService {
	return &CloserLinkService{
		whop:      whop,
		logger:    logger,
		fullPacer: newPacer(800 * time.Millisecond),
		fastPacer: newPacer(500 * time.Millisecond),
		ttl:       linksCacheTTL,
		now:       time.Now,
	}
}

func displayName(productID, fallback string) string {
	if name, ok := productDisplayNames[productID]; ok {
		return name
	}
	if fallback != "" {
		return fallback
	}
	return productID
}

func isPriorityProduct(id string) bool {
	for _, p := range priorityProductIDs {
		if p == id {
			return true
		}
	}
	return false
}

// AllCloserLinks returns the flat list of closer links across all products.
// A snapshot younger than the TTL is served from cache unless forceRefresh
// is set; otherwise every product is fetched, priority products first.
func (s *CloserLinkService) AllCloserLinks(ctx context.Context, forceRefresh bool) ([]models.CloserLink, error) {
	s.mu.Lock()
	// Validity rides on cachedAt, not the slice: a fetch that found zero
	// links is still a cached snapshot.
	if !forceRefresh && !s.cachedAt.IsZero() && s.now().Sub(s.cachedAt) < s.ttl {
		links := s.cached
		s.mu.Unlock()
		s.logger.Info("returning cached closer links", "count", len(links))
		return links, nil
	}
	s.mu.Unlock()

	products, err := s.whop.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	// Priority products first, others in API order.
	var ordered []models.Product
	for _, p := range products {
		if isPriorityProduct(p.ID) {
			ordered = append(ordered, p)
		}
	}
	for _, p := range products {
		if !isPriorityProduct(p.ID) {
			ordered = append(ordered, p)
		}
	}

	var allLinks []models.CloserLink
	for _, p := range ordered {
		if err := s.fullPacer.Wait(ctx); err != nil {
			return nil, err
		}
		links := s.whop.CloserLinksForProduct(ctx, p.ID, displayName(p.ID, p.Title))
		allLinks = append(allLinks, links...)
	}

	s.logger.Info("fetched closer links", "products", len(ordered), "links", len(allLinks))

	s.mu.Lock()
	s.cached = allLinks
	s.cachedAt = s.now()
	s.mu.Unlock()

	return allLinks, nil
}

// priorityLinks fetches closer links from the three priority products only.
// This path skips the cache; it exists so delete/edit flows stay fast.
func (s *CloserLinkService) priorityLinks(ctx context.Context) ([]models.CloserLink, error) {
	var allLinks []models.CloserLink
	for _, productID := range priorityProductIDs {
		if err := s.fastPacer.Wait(ctx); err != nil {
			return nil, err
		}
		links := s.whop.CloserLinksForProduct(ctx, productID, displayName(productID, ""))
		allLinks = append(allLinks, links...)
	}
	return allLinks, nil
}

// CloserLinksGrouped returns all closer links grouped by closer email.
func (s *CloserLinkService) CloserLinksGrouped(ctx context.Context) ([]models.CloserGroup, error) {
	links, err := s.AllCloserLinks(ctx, false)
	if err != nil {
		return nil, err
	}
	return GroupByCloser(links), nil
}

// CloserLinksGroupedByProduct returns priority products with their closers.
func (s *CloserLinkService) CloserLinksGroupedByProduct(ctx context.Context) ([]models.ProductClosers, error) {
	links, err := s.priorityLinks(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByProductThenCloser(links), nil
}

// LinksForCloser returns one closer's links from the priority products.
func (s *CloserLinkService) LinksForCloser(ctx context.Context, closerEmail string) ([]models.CloserLink, error) {
	links, err := s.priorityLinks(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.CloserLink
	for _, link := range links {
		if strings.EqualFold(link.CloserEmail, closerEmail) {
			out = append(out, link)
		}
	}
	s.logger.Info("fetched closer's links", "closer", closerEmail, "count", len(out))
	return out, nil
}

// DeleteLinksForCloser deletes every plan assigned to a closer, optionally
// limited to one product. Per-plan failures are collected, not fatal. The
// cache is invalidated even when some deletes fail.
func (s *CloserLinkService) DeleteLinksForCloser(ctx context.Context, closerEmail, productID string) (*models.DeleteResult, error) {
	defer s.ClearCache()

	links, err := s.LinksForCloser(ctx, closerEmail)
	if err != nil {
		return nil, err
	}

	if productID != "" {
		var filtered []models.CloserLink
		for _, l := range links {
			if l.ProductID == productID {
				filtered = append(filtered, l)
			}
		}
		links = filtered
	}

	result := &models.DeleteResult{TotalLinks: len(links), Errors: []models.DeleteError{}}
	if len(links) == 0 {
		s.logger.Info("no links to delete", "closer", closerEmail)
		return result, nil
	}

	for _, link := range links {
		if err := s.whop.DeletePlan(ctx, link.ID); err != nil {
			s.logger.Error("plan delete failed", "plan_id", link.ID, "error", err)
			result.Errors = append(result.Errors, models.DeleteError{PlanID: link.ID, Error: err.Error()})
			continue
		}
		result.DeletedCount++
	}

	s.logger.Info("deleted closer links",
		"closer", closerEmail,
		"deleted", result.DeletedCount,
		"total", result.TotalLinks,
		"failed", len(result.Errors))

	return result, nil
}

// DeletePlan deletes one plan by id and invalidates the cache.
func (s *CloserLinkService) DeletePlan(ctx context.Context, planID string) error {
	if err := s.whop.DeletePlan(ctx, planID); err != nil {
		return err
	}
	s.ClearCache()
	return nil
}

// UpdatePlan forwards the provided fields to Whop. When the closer email
// changes, the notes are rewritten around the plan's existing prefix so the
// link keeps its type.
func (s *CloserLinkService) UpdatePlan(ctx context.Context, planID string, updates models.PlanUpdate) (*models.PlanRecord, error) {
	payload := map[string]any{}

	if updates.CloserEmail != nil {
		current, err := s.whop.GetPlan(ctx, planID)
		if err != nil {
			return nil, err
		}
		prefix := "pif"
		if m := notesPrefix.FindStringSubmatch(current.InternalNotes); m != nil {
			prefix = m[1]
		}
		payload["internal_notes"] = fmt.Sprintf("%s-%s", prefix, *updates.CloserEmail)
	}
	if updates.InitialPrice != nil {
		payload["initial_price"] = *updates.InitialPrice
	}
	if updates.RenewalPrice != nil {
		payload["renewal_price"] = *updates.RenewalPrice
	}
	if updates.Installments != nil {
		payload["split_pay_required_payments"] = *updates.Installments
	}
	if updates.PlanType != nil {
		payload["plan_type"] = *updates.PlanType
	}
	if updates.BillingPeriod != nil {
		payload["billing_period"] = *updates.BillingPeriod
	}

	plan, err := s.whop.UpdatePlan(ctx, planID, payload)
	if err != nil {
		return nil, err
	}

	s.ClearCache()
	s.logger.Info("updated plan", "plan_id", planID, "fields", len(payload))
	return plan, nil
}

// ClearCache drops the cached snapshot unconditionally.
func (s *CloserLinkService) ClearCache() {
	s.mu.Lock()
	s.cached = nil
	s.cachedAt = time.Time{}
	s.mu.Unlock()
	s.logger.Info("links cache cleared")
}

// closerName derives a display name from the email's local part.
func closerName(email string) string {
	local := email
	if i := strings.Index(email, "@"); i >= 0 {
		local = email[:i]
	}
	return strings.ReplaceAll(local, "-", " ")
}

// GroupByCloser groups a flat link list by closer email, sorted ascending.
// Pure function of its input.
func GroupByCloser(links []models.CloserLink) []models.CloserGroup {
	grouped := make(map[string]*models.CloserGroup)
	for _, link := range links {
		g, ok := grouped[link.CloserEmail]
		if !ok {
			g = &models.CloserGroup{
				Email:      link.CloserEmail,
				CloserName: closerName(link.CloserEmail),
			}
			grouped[link.CloserEmail] = g
		}
		g.Links = append(g.Links, link)
		g.TotalMembers += link.MemberCount
	}

	out := make([]models.CloserGroup, 0, len(grouped))
	for _, g := range grouped {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

// GroupByProductThenCloser groups links by product, priority products pinned
// first in configured order and the rest alphabetical by display name, with
// each product's closers grouped and sorted by email. Pure function.
func GroupByProductThenCloser(links []models.CloserLink) []models.ProductClosers {
	type bucket struct {
		productID   string
		productName string
		links       []models.CloserLink
	}

	buckets := make(map[string]*bucket)
	var order []string
	for _, link := range links {
		b, ok := buckets[link.ProductID]
		if !ok {
			b = &bucket{
				productID:   link.ProductID,
				productName: displayName(link.ProductID, link.ProductName),
			}
			buckets[link.ProductID] = b
			order = append(order, link.ProductID)
		}
		b.links = append(b.links, link)
	}

	rank := func(productID string) int {
		for i, p := range priorityProductIDs {
			if p == productID {
				return i
			}
		}
		return len(priorityProductIDs)
	}

	sort.SliceStable(order, func(i, j int) bool {
		ri, rj := rank(order[i]), rank(order[j])
		if ri != rj {
			return ri < rj
		}
		return buckets[order[i]].productName < buckets[order[j]].productName
	})

	out := make([]models.ProductClosers, 0, len(order))
	for _, productID := range order {
		b := buckets[productID]
		closers := GroupByCloser(b.links)

		var linkTypes []string
		seen := make(map[string]bool)
		for _, link := range b.links {
			if !seen[link.LinkType] {
				seen[link.LinkType] = true
				linkTypes = append(linkTypes, link.LinkType)
			}
		}

		out = append(out, models.ProductClosers{
			ProductID:    b.productID,
			ProductName:  b.productName,
			Closers:      closers,
			TotalClosers: len(closers),
			TotalLinks:   len(b.links),
			LinkTypes:    linkTypes,
		})
	}

	return out
}

package models

// productRef is the nested product object Whop attaches to each plan.
type productRef struct {
	ID string `json:"id"`
}

// Model received from the Whop payments API
type PlanRecord struct {
	ID            string     `json:"id"`
	Product       productRef `json:"product"`
	PlanType      string     `json:"plan_type"`
	InternalNotes string     `json:"internal_notes"`
	InitialPrice  float64    `json:"initial_price"`
	RenewalPrice  float64    `json:"renewal_price"`
	MemberCount   int        `json:"member_count"`
	PurchaseURL   string     `json:"purchase_url"`
	CreatedAt     string     `json:"created_at"`
}

// ProductID returns the id of the product this plan belongs to.
func (p PlanRecord) ProductID() string { return p.Product.ID }

// Product is a Whop product as returned by GET /products.
type Product struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// PageInfo carries Whop's cursor pagination state.
type PageInfo struct {
	HasNextPage bool   `json:"has_next_page"`
	EndCursor   string `json:"end_cursor"`
}

// PlansPage is one page of the paginated plans listing.
type PlansPage struct {
	Data     []PlanRecord `json:"data"`
	PageInfo PageInfo     `json:"page_info"`
}

// ProductsPage is the products listing response.
type ProductsPage struct {
	Data []Product `json:"data"`
}

// ParsedAssignment is the closer assignment extracted from a plan's
// internal notes. It never leaves the aggregation step.
type ParsedAssignment struct {
	Email     string
	Type      string
	TypeLabel string
}

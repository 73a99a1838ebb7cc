package models

// CloserLink joins a Whop plan with the closer assignment parsed from
// its internal notes. closerEmail is always lowercase.
type CloserLink struct {
	ID            string  `json:"id"`
	CloserEmail   string  `json:"closerEmail"`
	LinkType      string  `json:"linkType"`
	LinkTypeLabel string  `json:"linkTypeLabel"`
	Price         float64 `json:"price"`
	MemberCount   int     `json:"memberCount"`
	CheckoutURL   string  `json:"checkoutUrl"`
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	CreatedAt     string  `json:"createdAt"`
	InternalNotes string  `json:"internalNotes"`
}

// CloserGroup is one closer's links plus rollup totals.
type CloserGroup struct {
	Email        string       `json:"email"`
	CloserName   string       `json:"closerName"`
	Links        []CloserLink `json:"links"`
	TotalMembers int          `json:"totalMembers"`
}

// ProductClosers is the per-product grouping: closers ordered by email.
type ProductClosers struct {
	ProductID    string        `json:"productId"`
	ProductName  string        `json:"productName"`
	Closers      []CloserGroup `json:"closers"`
	TotalClosers int           `json:"totalClosers"`
	TotalLinks   int           `json:"totalLinks"`
	LinkTypes    []string      `json:"linkTypes"`
}

// DeleteError records one plan that could not be deleted during a bulk delete.
type DeleteError struct {
	PlanID string `json:"planId"`
	Error  string `json:"error"`
}

// DeleteResult summarizes a bulk closer-delete, including partial failures.
type DeleteResult struct {
	DeletedCount int           `json:"deletedCount"`
	TotalLinks   int           `json:"totalLinks"`
	Errors       []DeleteError `json:"errors"`
}

// PlanUpdate carries the independently-optional fields of a plan update.
// Only non-nil fields are forwarded to Whop.
type PlanUpdate struct {
	CloserEmail   *string  `json:"closerEmail"`
	InitialPrice  *float64 `json:"initialPrice"`
	RenewalPrice  *float64 `json:"renewalPrice"`
	Installments  *int     `json:"installments"`
	PlanType      *string  `json:"planType"`
	BillingPeriod *int     `json:"billingPeriod"`
}

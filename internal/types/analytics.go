package types

import "github.com/shopspring/decimal"

const (
	// MonthLabelFormat renders bucket keys like "Jan 24". The Go reference
	// layout always uses English month abbreviations, so two timestamps in the
	// same calendar month collapse to the same label on every host.
	MonthLabelFormat = "Jan 06"

	// UnknownLabel is the sentinel bucket for memberships missing a package
	// name or status. Keeping it explicit avoids collapsing malformed rows
	// into an empty-string key.
	UnknownLabel = "Unknown"

	// TopPackagesLimit caps the package leaderboard
	TopPackagesLimit = 5
)

// GrowthPoint is one month bucket of the signup growth series
type GrowthPoint struct {
	MonthLabel string `json:"month_label"`
	Count      int    `json:"count"`
}

// DistributionPoint is one bucket of a categorical series (package or status)
type DistributionPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// RevenuePoint is one month bucket of the revenue series
type RevenuePoint struct {
	MonthLabel string          `json:"month_label"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TopPackagePoint is an entry of the package leaderboard. Same shape as
// DistributionPoint; the series is sorted by value descending, ties keeping
// first-seen order.
type TopPackagePoint = DistributionPoint

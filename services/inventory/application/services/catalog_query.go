package services

import (
	"sort"

	"github.com/sttnf/project-DDP/services/inventory/domain/models"
)

// SortCriterion selects the ordering of a catalog view.
type SortCriterion string

const (
	SortNone      SortCriterion = "none"
	SortNameAsc   SortCriterion = "name-asc"
	SortNameDesc  SortCriterion = "name-desc"
	SortPriceAsc  SortCriterion = "price-asc"
	SortPriceDesc SortCriterion = "price-desc"
)

// CatalogQuery produces ordered read-only views of the catalog. It never
// mutates catalog state.
type CatalogQuery struct {
	catalog *CatalogService
}

// NewCatalogQuery returns a CatalogQuery over the given catalog.
func NewCatalogQuery(catalog *CatalogService) *CatalogQuery {
	return &CatalogQuery{catalog: catalog}
}

// SortedView returns a new slice of product references ordered by the given
// criterion. The sort is stable: ties keep catalog insertion order.
func (q *CatalogQuery) SortedView(criterion SortCriterion) []*models.Product {
	view := q.catalog.List()

	switch criterion {
	case SortNameAsc:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Name < view[j].Name })
	case SortNameDesc:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Name > view[j].Name })
	case SortPriceAsc:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Price < view[j].Price })
	case SortPriceDesc:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Price > view[j].Price })
	}
	return view
}

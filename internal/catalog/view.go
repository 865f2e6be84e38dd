package catalog

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/Nexus/internal/cart"
	"github.com/mamadbah2/Nexus/internal/logger"
	"github.com/mamadbah2/Nexus/internal/notify"
	"github.com/mamadbah2/Nexus/internal/product"
)

type SortColumn string

const (
	SortNone  SortColumn = ""
	SortName  SortColumn = "name"
	SortPrice SortColumn = "price"
)

type SortDirection string

const (
	Ascending  SortDirection = "ASC"
	Descending SortDirection = "DESC"
)

const defaultPageSize = 20

// Pagination mirrors the last page response from the server; it is the
// authoritative pagination state between loads.
type Pagination struct {
	TotalElements int64
	TotalPages    int
	CurrentPage   int
	PageSize      int
	First         bool
	Last          bool
}

// View is the product listing's controller: one server page at a time,
// sorted and re-sorted locally. Column sort never triggers a new request; it
// reorders the page already fetched.
type View struct {
	products product.Client
	carts    cart.Service
	notifier notify.Notifier

	items      []product.Product
	searchTerm string
	sortColumn SortColumn
	sortDir    SortDirection
	pagination Pagination
	loading    bool
}

func NewView(products product.Client, carts cart.Service, notifier notify.Notifier) *View {
	return &View{
		products: products,
		carts:    carts,
		notifier: notifier,
		sortDir:  Descending,
		pagination: Pagination{
			PageSize: defaultPageSize,
			First:    true,
			Last:     true,
		},
	}
}

// Load fetches the current page.
func (v *View) Load(ctx context.Context) error {
	return v.load(ctx, v.pagination.CurrentPage)
}

func (v *View) load(ctx context.Context, page int) error {
	if page < 0 {
		page = 0
	}
	v.loading = true
	defer func() { v.loading = false }()

	params := product.QueryParams{Page: page, Size: v.pagination.PageSize}

	var (
		pg  *product.Page
		err error
	)
	if term := strings.TrimSpace(v.searchTerm); term != "" {
		pg, err = v.products.Search(ctx, product.SearchParams{Query: term}, params)
	} else {
		pg, err = v.products.List(ctx, params)
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load products", zap.Error(err))
		v.items = nil
		return err
	}

	v.pagination = Pagination{
		TotalElements: pg.TotalElements,
		TotalPages:    pg.TotalPages,
		CurrentPage:   pg.Number,
		PageSize:      pg.Size,
		First:         pg.First,
		Last:          pg.Last,
	}
	v.items = append([]product.Product(nil), pg.Content...)
	v.applySort()
	return nil
}

// Products returns the current page in display order.
func (v *View) Products() []product.Product {
	return v.items
}

func (v *View) Pagination() Pagination {
	return v.pagination
}

func (v *View) SortState() (SortColumn, SortDirection) {
	return v.sortColumn, v.sortDir
}

// SortBy toggles direction when the active column is clicked again and
// resets to the column default otherwise: ascending for name, descending for
// price.
func (v *View) SortBy(column SortColumn) {
	if v.sortColumn == column {
		if v.sortDir == Ascending {
			v.sortDir = Descending
		} else {
			v.sortDir = Ascending
		}
	} else {
		v.sortColumn = column
		if column == SortName {
			v.sortDir = Ascending
		} else {
			v.sortDir = Descending
		}
	}

	v.applySort()
}

func (v *View) applySort() {
	if v.sortColumn == SortNone {
		return
	}

	sort.SliceStable(v.items, func(i, j int) bool {
		less := v.compare(v.items[i], v.items[j])
		if v.sortDir == Descending {
			return !less
		}
		return less
	})
}

func (v *View) compare(a, b product.Product) bool {
	switch v.sortColumn {
	case SortName:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	case SortPrice:
		return a.PriceValue() < b.PriceValue()
	default:
		return false
	}
}

// NextPage is a no-op on the last page, PreviousPage on the first: the
// server's first/last flags are authoritative.
func (v *View) NextPage(ctx context.Context) error {
	if v.pagination.Last || v.loading {
		return nil
	}
	return v.load(ctx, v.pagination.CurrentPage+1)
}

func (v *View) PreviousPage(ctx context.Context) error {
	if v.pagination.First || v.loading {
		return nil
	}
	return v.load(ctx, v.pagination.CurrentPage-1)
}

func (v *View) GoToPage(ctx context.Context, page int) error {
	if page < 0 || page >= v.pagination.TotalPages || page == v.pagination.CurrentPage {
		return nil
	}
	return v.load(ctx, page)
}

func (v *View) SetPageSize(ctx context.Context, size int) error {
	if size <= 0 || size == v.pagination.PageSize {
		return nil
	}
	v.pagination.PageSize = size
	return v.load(ctx, 0)
}

// Search applies a term and resets to the first page.
func (v *View) Search(ctx context.Context, term string) error {
	v.searchTerm = term
	return v.load(ctx, 0)
}

// Refresh drops all local state back to defaults and reloads.
func (v *View) Refresh(ctx context.Context) error {
	v.items = nil
	v.searchTerm = ""
	v.sortColumn = SortNone
	v.sortDir = Descending
	v.pagination = Pagination{
		PageSize: defaultPageSize,
		First:    true,
		Last:     true,
	}
	return v.load(ctx, 0)
}

// AddToCart delegates to the shared cart service and surfaces the outcome as
// a notification.
func (v *View) AddToCart(ctx context.Context, p product.Product) error {
	if _, err := v.carts.AddItemToCart(ctx, p.ID, 1, p.PriceValue()); err != nil {
		logger.FromCtx(ctx).Error("failed to add to cart", zap.Error(err))
		v.notifier.Error("Error", "Failed to add to cart")
		return err
	}

	v.notifier.Success("Success", p.Name+" added to cart!")
	return nil
}

// RangeStart and RangeEnd describe the visible slice of the result set
// ("21-40 of 130").
func (v *View) RangeStart() int64 {
	if v.pagination.TotalElements == 0 {
		return 0
	}
	return int64(v.pagination.CurrentPage)*int64(v.pagination.PageSize) + 1
}

func (v *View) RangeEnd() int64 {
	if v.pagination.TotalElements == 0 {
		return 0
	}
	end := int64(v.pagination.CurrentPage+1) * int64(v.pagination.PageSize)
	if end > v.pagination.TotalElements {
		return v.pagination.TotalElements
	}
	return end
}

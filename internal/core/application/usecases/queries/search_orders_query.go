package queries

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/samber/lo"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSortBy   = "createdAt"
	DefaultSortDir  = SortDesc
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// sortColumns maps the API field names accepted by sortBy to columns.
var sortColumns = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"customerName": "customer_name",
	"productName":  "product_name",
	"price":        "price",
	"quantity":     "quantity",
}

// SortFields lists the values accepted for sortBy.
func SortFields() []string {
	fields := lo.Keys(sortColumns)
	slices.Sort(fields)
	return fields
}

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

// OrderFilter narrows a search. Empty strings and a nil Status match everything.
// Names and email match case-insensitively anywhere in the value.
type OrderFilter struct {
	CustomerName string
	ProductName  string
	Email        string
	Status       *order.Status
}

// SearchOrdersQuery is one page of a filtered, sorted order listing.
//
//	query, err := NewSearchOrdersQuery(OrderFilter{CustomerName: "jane"}, 0, 20, "price", "asc")
type SearchOrdersQuery struct {
	filter  OrderFilter
	page    int
	size    int
	sortBy  string
	sortDir SortDirection

	guard guard.ConstructorGuard
}

// NewSearchOrdersQuery applies defaults for a zero size, an empty sortBy and
// an empty sortDir. A size above MaxPageSize is clamped; a sortDir other than
// "asc" means descending.
func NewSearchOrdersQuery(
	filter OrderFilter,
	page, size int,
	sortBy, sortDir string,
) (SearchOrdersQuery, error) {
	q := SearchOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setFilter(filter),
		q.setPage(page),
		q.setSize(size),
		q.setSortBy(sortBy),
	); err != nil {
		return SearchOrdersQuery{}, err
	}
	q.setSortDir(sortDir)

	return q, nil
}

func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

func (q SearchOrdersQuery) Filter() OrderFilter { return q.filter }
func (q SearchOrdersQuery) Page() int { return q.page }
func (q SearchOrdersQuery) Size() int { return q.size }
func (q SearchOrdersQuery) SortBy() string { return q.sortBy }
func (q SearchOrdersQuery) SortDir() SortDirection { return q.sortDir }

func (q SearchOrdersQuery) offset() int {
	return q.page * q.size
}

func (q *SearchOrdersQuery) setFilter(filter OrderFilter) error {
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return err
		}
	}
	filter.CustomerName = strings.TrimSpace(filter.CustomerName)
	filter.ProductName = strings.TrimSpace(filter.ProductName)
	filter.Email = strings.TrimSpace(filter.Email)
	q.filter = filter
	return nil
}

func (q *SearchOrdersQuery) setPage(page int) error {
	if page < 0 {
		return errs.NewValueIsOutOfRangeError("page", page, 0, "unbounded")
	}
	q.page = page
	return nil
}

func (q *SearchOrdersQuery) setSize(size int) error {
	switch {
	case size == 0:
		size = DefaultPageSize
	case size < 0:
		return errs.NewValueIsOutOfRangeError("size", size, 1, MaxPageSize)
	case size > MaxPageSize:
		size = MaxPageSize
	}
	q.size = size
	return nil
}

func (q *SearchOrdersQuery) setSortBy(sortBy string) error {
	sortBy = strings.TrimSpace(sortBy)
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	if _, ok := sortColumns[sortBy]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("sortBy",
			fmt.Errorf("%q is not one of %s", sortBy, strings.Join(SortFields(), ", ")))
	}
	q.sortBy = sortBy
	return nil
}

func (q *SearchOrdersQuery) setSortDir(sortDir string) {
	switch {
	case strings.TrimSpace(sortDir) == "":
		q.sortDir = DefaultSortDir
	case strings.EqualFold(strings.TrimSpace(sortDir), string(SortAsc)):
		q.sortDir = SortAsc
	default:
		q.sortDir = SortDesc
	}
}

// SearchOrdersResponse is one page plus paging metadata.
type SearchOrdersResponse struct {
	Content       []OrderView
	TotalElements int64
	TotalPages    int
	Page          int
	Size          int
}

func (r SearchOrdersResponse) HasNext() bool {
	return r.Page < r.TotalPages-1
}

func (r SearchOrdersResponse) HasPrevious() bool {
	return r.Page > 0
}

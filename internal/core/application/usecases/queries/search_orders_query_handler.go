package queries

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// SearchOrdersQueryHandler runs filtered, paginated order listings.
type SearchOrdersQueryHandler struct {
	db *gorm.DB
}

func NewSearchOrdersQueryHandler(db *gorm.DB) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{db: db}
}

// Handle counts the matches, then loads the requested page. Ties in the sort
// column are broken by id so pages never overlap.
func (h SearchOrdersQueryHandler) Handle(
	ctx context.Context,
	query SearchOrdersQuery,
) (SearchOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return SearchOrdersResponse{}, err
	}

	where, args := whereClause(query.Filter())
	db := h.db.WithContext(ctx)

	var total int64
	if err := db.Raw(`SELECT COUNT(*) FROM orders`+where, args...).Scan(&total).Error; err != nil {
		return SearchOrdersResponse{}, fmt.Errorf("count orders: %w", err)
	}

	response := SearchOrdersResponse{
		Content:       make([]OrderView, 0),
		TotalElements: total,
		TotalPages:    totalPages(total, query.Size()),
		Page:          query.Page(),
		Size:          query.Size(),
	}
	if total == 0 || query.offset() >= int(total) {
		return response, nil
	}

	orderBy := fmt.Sprintf(" ORDER BY %s %s, id %s",
		sortColumns[query.SortBy()], strings.ToUpper(string(query.SortDir())), strings.ToUpper(string(query.SortDir())))

	var rows []orderRow
	err := db.Raw(`SELECT `+orderColumns+` FROM orders`+where+orderBy+` LIMIT ? OFFSET ?`,
		append(args, query.Size(), query.offset())...).
		Scan(&rows).Error
	if err != nil {
		return SearchOrdersResponse{}, fmt.Errorf("search orders: %w", err)
	}

	for _, row := range rows {
		view, err := row.toView()
		if err != nil {
			return SearchOrdersResponse{}, err
		}
		response.Content = append(response.Content, view)
	}

	return response, nil
}

func whereClause(filter OrderFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	contains := func(column, value string) {
		if value == "" {
			return
		}
		conditions = append(conditions, column+` ILIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(value)+"%")
	}

	contains("customer_name", filter.CustomerName)
	contains("product_name", filter.ProductName)
	contains("email", filter.Email)

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status.String())
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

package booking

import (
	"fmt"

	"github.com/masud-rana44/the-wild-oasis/internal/domain"
)

// Filter and sort parameters form a closed set so that an invalid field
// name is rejected when the query is built, not as a storage-layer fault.

// FilterField names a column a list query may filter on by equality.
type FilterField string

const (
	FilterFieldStatus FilterField = "status"
)

// SortField names a column a list query may order by.
type SortField string

const (
	SortFieldStartDate  SortField = "start_date"
	SortFieldTotalPrice SortField = "total_price"
	SortFieldCreatedAt  SortField = "created_at"
)

// SortDirection is the ordering direction of a sort specification.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Filter is an equality constraint on a single booking column.
type Filter struct {
	Field FilterField
	Value string
}

// NewFilter builds a Filter, rejecting unknown fields and, for status
// filters, unknown status values.
func NewFilter(field FilterField, value string) (*Filter, error) {
	switch field {
	case FilterFieldStatus:
		if _, err := ParseStatus(value); err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("unknown filter field: %s", field))
	}
	return &Filter{Field: field, Value: value}, nil
}

// Sort is an ordering specification on a single booking column.
type Sort struct {
	Field     SortField
	Direction SortDirection
}

// NewSort builds a Sort, rejecting unknown fields and directions.
func NewSort(field SortField, direction SortDirection) (*Sort, error) {
	switch field {
	case SortFieldStartDate, SortFieldTotalPrice, SortFieldCreatedAt:
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("unknown sort field: %s", field))
	}
	switch direction {
	case SortAscending, SortDescending:
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("unknown sort direction: %s", direction))
	}
	return &Sort{Field: field, Direction: direction}, nil
}

// ListQuery is the logical (filter, sort, page) request a list operation
// translates into storage calls. A nil Filter or Sort means none; Page 0
// means no pagination, returning the full matching set.
type ListQuery struct {
	Filter *Filter
	Sort   *Sort
	Page   int
}

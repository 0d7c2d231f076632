package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/masud-rana44/the-wild-oasis/internal/domain/booking"
)

// The list query builder translates a logical (filter, sort, page)
// request into WHERE/ORDER BY/OFFSET-LIMIT clauses. Field names come
// from closed enums validated at construction, so interpolating them
// into SQL fragments is safe.

// applyFilter adds the equality constraint of the filter, if any.
func applyFilter(db *gorm.DB, f *booking.Filter) *gorm.DB {
	if f == nil {
		return db
	}
	return db.Where(fmt.Sprintf("bookings.%s = ?", f.Field), f.Value)
}

// applySort adds the ordering of the sort specification, if any.
func applySort(db *gorm.DB, s *booking.Sort) *gorm.DB {
	if s == nil {
		return db
	}
	dir := "ASC"
	if s.Direction == booking.SortDescending {
		dir = "DESC"
	}
	return db.Order(fmt.Sprintf("bookings.%s %s", s.Field, dir))
}

// applyPage restricts the result to one page of at most pageSize rows.
// Page 0 means no pagination.
func applyPage(db *gorm.DB, page, pageSize int) *gorm.DB {
	if page <= 0 {
		return db
	}
	return db.Offset((page - 1) * pageSize).Limit(pageSize)
}

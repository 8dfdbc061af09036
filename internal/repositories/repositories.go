package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is wrapped by every repository when a row does not exist, so
// handlers can map it to a 404 without matching on message text.
var ErrNotFound = errors.New("not found")

// paginate applies offset pagination as a GORM scope. Rows are ordered by
// primary key ascending so pages are stable regardless of the store's
// default ordering. pageNumber and pageSize are validated by the handlers
// and are always >= 1 here.
func paginate(primaryKey string, pageNumber, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(primaryKey).
			Offset((pageNumber - 1) * pageSize).
			Limit(pageSize)
	}
}

package option

import (
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

// Option mutates a gorm statement. Repositories compose them so list queries
// stay declarative.
type Option interface {
	Apply(stmt *gorm.DB) *gorm.DB
}

type optionFunc func(stmt *gorm.DB) *gorm.DB

func (f optionFunc) Apply(stmt *gorm.DB) *gorm.DB {
	return f(stmt)
}

// ApplyPagination over-fetches one row past the page size and seeks past the
// cursor when a page token is present.
func ApplyPagination(page pagination.Pagination) Option {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		size := page.PageSize
		if size <= 0 {
			size = 10
		}
		if page.PageToken != "" {
			cursor, err := pagination.DecodeCursor(page.PageToken)
			if err == nil && cursor.ID != "" {
				stmt = stmt.Where("id < ?", cursor.ID)
			}
		}
		return stmt.Limit(size + 1)
	})
}

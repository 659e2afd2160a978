package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/it-helpdesk/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(page utils.Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset()).Limit(page.Size)
	}
}

// Search matches term case-insensitively against any of the columns.
// An empty term leaves the query untouched.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := utils.LikePattern(term)
		cond := db.Session(&gorm.Session{NewDB: true})
		for i, col := range columns {
			expr := "LOWER(" + col + ") LIKE ? ESCAPE '" + utils.LikeEscape + "'"
			if i == 0 {
				cond = cond.Where(expr, pattern)
			} else {
				cond = cond.Or(expr, pattern)
			}
		}
		return db.Where(cond)
	}
}

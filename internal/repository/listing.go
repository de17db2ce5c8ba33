package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"storerating/internal/model"
)

// avgExpr is the rounded mean of the joined ratings alias r, 0 when there are none.
const avgExpr = "COALESCE(ROUND(AVG(r.rating), 2), 0)"

var storeSortColumns = map[model.StoreSort]string{
	model.StoreSortName:    "s.name",
	model.StoreSortEmail:   "s.email",
	model.StoreSortAddress: "s.address",
	model.StoreSortAverage: "avg_rating",
}

var userSortColumns = map[model.UserSort]string{
	model.UserSortName:        "u.name",
	model.UserSortEmail:       "u.email",
	model.UserSortAddress:     "u.address",
	model.UserSortRole:        "u.role",
	model.UserSortOwnerRating: "owner_rating",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive LIKE pattern matching value anywhere.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}

// whereContains adds LOWER(column) LIKE pattern when value is non-empty.
func whereContains(db *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return db
	}
	return db.Where("LOWER("+column+") LIKE ?", containsPattern(value))
}

func direction(o model.SortOrder) string {
	if o == model.SortDesc {
		return "DESC"
	}
	return "ASC"
}

// orderBy renders an ORDER BY from allow-listed parts only, with idColumn as tiebreak.
func orderBy(column string, order model.SortOrder, idColumn string) string {
	return fmt.Sprintf("%s %s, %s ASC", column, direction(order), idColumn)
}

func paginate(db *gorm.DB, p model.Page) *gorm.DB {
	p = p.Normalized()
	return db.Limit(p.Limit).Offset(p.Offset)
}

func storeSortColumn(k model.StoreSort) string {
	if col, ok := storeSortColumns[k]; ok {
		return col
	}
	return storeSortColumns[model.StoreSortName]
}

func userSortColumn(k model.UserSort) string {
	if col, ok := userSortColumns[k]; ok {
		return col
	}
	return userSortColumns[model.UserSortName]
}

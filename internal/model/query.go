package model

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageLimit is used when no usable limit is supplied.
	DefaultPageLimit = 100
)

// SortOrder is the direction of a listing sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder returns SortDesc only for "desc" (any case); everything else sorts ascending.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// StoreSort is the closed set of store listing sort keys.
type StoreSort string

const (
	StoreSortName    StoreSort = "name"
	StoreSortEmail   StoreSort = "email"
	StoreSortAddress StoreSort = "address"
	StoreSortAverage StoreSort = "avg_rating"
)

// ParseStoreSort maps a client key onto a StoreSort. Unknown keys fall back to name.
func ParseStoreSort(s string) StoreSort {
	switch k := StoreSort(strings.TrimSpace(s)); k {
	case StoreSortName, StoreSortEmail, StoreSortAddress, StoreSortAverage:
		return k
	}
	return StoreSortName
}

// UserSort is the closed set of user listing sort keys.
type UserSort string

const (
	UserSortName        UserSort = "name"
	UserSortEmail       UserSort = "email"
	UserSortAddress     UserSort = "address"
	UserSortRole        UserSort = "role"
	UserSortOwnerRating UserSort = "owner_rating"
)

// ParseUserSort maps a client key onto a UserSort. Unknown keys fall back to name.
func ParseUserSort(s string) UserSort {
	switch k := UserSort(strings.TrimSpace(s)); k {
	case UserSortName, UserSortEmail, UserSortAddress, UserSortRole, UserSortOwnerRating:
		return k
	}
	return UserSortName
}

// Page is a limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit and offset leniently: unusable values become the defaults.
func ParsePage(limit, offset string) Page {
	p := Page{Limit: DefaultPageLimit}
	if n, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil && n > 0 {
		p.Limit = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(offset)); err == nil && n >= 0 {
		p.Offset = n
	}
	return p
}

// Normalized fills in defaults for a zero or negative window.
func (p Page) Normalized() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// StoreQuery filters, sorts and pages a store listing. Text filters are
// case-insensitive substring matches; empty means no filter.
type StoreQuery struct {
	Name    string
	Email   string
	Address string
	Sort    StoreSort
	Order   SortOrder
	Page    Page
}

// ParseStoreQuery builds a StoreQuery from URL query parameters.
func ParseStoreQuery(v url.Values) StoreQuery {
	return StoreQuery{
		Name:    strings.TrimSpace(v.Get("name")),
		Email:   strings.TrimSpace(v.Get("email")),
		Address: strings.TrimSpace(v.Get("address")),
		Sort:    ParseStoreSort(v.Get("sortBy")),
		Order:   ParseSortOrder(v.Get("sortOrder")),
		Page:    ParsePage(v.Get("limit"), v.Get("offset")),
	}
}

// UserQuery filters, sorts and pages a user listing. Role is an exact match.
type UserQuery struct {
	Name    string
	Email   string
	Address string
	Role    Role
	Sort    UserSort
	Order   SortOrder
	Page    Page
}

// ParseUserQuery builds a UserQuery from URL query parameters. An unknown role
// filter is kept as-is and simply matches nothing.
func ParseUserQuery(v url.Values) UserQuery {
	return UserQuery{
		Name:    strings.TrimSpace(v.Get("name")),
		Email:   strings.TrimSpace(v.Get("email")),
		Address: strings.TrimSpace(v.Get("address")),
		Role:    Role(strings.TrimSpace(v.Get("role"))),
		Sort:    ParseUserSort(v.Get("sortBy")),
		Order:   ParseSortOrder(v.Get("sortOrder")),
		Page:    ParsePage(v.Get("limit"), v.Get("offset")),
	}
}

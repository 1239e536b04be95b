// Package query turns list-endpoint query strings (keyword, field[op]=value
// filters, page) into gorm scopes.
package query

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"blog.com/pkg/errno"
	"gorm.io/gorm"
)

var operators = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

var filterKey = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(?:\[(gt|gte|lt|lte)\])?$`)

// reserved keys never become filters
var reserved = map[string]struct{}{
	"keyword": {}, "page": {}, "limit": {}, "mode": {}, "sort": {}, "order": {}, "comm": {},
}

type Filter struct {
	Column string
	Op     string
	Value  string
}

// Features is the parsed form of a list request.
type Features struct {
	Keyword string
	Filters []Filter
	Page    int
}

// Parse reads keyword, page and the filters whose field is listed in columns
// (query field -> table column). Unknown fields are ignored.
func Parse(values url.Values, columns map[string]string) Features {
	f := Features{Keyword: strings.TrimSpace(values.Get("keyword")), Page: 1}
	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		f.Page = p
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, skip := reserved[k]; skip {
			continue
		}
		m := filterKey.FindStringSubmatch(k)
		if m == nil {
			continue
		}
		column, ok := columns[m[1]]
		if !ok {
			continue
		}
		op := "="
		if m[2] != "" {
			op = operators[m[2]]
		}
		for _, v := range values[k] {
			f.Filters = append(f.Filters, Filter{Column: column, Op: op, Value: v})
		}
	}
	return f
}

// Search matches the keyword case-insensitively against column.
func Search(column, keyword string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if keyword == "" {
			return db
		}
		return db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}
}

func Where(filters []Filter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, f := range filters {
			db = db.Where(f.Column+" "+f.Op+" ?", f.Value)
		}
		return db
	}
}

// Paginate limits the query to page (1-based).
func Paginate(page, perPage int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Limit(perPage).Offset(perPage * (page - 1))
	}
}

// CheckPage fails when page > 1 starts past the filtered result.
func CheckPage(filtered int64, page, perPage int) error {
	if page > 1 && filtered <= int64(perPage*(page-1)) {
		return errno.PageErr
	}
	return nil
}

// Scopes returns search and filter scopes for f, without pagination.
func (f Features) Scopes(searchColumn string) []func(*gorm.DB) *gorm.DB {
	return []func(*gorm.DB) *gorm.DB{Search(searchColumn, f.Keyword), Where(f.Filters)}
}

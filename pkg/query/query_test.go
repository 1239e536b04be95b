package query

import (
	"net/url"
	"testing"

	"blog.com/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type row struct {
	ID    int64
	Name  string
	Views int64
}

func dryRun(t *testing.T) *gorm.DB {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/blog?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestParse(t *testing.T) {
	values := url.Values{
		"keyword":     {" go "},
		"page":        {"3"},
		"views[gte]":  {"10"},
		"views[lt]":   {"100"},
		"user":        {"42"},
		"password":    {"x"},
		"name[regex]": {".*"},
	}
	f := Parse(values, map[string]string{"views": "views", "user": "user_id"})
	assert.Equal(t, "go", f.Keyword)
	assert.Equal(t, 3, f.Page)
	assert.ElementsMatch(t, []Filter{
		{Column: "user_id", Op: "=", Value: "42"},
		{Column: "views", Op: ">=", Value: "10"},
		{Column: "views", Op: "<", Value: "100"},
	}, f.Filters)

	t.Run("bad page falls back to first", func(t *testing.T) {
		assert.Equal(t, 1, Parse(url.Values{"page": {"-2"}}, nil).Page)
		assert.Equal(t, 1, Parse(url.Values{"page": {"x"}}, nil).Page)
	})
}

func TestScopesSQL(t *testing.T) {
	db := dryRun(t)
	f := Features{
		Keyword: "Hello",
		Filters: []Filter{{Column: "views", Op: ">", Value: "5"}},
		Page:    2,
	}
	stmt := db.Table("rows").Scopes(f.Scopes("name")...).Scopes(Paginate(f.Page, 4)).Find(&[]row{}).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, "LOWER(name) LIKE ?")
	assert.Contains(t, sql, "views > ?")
	assert.Contains(t, sql, "LIMIT ?")
	assert.Contains(t, sql, "OFFSET ?")
	assert.Contains(t, stmt.Vars, "%hello%")
	assert.Contains(t, stmt.Vars, "5")

	t.Run("empty keyword adds nothing", func(t *testing.T) {
		stmt := db.Table("rows").Scopes(Search("name", "")).Find(&[]row{}).Statement
		assert.NotContains(t, stmt.SQL.String(), "LIKE")
	})
}

func TestCheckPage(t *testing.T) {
	assert.NoError(t, CheckPage(0, 1, 4))
	assert.NoError(t, CheckPage(5, 2, 4))
	assert.Equal(t, errno.PageErr, CheckPage(4, 2, 4))
	assert.Equal(t, errno.PageErr, CheckPage(10, 4, 4))
}

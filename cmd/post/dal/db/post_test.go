package db

import (
	"testing"

	"blog.com/cmd/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func dryRun(t *testing.T) *gorm.DB {
	conn, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/blog?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return conn
}

func TestScopes(t *testing.T) {
	conn := dryRun(t)
	sql := func(scopes ...Scope) string {
		return conn.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var posts []*model.Post
			return tx.Scopes(scopes...).Find(&posts)
		})
	}

	assert.Contains(t, sql(ByCategory(3)), "category_id = 3")
	assert.Contains(t, sql(ByAuthor(9)), "user_id = 9")
	assert.Contains(t, sql(ByTag("go")), `JSON_CONTAINS(tags, JSON_QUOTE('go'))`)
	assert.Contains(t, sql(ExcludeBanners()), `tags <> CAST('["$home_banner&"]' AS JSON)`)
	assert.Contains(t, sql(IdIn([]int64{4, 5})), "post_id IN (4,5)")
	assert.Contains(t, sql(IdIn(nil)), "1 = 0")
}

func TestOrderBy(t *testing.T) {
	cases := []struct {
		sort, order string
		column      string
		desc        bool
	}{
		{"", "", "created_at", true},
		{"views", "-1", "views", true},
		{"likes", "1", "likes_count", false},
		{"title", "DESC", "title", true},
		{"password", "1", "created_at", true},
	}
	for _, tc := range cases {
		t.Run(tc.sort+tc.order, func(t *testing.T) {
			got := OrderBy(tc.sort, tc.order)
			assert.Equal(t, tc.column, got.Column.Name)
			assert.Equal(t, tc.desc, got.Desc)
		})
	}
}

func TestDistinctTags(t *testing.T) {
	posts := []*model.Post{
		{Tags: []string{"go", " ", "sql"}},
		{Tags: []string{"sql", ""}},
		{Tags: []string{"api"}},
	}
	assert.Equal(t, []string{"api", "go", "sql"}, DistinctTags(posts))
	assert.Empty(t, DistinctTags(nil))
}

package cascade

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func c(id, author, parent int64, voters ...int64) Comment {
	return Comment{ID: id, AuthorID: author, ParentID: parent, PostID: 1, Likes: Likes{Count: int64(len(voters)), Voters: voters}}
}

func sorted(ids []int64) []int64 {
	out := append([]int64(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestBuildForest(t *testing.T) {
	t.Run("roots and children keep input order", func(t *testing.T) {
		f := BuildForest([]Comment{
			c(1, 10, 0), c(2, 11, 1), c(3, 12, -1), c(4, 13, 1), c(5, 14, 2),
		})
		assert.Equal(t, 5, f.Len())
		roots := f.Roots()
		assert.Len(t, roots, 2)
		assert.Equal(t, int64(1), roots[0].ID)
		assert.Equal(t, int64(3), roots[1].ID)

		kids := f.Children(1)
		assert.Len(t, kids, 2)
		assert.Equal(t, int64(2), kids[0].ID)
		assert.Equal(t, int64(4), kids[1].ID)
		assert.Nil(t, f.Children(99))
	})

	t.Run("flatten is depth first then orphans", func(t *testing.T) {
		f := BuildForest([]Comment{
			c(1, 10, 0), c(2, 11, 1), c(3, 12, 2), c(4, 13, 1), c(7, 14, 42), c(8, 15, 7),
		})
		assert.Equal(t, []int64{1, 2, 3, 4, 7, 8}, f.Flatten())
	})

	t.Run("flatten is lossless", func(t *testing.T) {
		in := []Comment{
			c(9, 1, 0), c(8, 2, 9), c(7, 3, 8), c(6, 4, 100), c(5, 5, 5), c(4, 6, 0), c(3, 7, 4),
		}
		f := BuildForest(in)
		got := f.Flatten()
		want := make([]int64, 0, len(in))
		for _, x := range in {
			want = append(want, x.ID)
		}
		assert.Equal(t, sorted(want), sorted(got))
	})

	t.Run("cycles without a root become orphans", func(t *testing.T) {
		f := BuildForest([]Comment{c(1, 1, 2), c(2, 1, 1), c(3, 1, 0)})
		assert.Equal(t, []int64{3, 1, 2}, f.Flatten())
	})

	t.Run("empty input", func(t *testing.T) {
		f := BuildForest(nil)
		assert.Equal(t, 0, f.Len())
		assert.Empty(t, f.Flatten())
	})
}

package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	alice int64 = 1
	bob   int64 = 2
	carol int64 = 3
)

func TestDepthLimitedPolicy(t *testing.T) {
	t.Run("own top-level comment takes the whole thread", func(t *testing.T) {
		f := BuildForest([]Comment{
			c(1, alice, 0), c(2, bob, 1), c(3, carol, 2), c(4, bob, 3), c(5, carol, 0),
		})
		assert.Equal(t, []int64{1, 2, 3, 4}, DepthLimitedPolicy(f, alice))
	})

	t.Run("reply in someone else's thread keeps third-party replies below it", func(t *testing.T) {
		f := BuildForest([]Comment{
			c(1, bob, 0), c(2, alice, 1), c(3, carol, 2), c(4, alice, 2),
		})
		assert.Equal(t, []int64{2, 4}, DepthLimitedPolicy(f, alice))
	})

	t.Run("replies below another user's reply are out of reach", func(t *testing.T) {
		f := BuildForest([]Comment{
			c(1, bob, 0), c(2, bob, 1), c(3, alice, 2), c(4, alice, 3),
		})
		assert.Empty(t, DepthLimitedPolicy(f, alice))
	})

	t.Run("worked example", func(t *testing.T) {
		// A(bob) <- {B(alice) <- C(alice), D(bob)}; E(alice) <- F(bob)
		f := BuildForest([]Comment{
			c(1, bob, 0), c(2, alice, 1), c(3, alice, 2), c(4, bob, 1),
			c(5, alice, 0), c(6, bob, 5),
		})
		assert.ElementsMatch(t, []int64{2, 3, 5, 6}, DepthLimitedPolicy(f, alice))
	})

	t.Run("unknown user selects nothing", func(t *testing.T) {
		f := BuildForest([]Comment{c(1, bob, 0), c(2, carol, 1)})
		assert.Empty(t, DepthLimitedPolicy(f, 77))
	})
}

func TestNewPlan(t *testing.T) {
	comments := []Comment{
		c(1, bob, 0, alice, carol),
		c(2, alice, 1, bob),
		c(3, carol, 2, alice),
		c(4, carol, 0, bob),
	}
	posts := []Post{
		{ID: 10, AuthorID: bob, Likes: Likes{Count: 2, Voters: []int64{alice, carol}}},
		{ID: 11, AuthorID: bob, Likes: Likes{Count: 1, Voters: []int64{carol}}},
	}

	plan := NewPlan(alice, comments, posts, nil)
	assert.False(t, plan.Empty())
	assert.Equal(t, []int64{2}, plan.DeleteComments)

	assert.Len(t, plan.CommentLikes, 2)
	for _, ch := range plan.CommentLikes {
		assert.NotContains(t, ch.After.Voters, alice)
		assert.Equal(t, int64(len(ch.After.Voters)), ch.After.Count)
	}
	assert.Equal(t, int64(1), plan.CommentLikes[0].ID)
	assert.Equal(t, int64(3), plan.CommentLikes[1].ID)

	assert.Len(t, plan.PostLikes, 1)
	assert.Equal(t, int64(10), plan.PostLikes[0].ID)
	assert.Equal(t, Likes{Count: 1, Voters: []int64{carol}}, plan.PostLikes[0].After)

	t.Run("no footprint", func(t *testing.T) {
		p := NewPlan(99, comments, nil, nil)
		assert.True(t, p.Empty())
	})
}

func TestRemoveVoter(t *testing.T) {
	t.Run("stale count is recomputed", func(t *testing.T) {
		got, ok := RemoveVoter(Likes{Count: 9, Voters: []int64{alice, bob}}, alice)
		assert.True(t, ok)
		assert.Equal(t, Likes{Count: 1, Voters: []int64{bob}}, got)
	})
	t.Run("duplicate votes all go", func(t *testing.T) {
		got, ok := RemoveVoter(Likes{Count: 3, Voters: []int64{alice, bob, alice}}, alice)
		assert.True(t, ok)
		assert.Equal(t, Likes{Count: 1, Voters: []int64{bob}}, got)
	})
	t.Run("absent voter", func(t *testing.T) {
		in := Likes{Count: 1, Voters: []int64{bob}}
		got, ok := RemoveVoter(in, alice)
		assert.False(t, ok)
		assert.Equal(t, in, got)
	})
}

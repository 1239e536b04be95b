package cascade

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu       sync.Mutex
	posts    map[int64]Post
	comments []Comment
	deleted  map[int64]bool
	fail     map[int64]error

	inflight int32
	peak     int32
	delay    time.Duration
}

func newMemRepo(comments []Comment, posts ...Post) *memRepo {
	r := &memRepo{posts: map[int64]Post{}, comments: comments, deleted: map[int64]bool{}, fail: map[int64]error{}}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *memRepo) CountPostsByAuthor(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.posts {
		if p.AuthorID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memRepo) ListComments(context.Context) ([]Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Comment, 0, len(r.comments))
	for _, cm := range r.comments {
		if !r.deleted[cm.ID] {
			out = append(out, cm)
		}
	}
	return out, nil
}

func (r *memRepo) ListPostsLikedBy(_ context.Context, userID int64) ([]Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Post
	for _, p := range r.posts {
		if p.Likes.Has(userID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memRepo) enter(id int64) error {
	n := atomic.AddInt32(&r.inflight, 1)
	for {
		peak := atomic.LoadInt32(&r.peak)
		if n <= peak || atomic.CompareAndSwapInt32(&r.peak, peak, n) {
			break
		}
	}
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fail[id]
}

func (r *memRepo) leave() { atomic.AddInt32(&r.inflight, -1) }

func (r *memRepo) DeleteComment(_ context.Context, id int64) error {
	defer r.leave()
	if err := r.enter(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted[id] {
		return ErrNotFound
	}
	r.deleted[id] = true
	return nil
}

func (r *memRepo) RemoveCommentVote(_ context.Context, id, voter int64) error {
	defer r.leave()
	if err := r.enter(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments[i].Likes, _ = RemoveVoter(r.comments[i].Likes, voter)
		}
	}
	return nil
}

func (r *memRepo) RemovePostVote(_ context.Context, id, voter int64) error {
	defer r.leave()
	if err := r.enter(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return ErrNotFound
	}
	p.Likes, _ = RemoveVoter(p.Likes, voter)
	r.posts[id] = p
	return nil
}

func TestResolverRemoveUser(t *testing.T) {
	ctx := context.Background()

	t.Run("missing user id", func(t *testing.T) {
		_, _, err := NewResolver(newMemRepo(nil)).RemoveUser(ctx, 0)
		assert.True(t, errors.Is(err, ErrMissingUser))
	})

	t.Run("author of a post is refused and nothing changes", func(t *testing.T) {
		repo := newMemRepo(
			[]Comment{c(1, alice, 0), c(2, bob, 1, alice)},
			Post{ID: 10, AuthorID: alice},
			Post{ID: 11, AuthorID: bob, Likes: Likes{Count: 1, Voters: []int64{alice}}},
		)
		plan, res, err := NewResolver(repo).RemoveUser(ctx, alice)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUserHasPosts))
		assert.Nil(t, plan)
		assert.Nil(t, res)
		assert.Empty(t, repo.deleted)
		assert.Equal(t, []int64{alice}, repo.posts[11].Likes.Voters)
		assert.Equal(t, []int64{alice}, repo.comments[1].Likes.Voters)
	})

	t.Run("user without footprint is a no-op", func(t *testing.T) {
		repo := newMemRepo([]Comment{c(1, bob, 0)})
		plan, res, err := NewResolver(repo).RemoveUser(ctx, carol)
		require.NoError(t, err)
		assert.True(t, plan.Empty())
		assert.Empty(t, res.Outcomes)
		assert.True(t, res.OK())
	})

	t.Run("deletes and reconciles", func(t *testing.T) {
		repo := newMemRepo(
			[]Comment{
				c(1, bob, 0, alice), c(2, alice, 1), c(3, carol, 2, alice, bob),
				c(4, alice, 0), c(5, bob, 4),
			},
			Post{ID: 10, AuthorID: bob, Likes: Likes{Count: 7, Voters: []int64{alice, carol}}},
		)
		plan, res, err := NewResolver(repo).RemoveUser(ctx, alice)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{2, 4, 5}, plan.DeleteComments)
		assert.Len(t, res.Succeeded(), 3+2+1)

		left, _ := repo.ListComments(ctx)
		for _, cm := range left {
			assert.NotContains(t, cm.Likes.Voters, alice)
			assert.Equal(t, int64(len(cm.Likes.Voters)), cm.Likes.Count)
		}
		assert.Equal(t, Likes{Count: 1, Voters: []int64{carol}}, repo.posts[10].Likes)

		// a second run finds nothing left to do
		plan, _, err = NewResolver(repo).RemoveUser(ctx, alice)
		require.NoError(t, err)
		assert.True(t, plan.Empty())
	})

	t.Run("partial failure reports every failed item", func(t *testing.T) {
		repo := newMemRepo([]Comment{c(1, alice, 0), c(2, alice, 0), c(3, alice, 0)})
		boom := errors.New("boom")
		repo.fail[1] = boom
		repo.fail[3] = boom

		_, res, err := NewResolver(repo).RemoveUser(ctx, alice)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPartialFailure))
		assert.False(t, res.OK())
		failed := res.Failed()
		assert.Len(t, failed, 2)
		for _, o := range failed {
			assert.Equal(t, KindDeleteComment, o.Kind)
			assert.Equal(t, boom, o.Err)
		}
		assert.True(t, repo.deleted[2])

		// retry once the store recovers
		delete(repo.fail, 1)
		delete(repo.fail, 3)
		plan, _, err := NewResolver(repo).RemoveUser(ctx, alice)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{1, 3}, plan.DeleteComments)
	})

	t.Run("missing documents count as applied", func(t *testing.T) {
		repo := newMemRepo(nil)
		plan := &Plan{UserID: alice, PostLikes: []LikeChange{{ID: 404}}}
		res := NewApplier(repo, 2).Apply(ctx, plan)
		assert.True(t, res.OK())
	})
}

func TestApplierConcurrency(t *testing.T) {
	comments := make([]Comment, 0, 40)
	for i := int64(1); i <= 40; i++ {
		comments = append(comments, c(i, alice, 0))
	}
	repo := newMemRepo(comments)
	repo.delay = 2 * time.Millisecond

	_, res, err := NewResolver(repo, WithConcurrency(3)).RemoveUser(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, res.Outcomes, 40)
	assert.LessOrEqual(t, atomic.LoadInt32(&repo.peak), int32(3))

	t.Run("cancelled context fails the remaining items", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res := NewApplier(newMemRepo(comments), 1).Apply(ctx, &Plan{UserID: alice, DeleteComments: []int64{1, 2}})
		assert.Len(t, res.Failed(), 2)
		assert.True(t, errors.Is(res.Err(), ErrPartialFailure))
	})
}

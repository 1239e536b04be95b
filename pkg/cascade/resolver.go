package cascade

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrMissingUser  = errors.New("cascade: user id required")
	ErrUserHasPosts = errors.New("cascade: user still owns posts")
)

// Source reads the snapshot a plan is computed from.
type Source interface {
	CountPostsByAuthor(ctx context.Context, userID int64) (int64, error)
	ListComments(ctx context.Context) ([]Comment, error)
	ListPostsLikedBy(ctx context.Context, userID int64) ([]Post, error)
}

// Repository is the document store seen by the resolver.
type Repository interface {
	Source
	Store
}

type Resolver struct {
	repo        Repository
	policy      Policy
	concurrency int
}

type Option func(*Resolver)

// WithPolicy replaces DepthLimitedPolicy.
func WithPolicy(p Policy) Option {
	return func(r *Resolver) {
		if p != nil {
			r.policy = p
		}
	}
}

func WithConcurrency(n int) Option {
	return func(r *Resolver) { r.concurrency = n }
}

func NewResolver(repo Repository, opts ...Option) *Resolver {
	r := &Resolver{repo: repo, policy: DepthLimitedPolicy, concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Plan checks the preconditions and computes the plan from the current state
// of the store. Nothing is written.
func (r *Resolver) Plan(ctx context.Context, userID int64) (*Plan, error) {
	if userID <= 0 {
		return nil, ErrMissingUser
	}
	posts, err := r.repo.CountPostsByAuthor(ctx, userID)
	if err != nil {
		return nil, errors.WithMessage(err, "count posts of user")
	}
	if posts > 0 {
		return nil, errors.Wrapf(ErrUserHasPosts, "user %d owns %d posts", userID, posts)
	}
	comments, err := r.repo.ListComments(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "load comment snapshot")
	}
	liked, err := r.repo.ListPostsLikedBy(ctx, userID)
	if err != nil {
		return nil, errors.WithMessage(err, "load posts liked by user")
	}
	return NewPlan(userID, comments, liked, r.policy), nil
}

// RemoveUser plans and applies the removal of userID's comments and votes.
// The plan is always derived fresh, so calling it again after a partial
// failure picks up whatever changed in between. The user record itself is
// left to the caller.
func (r *Resolver) RemoveUser(ctx context.Context, userID int64) (*Plan, *Result, error) {
	plan, err := r.Plan(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	res := NewApplier(r.repo, r.concurrency).Apply(ctx, plan)
	return plan, res, res.Err()
}

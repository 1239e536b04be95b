package cascade

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the store calls Apply keeps in flight.
const DefaultConcurrency = 8

var (
	// ErrNotFound is returned by a Store when the document is already gone.
	// Apply counts it as success.
	ErrNotFound = errors.New("cascade: document not found")
	// ErrPartialFailure is returned when some items of a plan could not be applied.
	ErrPartialFailure = errors.New("cascade: partial failure")
)

// Store persists the plan. Each call must be idempotent: deleting a missing
// comment and removing a vote that is not there both succeed (or return
// ErrNotFound).
type Store interface {
	DeleteComment(ctx context.Context, commentID int64) error
	RemoveCommentVote(ctx context.Context, commentID, voterID int64) error
	RemovePostVote(ctx context.Context, postID, voterID int64) error
}

// Kind names the store operation an Outcome belongs to.
type Kind string

const (
	KindDeleteComment Kind = "delete_comment"
	KindCommentVote   Kind = "comment_vote"
	KindPostVote      Kind = "post_vote"
)

// Outcome is the result of one item of a plan.
type Outcome struct {
	Kind Kind
	ID   int64
	Err  error
}

// Result holds one Outcome per plan item, in plan order.
type Result struct {
	Outcomes []Outcome
}

// OK reports whether every item was applied.
func (r *Result) OK() bool {
	for _, o := range r.Outcomes {
		if o.Err != nil {
			return false
		}
	}
	return true
}

func (r *Result) Failed() []Outcome {
	return r.filter(func(o Outcome) bool { return o.Err != nil })
}

func (r *Result) Succeeded() []Outcome {
	return r.filter(func(o Outcome) bool { return o.Err == nil })
}

// Err is nil when every item succeeded, otherwise ErrPartialFailure wrapped
// with the failed items.
func (r *Result) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	parts := make([]string, 0, len(failed))
	for _, o := range failed {
		parts = append(parts, fmt.Sprintf("%s:%d", o.Kind, o.ID))
	}
	return errors.Wrapf(ErrPartialFailure, "%d of %d items failed [%s]", len(failed), len(r.Outcomes), strings.Join(parts, " "))
}

func (r *Result) filter(keep func(Outcome) bool) []Outcome {
	out := make([]Outcome, 0)
	for _, o := range r.Outcomes {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

// Applier writes a Plan through a Store.
type Applier struct {
	store Store
	limit int
}

func NewApplier(store Store, limit int) *Applier {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	return &Applier{store: store, limit: limit}
}

type task struct {
	kind Kind
	id   int64
	run  func(ctx context.Context) error
}

// Apply runs every item of the plan, at most limit at a time. A failing item
// does not stop the others; every failure ends up in the Result. Items not
// started before ctx is done fail with the context error.
func (a *Applier) Apply(ctx context.Context, plan *Plan) *Result {
	tasks := a.tasks(plan)
	res := &Result{Outcomes: make([]Outcome, len(tasks))}

	var g errgroup.Group
	g.SetLimit(a.limit)
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			res.Outcomes[i] = Outcome{Kind: t.kind, ID: t.id}
			if err := ctx.Err(); err != nil {
				res.Outcomes[i].Err = err
				return nil
			}
			if err := t.run(ctx); err != nil && !errors.Is(err, ErrNotFound) {
				res.Outcomes[i].Err = err
			}
			return nil
		})
	}
	_ = g.Wait()
	return res
}

func (a *Applier) tasks(plan *Plan) []task {
	out := make([]task, 0, len(plan.DeleteComments)+len(plan.CommentLikes)+len(plan.PostLikes))
	for _, id := range plan.DeleteComments {
		id := id
		out = append(out, task{kind: KindDeleteComment, id: id, run: func(ctx context.Context) error {
			return a.store.DeleteComment(ctx, id)
		}})
	}
	for _, ch := range plan.CommentLikes {
		id := ch.ID
		out = append(out, task{kind: KindCommentVote, id: id, run: func(ctx context.Context) error {
			return a.store.RemoveCommentVote(ctx, id, plan.UserID)
		}})
	}
	for _, ch := range plan.PostLikes {
		id := ch.ID
		out = append(out, task{kind: KindPostVote, id: id, run: func(ctx context.Context) error {
			return a.store.RemovePostVote(ctx, id, plan.UserID)
		}})
	}
	return out
}

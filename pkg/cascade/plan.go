package cascade

// LikeChange is the voter set of one document before and after the removed
// user's vote is taken out.
type LikeChange struct {
	ID     int64
	Before Likes
	After  Likes
}

// Plan is everything a user removal changes, computed against one snapshot.
type Plan struct {
	UserID         int64
	DeleteComments []int64
	CommentLikes   []LikeChange
	PostLikes      []LikeChange
}

// Empty reports whether applying the plan would touch nothing.
func (p *Plan) Empty() bool {
	return len(p.DeleteComments) == 0 && len(p.CommentLikes) == 0 && len(p.PostLikes) == 0
}

// NewPlan builds the forest, selects the comments to delete with policy and
// collects the vote removals on the surviving comments and on posts. A nil
// policy means DepthLimitedPolicy.
func NewPlan(userID int64, comments []Comment, posts []Post, policy Policy) *Plan {
	if policy == nil {
		policy = DepthLimitedPolicy
	}
	forest := BuildForest(comments)
	deleted := policy(forest, userID)

	gone := newIDSet(len(deleted))
	for _, id := range deleted {
		gone.add(id)
	}

	plan := &Plan{UserID: userID, DeleteComments: gone.ids}
	for _, c := range comments {
		if gone.has(c.ID) {
			continue
		}
		if after, ok := RemoveVoter(c.Likes, userID); ok {
			plan.CommentLikes = append(plan.CommentLikes, LikeChange{ID: c.ID, Before: c.Likes, After: after})
		}
	}
	for _, p := range posts {
		if after, ok := RemoveVoter(p.Likes, userID); ok {
			plan.PostLikes = append(plan.PostLikes, LikeChange{ID: p.ID, Before: p.Likes, After: after})
		}
	}
	return plan
}

// RemoveVoter drops voterID from the set. The count is re-derived from the
// remaining voters so it always equals their number. ok is false when the
// voter was not in the set.
func RemoveVoter(l Likes, voterID int64) (Likes, bool) {
	if !l.Has(voterID) {
		return l, false
	}
	voters := make([]int64, 0, len(l.Voters))
	for _, v := range l.Voters {
		if v != voterID {
			voters = append(voters, v)
		}
	}
	return Likes{Count: int64(len(voters)), Voters: voters}, true
}

// Package cascade computes and applies everything that has to change in the
// comment and post collections when a user is removed.
package cascade

// Likes is a voter set with its cached cardinality.
type Likes struct {
	Count  int64
	Voters []int64
}

// Has reports whether voterID is in the voter set.
func (l Likes) Has(voterID int64) bool {
	for _, v := range l.Voters {
		if v == voterID {
			return true
		}
	}
	return false
}

// Comment is the snapshot of a stored comment the resolver works on.
// ParentID <= 0 marks a top-level comment.
type Comment struct {
	ID       int64
	AuthorID int64
	ParentID int64
	PostID   int64
	Likes    Likes
}

// Post is the snapshot of a stored post the resolver works on.
type Post struct {
	ID       int64
	AuthorID int64
	Likes    Likes
}

type node struct {
	comment  Comment
	children []int
}

// Forest links a flat comment list by parent id. Nodes live in one slice and
// refer to each other by index.
type Forest struct {
	nodes   []node
	roots   []int
	orphans []int
	index   map[int64]int
}

// BuildForest links every comment to its parent in O(n). Input order is kept
// for roots and for each child list. Replies whose parent is not in the list
// are kept as orphans, reachable from no root.
func BuildForest(comments []Comment) *Forest {
	f := &Forest{
		nodes: make([]node, len(comments)),
		index: make(map[int64]int, len(comments)),
	}
	for i, c := range comments {
		f.nodes[i].comment = c
		if _, dup := f.index[c.ID]; !dup {
			f.index[c.ID] = i
		}
	}
	for i := range f.nodes {
		parent := f.nodes[i].comment.ParentID
		if parent <= 0 {
			f.roots = append(f.roots, i)
			continue
		}
		p, ok := f.index[parent]
		if !ok || p == i {
			continue
		}
		f.nodes[p].children = append(f.nodes[p].children, i)
	}

	reached := make([]bool, len(f.nodes))
	for _, r := range f.roots {
		f.walk(r, func(i int) bool {
			if reached[i] {
				return false
			}
			reached[i] = true
			return true
		})
	}
	for i := range f.nodes {
		if !reached[i] {
			f.orphans = append(f.orphans, i)
		}
	}
	return f
}

// Len is the number of comments in the forest.
func (f *Forest) Len() int { return len(f.nodes) }

// Roots returns the top-level comments in input order.
func (f *Forest) Roots() []Comment {
	out := make([]Comment, 0, len(f.roots))
	for _, r := range f.roots {
		out = append(out, f.nodes[r].comment)
	}
	return out
}

// Children returns the direct replies of the comment with the given id.
func (f *Forest) Children(id int64) []Comment {
	i, ok := f.index[id]
	if !ok {
		return nil
	}
	out := make([]Comment, 0, len(f.nodes[i].children))
	for _, c := range f.nodes[i].children {
		out = append(out, f.nodes[c].comment)
	}
	return out
}

// Flatten lists every comment id once: each root followed by its subtree in
// depth-first order, then the orphans in input order.
func (f *Forest) Flatten() []int64 {
	out := make([]int64, 0, len(f.nodes))
	seen := make([]bool, len(f.nodes))
	for _, r := range f.roots {
		f.walk(r, func(i int) bool {
			if seen[i] {
				return false
			}
			seen[i] = true
			out = append(out, f.nodes[i].comment.ID)
			return true
		})
	}
	for _, o := range f.orphans {
		if !seen[o] {
			seen[o] = true
			out = append(out, f.nodes[o].comment.ID)
		}
	}
	return out
}

// walk visits the subtree under start in pre-order. visit returning false
// prunes that node's children.
func (f *Forest) walk(start int, visit func(i int) bool) {
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(i) {
			continue
		}
		children := f.nodes[i].children
		for k := len(children) - 1; k >= 0; k-- {
			stack = append(stack, children[k])
		}
	}
}

package cascade

// Policy selects the ids of the comments that go away with userID.
type Policy func(f *Forest, userID int64) []int64

// DepthLimitedPolicy removes the whole subtree under every top-level comment
// the user wrote. Inside threads started by someone else it only looks two
// levels down: the user's direct replies to the thread root, and the user's
// replies to those. Replies by other people below a removed reply stay, with
// a dangling parent id.
func DepthLimitedPolicy(f *Forest, userID int64) []int64 {
	sel := newIDSet(0)
	for _, r := range f.roots {
		root := f.nodes[r]
		if root.comment.AuthorID == userID {
			f.walk(r, func(i int) bool {
				sel.add(f.nodes[i].comment.ID)
				return true
			})
			continue
		}
		for _, c := range root.children {
			child := f.nodes[c]
			if child.comment.AuthorID != userID {
				continue
			}
			sel.add(child.comment.ID)
			for _, g := range child.children {
				if f.nodes[g].comment.AuthorID == userID {
					sel.add(f.nodes[g].comment.ID)
				}
			}
		}
	}
	return sel.ids
}

type idSet struct {
	seen map[int64]struct{}
	ids  []int64
}

func newIDSet(n int) *idSet {
	return &idSet{seen: make(map[int64]struct{}, n), ids: make([]int64, 0, n)}
}

func (s *idSet) add(id int64) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *idSet) has(id int64) bool {
	_, ok := s.seen[id]
	return ok
}

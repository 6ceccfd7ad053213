package feed

// BuildThreads groups flat reply rows under their parent comments.
//
// Comments are expected pre-filtered to one article and pre-sorted
// (newest first in the observed usage); replies may span articles. A
// reply whose parent id is not in the comment set is dropped without
// error: it belongs to another article or to a deleted comment, either
// way it is irrelevant to this render. Input slices are not mutated and
// both orders are preserved. O(|comments| + |replies|).
func BuildThreads(comments []Comment, replies []Reply) []CommentThread {
	byParent := make(map[string][]Reply, len(comments))
	for _, c := range comments {
		byParent[c.ID] = []Reply{}
	}

	for _, r := range replies {
		if _, ok := byParent[r.ParentID]; !ok {
			continue
		}
		byParent[r.ParentID] = append(byParent[r.ParentID], r)
	}

	threads := make([]CommentThread, len(comments))
	for i, c := range comments {
		threads[i] = CommentThread{Comment: c, Replies: byParent[c.ID]}
	}
	return threads
}

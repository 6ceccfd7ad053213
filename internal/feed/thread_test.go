package feed

import (
	"fmt"
	"testing"
	"time"
)

func ts(sec int) time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(sec) * time.Second)
}

func TestBuildThreads(t *testing.T) {
	// Pre-sorted newest first, as the store returns them.
	comments := []Comment{
		{ID: "c2", ArticleID: "a1", ActorID: "u2", Text: "second", CreatedAt: ts(20)},
		{ID: "c1", ArticleID: "a1", ActorID: "u1", Text: "first", CreatedAt: ts(10)},
	}
	replies := []Reply{
		{ID: "r1", ParentID: "c1", ActorID: "u2", Text: "re: first", CreatedAt: ts(11)},
		{ID: "r2", ParentID: "c3", ActorID: "u1", Text: "stray", CreatedAt: ts(12)},
	}

	threads := BuildThreads(comments, replies)

	if len(threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(threads))
	}
	if threads[0].Comment.ID != "c2" || threads[1].Comment.ID != "c1" {
		t.Errorf("comment order not preserved: got [%s, %s]", threads[0].Comment.ID, threads[1].Comment.ID)
	}
	if len(threads[0].Replies) != 0 {
		t.Errorf("c2 should have no replies, got %d", len(threads[0].Replies))
	}
	if len(threads[1].Replies) != 1 || threads[1].Replies[0].ID != "r1" {
		t.Errorf("c1 should have exactly r1, got %+v", threads[1].Replies)
	}
	if threads[0].Replies == nil || threads[1].Replies == nil {
		t.Error("reply lists must be non-nil even when empty")
	}
}

func TestBuildThreadsAttachesEachReplyOnce(t *testing.T) {
	var comments []Comment
	for i := 0; i < 5; i++ {
		comments = append(comments, Comment{ID: fmt.Sprintf("c%d", i), CreatedAt: ts(i)})
	}
	var replies []Reply
	for i := 0; i < 20; i++ {
		// Every 4th reply points outside the comment set.
		parent := fmt.Sprintf("c%d", i%5)
		if i%4 == 3 {
			parent = "missing"
		}
		replies = append(replies, Reply{ID: fmt.Sprintf("r%d", i), ParentID: parent, CreatedAt: ts(100 + i)})
	}

	threads := BuildThreads(comments, replies)

	attached := 0
	seen := map[string]bool{}
	for _, th := range threads {
		for _, r := range th.Replies {
			if seen[r.ID] {
				t.Errorf("reply %s attached twice", r.ID)
			}
			seen[r.ID] = true
			if r.ParentID != th.Comment.ID {
				t.Errorf("reply %s under wrong comment %s", r.ID, th.Comment.ID)
			}
			attached++
		}
	}

	want := 0
	for _, r := range replies {
		if r.ParentID != "missing" {
			want++
		}
	}
	if attached != want {
		t.Errorf("expected %d attached replies, got %d", want, attached)
	}
}

func TestBuildThreadsEmptyInputs(t *testing.T) {
	if got := BuildThreads(nil, []Reply{{ID: "r1", ParentID: "c1"}}); len(got) != 0 {
		t.Errorf("empty comment set should yield no threads, got %d", len(got))
	}

	threads := BuildThreads([]Comment{{ID: "c1"}}, nil)
	if len(threads) != 1 || len(threads[0].Replies) != 0 {
		t.Errorf("expected one thread with no replies, got %+v", threads)
	}
}

func TestBuildThreadsDoesNotMutateInputs(t *testing.T) {
	comments := []Comment{{ID: "c1"}, {ID: "c2"}}
	replies := []Reply{{ID: "r1", ParentID: "c2"}}

	BuildThreads(comments, replies)

	if comments[0].ID != "c1" || comments[1].ID != "c2" || replies[0].ParentID != "c2" {
		t.Error("inputs were mutated")
	}
}

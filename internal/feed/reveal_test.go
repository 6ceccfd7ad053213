package feed

import (
	"fmt"
	"testing"

	"worldconnect/internal/models"
)

// oneReactionPerUser builds n reactions by n distinct actors so the
// grouped list has exactly n entries.
func oneReactionPerUser(n int, typ models.ReactionType) []Reaction {
	rows := make([]Reaction, n)
	for i := range rows {
		rows[i] = Reaction{
			ActorID:   fmt.Sprintf("u%04d", i),
			Type:      typ,
			CreatedAt: ts(i),
		}
	}
	return rows
}

func TestRevealSequence(t *testing.T) {
	c := NewRevealController(oneReactionPerUser(2300, models.ReactionLike), 1000)

	if c.State() != StateIdle {
		t.Fatalf("fresh controller should be Idle, got %v", c.State())
	}
	if c.Total() != 2300 {
		t.Fatalf("expected 2300 grouped users, got %d", c.Total())
	}

	batch := c.Reveal()
	if len(batch) != 1000 || len(c.Displayed()) != 1000 {
		t.Errorf("first reveal: batch=%d displayed=%d, want 1000/1000", len(batch), len(c.Displayed()))
	}
	if c.State() != StateRevealing {
		t.Errorf("expected Revealing after first reveal, got %v", c.State())
	}
	if c.NextBatch() != 1000 {
		t.Errorf("load-more label should read 1000, got %d", c.NextBatch())
	}

	c.Reveal()
	if c.NextBatch() != 300 {
		t.Errorf("load-more label should read 300, got %d", c.NextBatch())
	}

	c.Reveal()
	if len(c.Displayed()) != 2300 {
		t.Errorf("expected all 2300 displayed, got %d", len(c.Displayed()))
	}
	if c.State() != StateExhausted {
		t.Errorf("expected Exhausted, got %v", c.State())
	}
	if c.NextBatch() != 0 {
		t.Errorf("exhausted controller should label 0, got %d", c.NextBatch())
	}
}

func TestRevealEmptyCollection(t *testing.T) {
	c := NewRevealController(nil, 1000)
	batch := c.Reveal()
	if len(batch) != 0 || c.State() != StateExhausted {
		t.Errorf("empty collection: batch=%d state=%v", len(batch), c.State())
	}
}

func TestChangeFilterResets(t *testing.T) {
	// 30 users reacted with like, 20 others with anger only.
	rows := oneReactionPerUser(30, models.ReactionLike)
	for i := 0; i < 20; i++ {
		rows = append(rows, Reaction{
			ActorID:   fmt.Sprintf("angry%02d", i),
			Type:      models.ReactionAnger,
			CreatedAt: ts(1000 + i),
		})
	}

	c := NewRevealController(rows, 1000)
	c.Reveal()
	if c.State() != StateExhausted {
		t.Fatalf("expected Exhausted for 'all' after one reveal, got %v", c.State())
	}
	if len(c.Displayed()) != 50 {
		t.Fatalf("expected 50 users displayed for 'all', got %d", len(c.Displayed()))
	}

	batch := c.ChangeFilter(string(models.ReactionLike))

	if c.Filter() != "like" {
		t.Errorf("filter not switched: %s", c.Filter())
	}
	if len(batch) != 30 || len(c.Displayed()) != 30 {
		t.Errorf("like filter: batch=%d displayed=%d, want 30/30", len(batch), len(c.Displayed()))
	}
	if c.Total() != 30 {
		t.Errorf("like filter total: want 30, got %d", c.Total())
	}
	for _, s := range c.Displayed() {
		for _, r := range s.Reactions {
			if r.Type != models.ReactionLike {
				t.Fatalf("filtered view leaked a %s reaction from %s", r.Type, s.ActorID)
			}
		}
	}
}

func TestChangeFilterSmallBatches(t *testing.T) {
	c := NewRevealController(oneReactionPerUser(7, models.ReactionLove), 3)

	c.Reveal()
	c.Reveal()
	c.Reveal()
	if c.State() != StateExhausted || len(c.Displayed()) != 7 {
		t.Fatalf("expected 7 displayed and Exhausted, got %d / %v", len(c.Displayed()), c.State())
	}

	batch := c.ChangeFilter(FilterAll)
	if len(batch) != 3 || len(c.Displayed()) != 3 {
		t.Errorf("after filter reset: batch=%d displayed=%d, want 3/3", len(batch), len(c.Displayed()))
	}
	if c.State() != StateRevealing {
		t.Errorf("expected Revealing after filter reset, got %v", c.State())
	}
}

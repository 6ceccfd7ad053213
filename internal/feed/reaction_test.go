package feed

import (
	"testing"

	"worldconnect/internal/models"
)

func TestAggregateByUser(t *testing.T) {
	reactions := []Reaction{
		{ActorID: "u1", FirstName: "Ana", LastName: "Diaz", Type: models.ReactionLike, CreatedAt: ts(1)},
		{ActorID: "u1", FirstName: "Ana", LastName: "Diaz", Type: models.ReactionLove, CreatedAt: ts(2)},
		{ActorID: "u2", FirstName: "Bob", LastName: "Rey", Type: models.ReactionLike, CreatedAt: ts(3)},
	}

	summaries := AggregateByUser(reactions)

	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	// Most recently active actor first.
	if summaries[0].ActorID != "u2" || summaries[1].ActorID != "u1" {
		t.Errorf("expected order [u2, u1], got [%s, %s]", summaries[0].ActorID, summaries[1].ActorID)
	}
	if !summaries[0].LatestAt.Equal(ts(3)) {
		t.Errorf("u2 latest_at wrong: %v", summaries[0].LatestAt)
	}

	u1 := summaries[1]
	if len(u1.Reactions) != 2 {
		t.Fatalf("u1 should have 2 reactions, got %d", len(u1.Reactions))
	}
	// Newest first inside a summary.
	if u1.Reactions[0].Type != models.ReactionLove || u1.Reactions[1].Type != models.ReactionLike {
		t.Errorf("u1 reactions not sorted newest first: %+v", u1.Reactions)
	}
	if !u1.LatestAt.Equal(ts(2)) {
		t.Errorf("u1 latest_at wrong: %v", u1.LatestAt)
	}
}

func TestAggregateByUserDropsMissingActors(t *testing.T) {
	reactions := []Reaction{
		{ActorID: "", Type: models.ReactionLike, CreatedAt: ts(1)},
		{ActorID: "u1", Type: models.ReactionLike, CreatedAt: ts(2)},
		{ActorID: "", Type: models.ReactionAnger, CreatedAt: ts(3)},
	}

	summaries := AggregateByUser(reactions)

	total := 0
	for _, s := range summaries {
		if len(s.Reactions) == 0 {
			t.Errorf("summary for %s has empty reactions list", s.ActorID)
		}
		total += len(s.Reactions)
	}
	if total != 1 {
		t.Errorf("expected 1 aggregated reaction, got %d", total)
	}
}

func TestAggregateByUserCountsMatchInput(t *testing.T) {
	var reactions []Reaction
	types := models.ReactionTypes
	for i := 0; i < 40; i++ {
		reactions = append(reactions, Reaction{
			ActorID:   string(rune('a' + i%7)),
			Type:      types[i%len(types)],
			CreatedAt: ts(i),
		})
	}

	summaries := AggregateByUser(reactions)

	total := 0
	for _, s := range summaries {
		total += len(s.Reactions)
	}
	if total != len(reactions) {
		t.Errorf("aggregate lost rows: %d in, %d out", len(reactions), total)
	}
}

func TestAggregateByType(t *testing.T) {
	reactions := []Reaction{
		{ActorID: "u1", Type: models.ReactionLike, CreatedAt: ts(1)},
		{ActorID: "u2", Type: models.ReactionLike, CreatedAt: ts(2)},
		{ActorID: "u3", Type: models.ReactionLaugh, CreatedAt: ts(3)},
		{ActorID: "u4", Type: "confetti", CreatedAt: ts(4)}, // unknown, dropped
	}

	buckets := AggregateByType(reactions)

	if len(buckets) != 4 {
		t.Fatalf("expected the 4 fixed buckets, got %d", len(buckets))
	}
	if len(buckets[models.ReactionLike]) != 2 {
		t.Errorf("like bucket: want 2, got %d", len(buckets[models.ReactionLike]))
	}
	if len(buckets[models.ReactionLaugh]) != 1 {
		t.Errorf("laugh bucket: want 1, got %d", len(buckets[models.ReactionLaugh]))
	}
	if len(buckets[models.ReactionLove]) != 0 || len(buckets[models.ReactionAnger]) != 0 {
		t.Error("empty buckets must still be present and empty")
	}
}

func TestUniqueActorsRobustToDuplicates(t *testing.T) {
	// Duplicate rows from a stale cache must not inflate the count.
	bucket := []Reaction{
		{ActorID: "u1", Type: models.ReactionLike},
		{ActorID: "u1", Type: models.ReactionLike},
		{ActorID: "u2", Type: models.ReactionLike},
	}
	if got := UniqueActors(bucket); got != 2 {
		t.Errorf("expected 2 unique actors, got %d", got)
	}
}

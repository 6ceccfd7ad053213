package feed

import (
	"sort"

	"worldconnect/internal/models"
)

// AggregateByUser groups reactions by actor, newest actor first.
//
// Each summary carries the actor's reactions sorted newest first and
// latest_at as the max created_at in the group. Rows with a missing
// actor id are excluded from all aggregates; that is data-quality
// tolerance, not an error. The result never contains a summary with an
// empty reactions list.
func AggregateByUser(reactions []Reaction) []UserReactionSummary {
	byActor := make(map[string]*UserReactionSummary)
	order := make([]string, 0, len(reactions))

	for _, r := range reactions {
		if r.ActorID == "" {
			continue
		}
		s, ok := byActor[r.ActorID]
		if !ok {
			s = &UserReactionSummary{
				ActorID:   r.ActorID,
				FirstName: r.FirstName,
				LastName:  r.LastName,
			}
			byActor[r.ActorID] = s
			order = append(order, r.ActorID)
		}
		s.Reactions = append(s.Reactions, ReactionEntry{Type: r.Type, CreatedAt: r.CreatedAt})
		if r.CreatedAt.After(s.LatestAt) {
			s.LatestAt = r.CreatedAt
		}
	}

	out := make([]UserReactionSummary, 0, len(order))
	for _, id := range order {
		s := byActor[id]
		sort.SliceStable(s.Reactions, func(i, j int) bool {
			return s.Reactions[i].CreatedAt.After(s.Reactions[j].CreatedAt)
		})
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LatestAt.After(out[j].LatestAt)
	})
	return out
}

// AggregateByType partitions reactions into the four fixed buckets.
// Unknown types and rows without an actor id are dropped. Every valid
// type is present in the result even when its bucket is empty.
func AggregateByType(reactions []Reaction) map[models.ReactionType][]Reaction {
	buckets := make(map[models.ReactionType][]Reaction, len(models.ReactionTypes))
	for _, t := range models.ReactionTypes {
		buckets[t] = []Reaction{}
	}
	for _, r := range reactions {
		if r.ActorID == "" {
			continue
		}
		if _, ok := buckets[r.Type]; !ok {
			continue
		}
		buckets[r.Type] = append(buckets[r.Type], r)
	}
	return buckets
}

// UniqueActors counts distinct actor ids in a bucket. With the
// one-row-per-(article,actor,type) invariant this equals len(bucket),
// but counting actors keeps the tab numbers honest if a stale cache
// ever feeds duplicate rows through.
func UniqueActors(bucket []Reaction) int {
	seen := make(map[string]struct{}, len(bucket))
	for _, r := range bucket {
		if r.ActorID == "" {
			continue
		}
		seen[r.ActorID] = struct{}{}
	}
	return len(seen)
}

package feed

import (
	"worldconnect/internal/models"
)

// DefaultBatchSize is how many user summaries one reveal step shows.
const DefaultBatchSize = 1000

// FilterAll selects every reaction regardless of type.
const FilterAll = "all"

type RevealState int

const (
	StateIdle RevealState = iota
	StateRevealing
	StateExhausted
)

func (s RevealState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRevealing:
		return "revealing"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// RevealController walks a grouped-by-user reaction list one batch at a
// time. It owns the full in-memory reaction collection for one article;
// Reveal and ChangeFilter never touch the network, only the initial
// fetch that produced the collection did.
type RevealController struct {
	all       []Reaction
	batchSize int
	filter    string
	groups    []UserReactionSummary
	displayed []UserReactionSummary
	offset    int
	state     RevealState
}

// NewRevealController starts Idle at offset 0 with the "all" filter.
// The caller performs the first Reveal once the collection is loaded.
func NewRevealController(all []Reaction, batchSize int) *RevealController {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	c := &RevealController{
		all:       all,
		batchSize: batchSize,
		filter:    FilterAll,
		state:     StateIdle,
	}
	c.groups = c.regroup()
	return c
}

func (c *RevealController) regroup() []UserReactionSummary {
	if c.filter == FilterAll {
		return AggregateByUser(c.all)
	}
	t := models.ReactionType(c.filter)
	filtered := make([]Reaction, 0, len(c.all))
	for _, r := range c.all {
		if r.Type == t {
			filtered = append(filtered, r)
		}
	}
	return AggregateByUser(filtered)
}

// Reveal appends the next batch to the displayed set and returns it.
// Once the offset reaches the total the controller is Exhausted and
// further calls return an empty batch.
func (c *RevealController) Reveal() []UserReactionSummary {
	end := c.offset + c.batchSize
	if end > len(c.groups) {
		end = len(c.groups)
	}
	batch := c.groups[c.offset:end]
	c.displayed = append(c.displayed, batch...)
	c.offset = end

	if c.offset >= len(c.groups) {
		c.state = StateExhausted
	} else {
		c.state = StateRevealing
	}
	return batch
}

// ChangeFilter clears the displayed set, regroups the in-memory
// collection under the new filter and performs one Reveal.
func (c *RevealController) ChangeFilter(filter string) []UserReactionSummary {
	c.filter = filter
	c.offset = 0
	c.displayed = nil
	c.state = StateIdle
	c.groups = c.regroup()
	return c.Reveal()
}

// Displayed is the currently revealed prefix of the grouped list.
func (c *RevealController) Displayed() []UserReactionSummary {
	return c.displayed
}

func (c *RevealController) State() RevealState { return c.state }

func (c *RevealController) Filter() string { return c.filter }

// Total is the number of user summaries under the active filter.
func (c *RevealController) Total() int { return len(c.groups) }

// Remaining is how many summaries are still hidden.
func (c *RevealController) Remaining() int { return len(c.groups) - c.offset }

// NextBatch is the size of the batch the next Reveal would show; it
// labels the "load more" affordance and is 0 once Exhausted.
func (c *RevealController) NextBatch() int {
	if r := c.Remaining(); r < c.batchSize {
		return r
	}
	return c.batchSize
}

package live

import (
	"testing"
)

func TestPublishReachesMatchingSubscribers(t *testing.T) {
	hub := NewHub()
	all := hub.Subscribe("", "", "")
	commentsA1 := hub.Subscribe("comments", "a1", "")
	commentsA2 := hub.Subscribe("comments", "a2", "")

	hub.Publish(Event{Table: "comments", Action: "insert", ArticleID: "a1"})

	if len(all.C) != 1 {
		t.Errorf("wildcard subscriber should receive the event, queued %d", len(all.C))
	}
	if len(commentsA1.C) != 1 {
		t.Errorf("a1 subscriber should receive the event, queued %d", len(commentsA1.C))
	}
	if len(commentsA2.C) != 0 {
		t.Errorf("a2 subscriber must not receive a1 events, queued %d", len(commentsA2.C))
	}

	ev := <-commentsA1.C
	if ev.Action != "insert" || ev.ArticleID != "a1" {
		t.Errorf("unexpected event payload: %+v", ev)
	}
}

func TestPublishFiltersByReceiver(t *testing.T) {
	hub := NewHub()
	mine := hub.Subscribe("notifications", "", "u1")
	theirs := hub.Subscribe("notifications", "", "u2")

	hub.Publish(Event{Table: "notifications", Action: "insert", UserID: "u1"})

	if len(mine.C) != 1 {
		t.Errorf("u1 should receive their notification event, queued %d", len(mine.C))
	}
	if len(theirs.C) != 0 {
		t.Errorf("u2 must not see u1 notification events, queued %d", len(theirs.C))
	}
}

func TestPublishDropsWhenSubscriberFull(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("reactions", "", "")

	// Fill the buffer and then some; Publish must never block.
	for i := 0; i < subscriptionBuffer+10; i++ {
		hub.Publish(Event{Table: "reactions", Action: "insert"})
	}
	if len(sub.C) != subscriptionBuffer {
		t.Errorf("expected a full buffer of %d, got %d", subscriptionBuffer, len(sub.C))
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("comments", "a1", "")

	sub.Close()
	sub.Close() // must not panic

	if hub.Subscribers() != 0 {
		t.Errorf("expected no subscribers after close, got %d", hub.Subscribers())
	}
	// Publishing after close must not panic either.
	hub.Publish(Event{Table: "comments", ArticleID: "a1"})
}

func TestRegistryReplacesOnReregister(t *testing.T) {
	hub := NewHub()
	reg := NewRegistry(hub)

	first := reg.Register("feed", "comments", "a1", "")
	second := reg.Register("feed", "comments", "a2", "")

	if hub.Subscribers() != 1 {
		t.Fatalf("re-register must replace, not stack: %d subscribers", hub.Subscribers())
	}

	// The replaced handle is closed.
	if _, open := <-first.C; open {
		t.Error("first subscription should be closed after replacement")
	}

	hub.Publish(Event{Table: "comments", ArticleID: "a2"})
	if len(second.C) != 1 {
		t.Errorf("replacement subscription should be live, queued %d", len(second.C))
	}

	reg.ReleaseAll()
	if hub.Subscribers() != 0 {
		t.Errorf("expected no subscribers after ReleaseAll, got %d", hub.Subscribers())
	}
}

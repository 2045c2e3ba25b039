package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func waitForRoomSize(t *testing.T, h *Hub, room string, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for h.RoomSize(room) != want {
		if time.Now().After(deadline) {
			t.Fatalf("room %s: expected %d clients, got %d", room, want, h.RoomSize(room))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPublishReachesOnlyRoomMembers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)

	board := NewClient(hub, nil, RoomLeaderboard)
	matches := NewClient(hub, nil, RoomMatches)
	hub.Register(board)
	hub.Register(matches)
	waitForRoomSize(t, hub, RoomLeaderboard, 1)
	waitForRoomSize(t, hub, RoomMatches, 1)

	hub.Publish(RoomLeaderboard, EventScoresRecalculated, map[string]int{"users": 3})

	select {
	case raw := <-board.send:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("decode message: %v", err)
		}
		if msg.Type != EventScoresRecalculated || msg.Room != RoomLeaderboard {
			t.Fatalf("unexpected message %+v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("leaderboard client did not receive the event")
	}

	select {
	case raw := <-matches.send:
		t.Fatalf("matches client should not receive leaderboard events, got %s", raw)
	default:
	}
}

func TestUnregisterClosesClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)

	c := NewClient(hub, nil, RoomMatches)
	hub.Register(c)
	waitForRoomSize(t, hub, RoomMatches, 1)

	hub.Unregister(c)
	waitForRoomSize(t, hub, RoomMatches, 0)

	if _, ok := <-c.send; ok {
		t.Fatal("expected send channel to be closed")
	}
	hub.Publish(RoomMatches, EventMatchUpdated, nil)
}

func TestRegisterAfterStopClosesClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	c := NewClient(hub, nil, RoomMatches)
	hub.Register(c)
	if _, ok := <-c.send; ok {
		t.Fatal("expected client to be closed once the hub has stopped")
	}
}

func TestKnownRoom(t *testing.T) {
	if !KnownRoom(RoomMatches) || !KnownRoom(RoomLeaderboard) || KnownRoom("tournament_1") {
		t.Fatal("unexpected room validation result")
	}
}

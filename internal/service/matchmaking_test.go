package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
	"github.com/benbeisheim/chessrules-backend/internal/testutil"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

func TestQueue(t *testing.T) {
	q := NewQueue()
	testutil.AssertNoError(t, q.AddPlayer(QueuedPlayer{ID: "a"}))
	testutil.AssertErrorIs(t, q.AddPlayer(QueuedPlayer{ID: "a"}), errors.ErrAlreadyQueued)
	testutil.AssertNoError(t, q.AddPlayer(QueuedPlayer{ID: "b"}))
	testutil.AssertNoError(t, q.AddPlayer(QueuedPlayer{ID: "c"}))
	testutil.AssertEqual(t, q.Size(), 3)

	testutil.AssertTrue(t, q.Remove("b"))
	testutil.AssertFalse(t, q.Remove("b"))

	first, second, ok := q.GetNextPair()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, first.ID, "a")
	testutil.AssertEqual(t, second.ID, "c")

	_, _, ok = q.GetNextPair()
	testutil.AssertFalse(t, ok, "empty queue")
}

func decodeMatch(t *testing.T, ch chan string) ws.MatchFoundEvent {
	t.Helper()
	select {
	case raw, ok := <-ch:
		if !ok {
			t.Fatal("channel closed without an event")
		}
		var event ws.MatchFoundEvent
		testutil.AssertNoError(t, json.Unmarshal([]byte(raw), &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("no match event")
	}
	return ws.MatchFoundEvent{}
}

func TestGameManager_Matchmaking(t *testing.T) {
	gm, st := newTestManager(t)
	ctx := context.Background()

	aliceCh, bobCh := make(chan string, 1), make(chan string, 1)
	gm.RegisterMatchmakingChannel("alice", aliceCh)
	gm.RegisterMatchmakingChannel("bob", bobCh)

	testutil.AssertNoError(t, gm.JoinMatchmaking("alice"))
	testutil.AssertEqual(t, gm.processMatchmaking(ctx), 0, "one player is not a match")

	testutil.AssertNoError(t, gm.JoinMatchmaking("bob"))
	testutil.AssertErrorIs(t, gm.JoinMatchmaking("bob"), errors.ErrAlreadyQueued)
	testutil.AssertEqual(t, gm.processMatchmaking(ctx), 1)

	aliceEvent := decodeMatch(t, aliceCh)
	bobEvent := decodeMatch(t, bobCh)
	testutil.AssertEqual(t, aliceEvent.GameID, bobEvent.GameID)
	testutil.AssertEqual(t, aliceEvent.Color, "white")
	testutil.AssertEqual(t, bobEvent.Color, "black")

	_, open := <-aliceCh
	testutil.AssertFalse(t, open, "channel retired after the event")

	snap, err := st.Load(ctx, aliceEvent.GameID)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, snap.White, "alice")
	testutil.AssertEqual(t, snap.Black, "bob")

	_, err = gm.MakeMove(ctx, aliceEvent.GameID, "alice", payload(t, "e2", "e4"))
	testutil.AssertNoError(t, err)
}

func TestGameManager_RegisterMatchmakingChannelReplaces(t *testing.T) {
	gm, _ := newTestManager(t)
	old, replacement := make(chan string, 1), make(chan string, 1)

	gm.RegisterMatchmakingChannel("alice", old)
	gm.RegisterMatchmakingChannel("alice", replacement)
	_, open := <-old
	testutil.AssertFalse(t, open, "old channel closed")

	gm.UnregisterMatchmakingChannel("alice", old)
	gm.mu.RLock()
	_, still := gm.matchingChannels["alice"]
	gm.mu.RUnlock()
	testutil.AssertTrue(t, still, "unregistering a stale channel keeps the current one")

	gm.UnregisterMatchmakingChannel("alice", replacement)
	gm.mu.RLock()
	_, still = gm.matchingChannels["alice"]
	gm.mu.RUnlock()
	testutil.AssertFalse(t, still)
}

func TestGameManager_RunStopsOnCancel(t *testing.T) {
	gm, _ := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan string, 1)
	gm.RegisterMatchmakingChannel("alice", ch)
	testutil.AssertNoError(t, gm.JoinMatchmaking("alice"))
	testutil.AssertNoError(t, gm.JoinMatchmaking("bob"))

	done := make(chan struct{})
	go func() {
		gm.Run(ctx)
		close(done)
	}()

	event := decodeMatch(t, ch)
	testutil.AssertTrue(t, event.GameID != "", "paired by the background loop")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

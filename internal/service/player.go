package service

import (
	"strings"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
	"github.com/benbeisheim/chessrules-backend/internal/model"
)

type PlayerColor string

const (
	ColorWhite PlayerColor = "white"
	ColorBlack PlayerColor = "black"
)

func colorOf(side model.Side) PlayerColor {
	if side == model.White {
		return ColorWhite
	}
	return ColorBlack
}

// Player is a seat holder as clients see it.
type Player struct {
	ID    string      `json:"id"`
	Color PlayerColor `json:"color"`
}

type QueuedPlayer struct {
	ID string
}

// Queue is a FIFO of players waiting for an opponent.
type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{players: make([]QueuedPlayer, 0)}
}

func (q *Queue) AddPlayer(player QueuedPlayer) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.ID == player.ID {
			return errors.Wrapf(errors.ErrAlreadyQueued, "player %s", player.ID)
		}
	}
	q.players = append(q.players, QueuedPlayer{ID: strings.Clone(player.ID)})
	return nil
}

// GetNextPair pops the two longest waiting players. ok is false when fewer than
// two are queued.
func (q *Queue) GetNextPair() (first, second QueuedPlayer, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return QueuedPlayer{}, QueuedPlayer{}, false
	}
	first, second = q.players[0], q.players[1]
	q.players = q.players[2:]
	return first, second, true
}

// Remove drops a player from the queue and reports whether it was queued.
func (q *Queue) Remove(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.ID == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}

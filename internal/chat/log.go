package chat

import (
	"context"
	"sync"

	"github.com/securespot/securespot-go/internal/model"
)

// Asker is implemented by Client; tests substitute their own.
type Asker interface {
	History(ctx context.Context, token string) ([]model.ChatTurn, error)
	Ask(ctx context.Context, token, query string) (string, error)
}

// Log is the screen-side conversation state: append-only, oldest first,
// rebuilt wholesale on reload.
type Log struct {
	api   Asker
	token string

	mu    sync.Mutex
	turns []model.ChatTurn
}

func NewLog(api Asker, token string) *Log {
	return &Log{api: api, token: token}
}

// Reload replaces the whole log with the server-held history. A transport
// failure leaves the current log untouched.
func (l *Log) Reload(ctx context.Context) error {
	turns, err := l.api.History(ctx, l.token)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.turns = turns
	l.mu.Unlock()
	return nil
}

// Ask appends the question with a placeholder response, then overwrites the
// placeholder with the reply or, on failure, with an apology. The turn stays
// in the log either way.
func (l *Log) Ask(ctx context.Context, query string) (model.ChatTurn, error) {
	l.mu.Lock()
	l.turns = append(l.turns, model.ChatTurn{Question: query, Response: model.PendingResponse})
	index := len(l.turns) - 1
	l.mu.Unlock()

	reply, err := l.api.Ask(ctx, l.token, query)
	if err != nil {
		reply = "An error occurred. Please try again."
	}

	l.mu.Lock()
	l.turns[index].Response = reply
	turn := l.turns[index]
	l.mu.Unlock()

	return turn, err
}

// Turns returns a copy of the log, oldest first.
func (l *Log) Turns() []model.ChatTurn {
	l.mu.Lock()
	defer l.mu.Unlock()
	turns := make([]model.ChatTurn, len(l.turns))
	copy(turns, l.turns)
	return turns
}

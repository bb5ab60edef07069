package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"kaset_news/internal/models"
)

// ErrInvalidTransition is returned when a session is driven out of order.
var ErrInvalidTransition = errors.New("invalid view state transition")

// Session follows one invocation: idle, then loading, then exactly one of
// success or failure. Terminal states are never left; a new invocation needs
// a new Session.
type Session struct {
	mu        sync.Mutex
	presenter *Presenter
	state     State
}

func (p *Presenter) NewSession() *Session {
	return &Session{presenter: p, state: State{Status: StatusIdle}}
}

// Begin moves idle to loading.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != StatusIdle {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state.Status, StatusLoading)
	}
	s.state = Loading()
	return nil
}

// Complete applies the pipeline outcome. When ctx is already done the viewer
// has gone away and the outcome is discarded.
func (s *Session) Complete(ctx context.Context, articles []models.Article, runErr error) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return s.state, err
	}

	next := StatusSuccess
	if runErr != nil {
		next = StatusFailure
	}
	if s.state.Status != StatusLoading {
		return s.state, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state.Status, next)
	}

	if runErr != nil {
		s.state = Failure(runErr)
	} else {
		s.state = s.presenter.Success(articles)
	}
	return s.state, nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

package mark

import (
	"context"
	"sync"
)

// TogglerStub answers with queued results. When Gate is set every call blocks on it first, which
// keeps a request in flight for as long as a test needs.
type TogglerStub struct {
	mu      sync.Mutex
	results []Result
	calls   []string
	tokens  []string
	Gate    chan struct{}
	Started chan struct{}
}

func NewTogglerStub(results ...Result) *TogglerStub {
	return &TogglerStub{results: results}
}

func (s *TogglerStub) Push(result Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
}

func (s *TogglerStub) Toggle(ctx context.Context, action string, token string) (Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, action)
	s.tokens = append(s.tokens, token)
	gate, started := s.Gate, s.Started
	s.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return Response{}, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 {
		return Response{Success: true, Action: ActionCreated}, nil
	}
	next := s.results[0]
	s.results = s.results[1:]
	return next.Response, next.Err
}

func (s *TogglerStub) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *TogglerStub) Tokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens...)
}

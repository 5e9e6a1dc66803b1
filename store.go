package tracker

import (
	"slices"
	"strings"
	"sync"
)

// Store is the durable record of user-entered positions. It owns them
// exclusively: no other component mutates a position.
//
// All operations take the store lock, so read-modify-write sequences
// (add/edit/delete) are safe even when the HTTP server and the background
// refresher share one store.
type Store struct {
	mu        sync.Mutex
	positions []Position
}

// NewStore returns a new empty position store.
func NewStore() *Store {
	return &Store{positions: make([]Position, 0)}
}

// Add appends a validated position to the store.
func (s *Store) Add(p Position) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions = append(s.positions, p)
	return nil
}

// Edit updates the non-identity fields of the position with the given id.
// The ticker is immutable. It returns the updated position, or ErrNotFound.
// On validation failure nothing is mutated.
func (s *Store) Edit(id, description string, quantity Quantity, purchasePrice, fees Money) (Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.positions {
		if p.ID != id {
			continue
		}
		next := p
		next.Description = description
		next.Quantity = quantity
		next.PurchasePrice = purchasePrice
		next.Fees = fees
		if err := next.Validate(); err != nil {
			return Position{}, err
		}
		s.positions[i] = next
		return next, nil
	}
	return Position{}, ErrNotFound
}

// Delete removes the position with the given id, or returns ErrNotFound.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.positions {
		if p.ID == id {
			s.positions = slices.Delete(s.positions, i, i+1)
			return nil
		}
	}
	return ErrNotFound
}

// Get returns the position with the given id.
func (s *Store) Get(id string) (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.positions {
		if p.ID == id {
			return p, true
		}
	}
	return Position{}, false
}

// Positions returns a copy of all positions, sorted by ticker then by the
// time they were added.
func (s *Store) Positions() []Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.positions)
	slices.SortStableFunc(out, func(a, b Position) int {
		if c := strings.Compare(a.Ticker, b.Ticker); c != 0 {
			return c
		}
		return a.Added.Compare(b.Added)
	})
	return out
}

// Tickers returns the set of distinct tickers held in the store.
func (s *Store) Tickers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	var tickers []string
	for _, p := range s.positions {
		if _, ok := seen[p.Ticker]; ok {
			continue
		}
		seen[p.Ticker] = struct{}{}
		tickers = append(tickers, p.Ticker)
	}
	slices.Sort(tickers)
	return tickers
}

// Len returns the number of positions in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.positions)
}

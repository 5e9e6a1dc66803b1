package tracker

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestStore_AddEditDelete(t *testing.T) {
	s := NewStore()
	p := mustPosition(t, "AAPL", 10, 150, 2)
	if err := s.Add(p); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	got, err := s.Edit(p.ID, "apple shares", Q(12), USD(151), USD(3))
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if got.Description != "apple shares" || !got.Quantity.Equal(Q(12)) {
		t.Errorf("Edit() = %+v, fields not applied", got)
	}
	if got.Ticker != "AAPL" {
		t.Errorf("Edit() changed ticker to %q", got.Ticker)
	}
	if got.ID != p.ID {
		t.Errorf("Edit() changed id to %q", got.ID)
	}

	if err := s.Delete(p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after delete, want 0", s.Len())
	}
}

func TestStore_EditRejectsInvalidWithoutMutating(t *testing.T) {
	s := NewStore()
	p := mustPosition(t, "AAPL", 10, 150, 2)
	if err := s.Add(p); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	_, err := s.Edit(p.ID, "broken", Q(-5), USD(151), USD(3))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Edit() error = %v, want *ValidationError", err)
	}

	got, _ := s.Get(p.ID)
	if !got.Quantity.Equal(Q(10)) {
		t.Errorf("Edit() mutated quantity to %s on validation failure", got.Quantity)
	}
}

func TestStore_NotFound(t *testing.T) {
	s := NewStore()
	if _, err := s.Edit("nope", "", Q(1), USD(1), USD(0)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Edit() error = %v, want ErrNotFound", err)
	}
	if err := s.Delete("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Tickers(t *testing.T) {
	s := NewStore()
	for _, ticker := range []string{"MSFT", "AAPL", "MSFT"} {
		if err := s.Add(mustPosition(t, ticker, 1, 1, 0)); err != nil {
			t.Fatalf("Add(%q) error = %v", ticker, err)
		}
	}
	got := s.Tickers()
	want := []string{"AAPL", "MSFT"}
	if len(got) != len(want) {
		t.Fatalf("Tickers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tickers()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := NewStore()
	a := mustPosition(t, "AAPL", 10, 150.25, 2)
	a.Description = "apple"
	b := mustPosition(t, "MSFT", 3.5, 310, 0)
	for _, p := range []Position{a, b} {
		if err := s.Add(p); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "portfolio.jsonl")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadStore(path)
	if err != nil {
		t.Fatalf("LoadStore() error = %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded.Len() = %d, want 2", loaded.Len())
	}
	got, ok := loaded.Get(a.ID)
	if !ok {
		t.Fatalf("loaded store misses position %q", a.ID)
	}
	if got.Ticker != "AAPL" || got.Description != "apple" {
		t.Errorf("loaded position = %+v", got)
	}
	if !got.Quantity.Equal(a.Quantity) || !got.PurchasePrice.Equal(a.PurchasePrice) || !got.Fees.Equal(a.Fees) {
		t.Errorf("loaded amounts differ: %+v want %+v", got, a)
	}
}

func TestLoadStore_MissingFile(t *testing.T) {
	s, err := LoadStore(filepath.Join(t.TempDir(), "does-not-exist.jsonl"))
	if err != nil {
		t.Fatalf("LoadStore() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestDecodeStore_RejectsMalformedLine(t *testing.T) {
	input := `{"id":"1","ticker":"AAPL","quantity":1,"purchase_price":2,"fees":0,"currency":"USD","added":"2025-01-01T00:00:00Z"}
not json at all
`
	_, err := DecodeStore(strings.NewReader(input))
	if err == nil {
		t.Fatal("DecodeStore() accepted a malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("DecodeStore() error = %v, want the offending line number", err)
	}
}

func TestDecodeStore_IgnoresUnknownFields(t *testing.T) {
	input := `{"id":"1","ticker":"AAPL","quantity":1,"purchase_price":2,"fees":0,"currency":"USD","added":"2025-01-01T00:00:00Z","broker":"someday"}
`
	s, err := DecodeStore(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeStore() error = %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

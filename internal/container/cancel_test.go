package container

import "testing"

func TestCancelTokenStartsUncancelled(t *testing.T) {
	tok := NewCancelToken()
	if tok.IsCancelled() {
		t.Fatal("expected fresh token to be uncancelled")
	}
}

func TestCancelTokenTransitionsOnce(t *testing.T) {
	tok := NewCancelToken()
	tok.Cancel()
	if !tok.IsCancelled() {
		t.Fatal("expected token to be cancelled")
	}
	tok.Cancel() // idempotent
	if !tok.IsCancelled() {
		t.Fatal("expected token to remain cancelled")
	}
}

func TestCancelTokenVisibleAcrossCopies(t *testing.T) {
	a := NewCancelToken()
	b := a
	a.Cancel()
	if !b.IsCancelled() {
		t.Fatal("expected copy to observe cancellation")
	}
}

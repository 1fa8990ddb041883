package auth

import (
	"errors"
	"testing"
)

func TestTokenStore(t *testing.T) {
	store := NewTokenStore()

	if _, err := store.Get(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Get on empty store = %v, want ErrNoToken", err)
	}

	store.Save("token-a")
	got, err := store.Get()
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != "token-a" {
		t.Errorf("Get = %q, want token-a", got)
	}

	store.Save("token-b")
	got, _ = store.Get()
	if got != "token-b" {
		t.Errorf("Get after overwrite = %q, want token-b", got)
	}

	store.Clear()
	if _, err := store.Get(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Get after Clear = %v, want ErrNoToken", err)
	}
}

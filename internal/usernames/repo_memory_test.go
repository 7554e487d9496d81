package usernames

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryRepoCreateIfAbsent(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if _, err := repo.Lookup(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	name, created, err := repo.CreateIfAbsent(ctx, "u1", "ada")
	if err != nil || !created || name != "ada" {
		t.Fatalf("first create: name=%q created=%v err=%v", name, created, err)
	}

	name, created, err = repo.CreateIfAbsent(ctx, "u1", "other")
	if err != nil || created || name != "ada" {
		t.Fatalf("second create should keep existing: name=%q created=%v err=%v", name, created, err)
	}

	if _, _, err := repo.CreateIfAbsent(ctx, "u2", "ada"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	owner, err := repo.UserIDFor(ctx, "ada")
	if err != nil || owner != "u1" {
		t.Fatalf("reverse lookup: owner=%q err=%v", owner, err)
	}
}

func TestMemoryRepoConcurrentCreateSingleWinner(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, ok, err := repo.CreateIfAbsent(ctx, "u1", fmt.Sprintf("name-%d", i))
			if err != nil {
				t.Errorf("CreateIfAbsent: %v", err)
				return
			}
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if created != 1 {
		t.Fatalf("expected exactly one creation, got %d", created)
	}
}

func TestCreateIfAbsentRejectsInvalid(t *testing.T) {
	repo := NewMemoryRepo()
	for _, tc := range [][2]string{{"", "ada"}, {"u1", ""}, {"u1", "a/b"}} {
		if _, _, err := repo.CreateIfAbsent(context.Background(), tc[0], tc[1]); !errors.Is(err, ErrInvalid) {
			t.Fatalf("CreateIfAbsent(%q, %q): expected ErrInvalid, got %v", tc[0], tc[1], err)
		}
	}
}

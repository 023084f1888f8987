package tasks

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestInMemoryRepo_ListMatchesCreates(t *testing.T) {
	repo := NewInMemoryRepo()
	ctx := t.Context()

	want := make(map[int64]string)
	for i := 0; i < 20; i++ {
		title := fmt.Sprintf("task %d", i)
		task, err := repo.Create(ctx, title)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		want[task.ID] = title
	}

	for id := range want {
		if id%3 == 0 {
			removed, err := repo.Delete(ctx, id)
			if err != nil || !removed {
				t.Fatalf("delete %d: removed=%v err=%v", id, removed, err)
			}
			delete(want, id)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(list))
	}
	for _, task := range list {
		if want[task.ID] != task.Title {
			t.Errorf("unexpected task %+v", task)
		}
	}
}

func TestInMemoryRepo_InsertionOrder(t *testing.T) {
	repo := NewInMemoryRepo()
	ctx := t.Context()

	for _, title := range []string{"a", "b", "c"} {
		if _, err := repo.Create(ctx, title); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, _ := repo.List(ctx)
	if list[0].Title != "a" || list[1].Title != "b" || list[2].Title != "c" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestInMemoryRepo_DeleteUnknown(t *testing.T) {
	repo := NewInMemoryRepo()
	ctx := t.Context()

	a, _ := repo.Create(ctx, "a")

	removed, err := repo.Delete(ctx, a.ID+1000)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed {
		t.Fatalf("expected no-op delete")
	}
	list, _ := repo.List(ctx)
	if len(list) != 1 {
		t.Fatalf("expected store unchanged, got %+v", list)
	}
}

func TestInMemoryRepo_ListIsSnapshot(t *testing.T) {
	repo := NewInMemoryRepo()
	ctx := t.Context()

	_, _ = repo.Create(ctx, "original")
	list, _ := repo.List(ctx)
	list[0].Title = "mutated"

	again, _ := repo.List(ctx)
	if again[0].Title != "original" {
		t.Fatalf("List leaked internal state: %+v", again)
	}
}

func TestIDGenerator_Monotonic(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	g := &IDGenerator{now: func() time.Time { return fixed }}

	a, b, c := g.Next(), g.Next(), g.Next()
	if a != fixed.UnixMilli() {
		t.Fatalf("expected first id to be the clock value, got %d", a)
	}
	if b != a+1 || c != b+1 {
		t.Fatalf("expected increasing ids under a frozen clock: %d %d %d", a, b, c)
	}
}

func TestIDGenerator_ConcurrentUnique(t *testing.T) {
	g := NewIDGenerator()

	var (
		mu   sync.Mutex
		seen = make(map[int64]struct{})
		wg   sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				id := g.Next()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != 8*500 {
		t.Fatalf("expected %d unique ids, got %d", 8*500, len(seen))
	}
}

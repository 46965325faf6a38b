package localdb

import (
	"context"
	"errors"
	"testing"

	"github.com/wems/internal/content"
	"github.com/wems/internal/storage"
	"github.com/wems/internal/storage/kvstore"
)

// flakyBackend 在 failLoads 为 true 时读失败，写入仍然成功
type flakyBackend struct {
	storage.Backend
	failLoads bool
}

func (b *flakyBackend) LoadSection(ctx context.Context, section content.Section) ([]byte, error) {
	if b.failLoads {
		return nil, errors.New("upstream unavailable")
	}
	return b.Backend.LoadSection(ctx, section)
}

func TestImageLibraryAppendAndDelete(t *testing.T) {
	stores := map[string]*Store{
		"indexed":  setupIndexedFacade(t),
		"keyValue": New(kvstore.New(setupTestGorm(t)), nil),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first, err := store.AppendImage(ctx, content.Image{Name: "a.png", URL: "/a.png", Section: "hero"})
			if err != nil {
				t.Fatalf("append first: %v", err)
			}
			second, err := store.AppendImage(ctx, content.Image{Name: "b.png", URL: "/b.png", Section: "hero"})
			if err != nil {
				t.Fatalf("append second: %v", err)
			}
			if first.ID != 1 || second.ID != 2 {
				t.Fatalf("unexpected ids %d %d", first.ID, second.ID)
			}

			if err := store.DeleteImage(ctx, first.ID); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := store.DeleteImage(ctx, first.ID); !errors.Is(err, ErrImageNotFound) {
				t.Fatalf("expected ErrImageNotFound, got %v", err)
			}

			list := store.LoadImages(ctx, nil)
			if len(list) != 1 || list[0].ID != second.ID {
				t.Fatalf("unexpected images %#v", list)
			}
		})
	}
}

func TestAppendImageKeepsLibraryWhenLoadFails(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{Backend: kvstore.New(setupTestGorm(t))}
	store := New(backend, nil)

	existing := []content.Image{{ID: 1, Name: "a.png", URL: "/a.png"}, {ID: 2, Name: "b.png", URL: "/b.png"}}
	if err := store.SaveImages(ctx, existing); err != nil {
		t.Fatalf("seed: %v", err)
	}

	backend.failLoads = true
	if _, err := store.AppendImage(ctx, content.Image{Name: "c.png", URL: "/c.png"}); err == nil {
		t.Fatal("expected append to fail when the library cannot be read")
	}
	if err := store.DeleteImage(ctx, 1); err == nil {
		t.Fatal("expected delete to fail when the library cannot be read")
	}

	backend.failLoads = false
	list := store.LoadImages(ctx, nil)
	if len(list) != 2 {
		t.Fatalf("expected existing images to survive, got %#v", list)
	}
}

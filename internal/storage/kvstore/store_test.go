package kvstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wems/internal/content"
	"github.com/wems/internal/db"
	"github.com/wems/internal/notify"
	"github.com/wems/internal/storage"
)

func setupKVTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:kvstore-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func TestStorePutOverwritesAndDeletes(t *testing.T) {
	store := New(setupKVTestDB(t))
	ctx := context.Background()

	if _, err := store.Get(ctx, "wems_slides"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Put(ctx, "wems_slides", []byte(`[1]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "wems_slides", []byte(`[2]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	raw, err := store.Get(ctx, "wems_slides")
	if err != nil || string(raw) != `[2]` {
		t.Fatalf("expected [2], got %s (%v)", raw, err)
	}

	keys, err := store.Keys(ctx)
	if err != nil || len(keys) != 1 {
		t.Fatalf("expected a single key, got %v (%v)", keys, err)
	}

	if err := store.Delete(ctx, "wems_slides"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "wems_slides"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if _, err := store.Get(ctx, "wems_slides"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestLoadReturnsDefaultOnMissingOrCorruptValue(t *testing.T) {
	store := New(setupKVTestDB(t))
	ctx := context.Background()

	def := []content.Slide{{ID: "1", Title: "默认"}}
	if got := Load(ctx, store, "wems_slides", def); len(got) != 1 || got[0].Title != "默认" {
		t.Fatalf("expected default slides, got %#v", got)
	}

	if err := store.Put(ctx, "wems_slides", []byte(`{not json`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got := Load(ctx, store, "wems_slides", def); got[0].Title != "默认" {
		t.Fatalf("expected default on corrupt value, got %#v", got)
	}

	saved := []content.Slide{{ID: "a", Title: "新"}, {ID: "b", Title: "二"}}
	if err := Save(ctx, store, "wems_slides", saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := Load(ctx, store, "wems_slides", def)
	if len(got) != 2 || got[1].ID != "b" {
		t.Fatalf("unexpected loaded slides %#v", got)
	}
}

func TestStorePublishesWatchedKeys(t *testing.T) {
	bus := notify.NewBus()
	ch := bus.Subscribe(notify.TopicStorageKey)
	store := New(setupKVTestDB(t), WithNotifier(bus))
	ctx := context.Background()

	if err := store.Put(ctx, "wems_slides", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.SaveSection(ctx, content.SectionSiteLogo, []byte(`{"url":"/logo.png"}`)); err != nil {
		t.Fatalf("save logo: %v", err)
	}

	select {
	case event := <-ch:
		if event.Key != "wems_site_logo" {
			t.Fatalf("expected site logo key, got %q", event.Key)
		}
	case <-time.After(time.Second):
		t.Fatal("expected storage event")
	}

	select {
	case event := <-ch:
		t.Fatalf("unexpected extra event %#v", event)
	default:
	}
}

func TestStoreSectionRoundTrip(t *testing.T) {
	store := New(setupKVTestDB(t))
	ctx := context.Background()

	if err := store.SaveSection(ctx, content.SectionPartners, []byte(`[{"id":1}`)); err == nil {
		t.Fatal("expected invalid json to be rejected")
	}

	payload := []byte(`[{"id":1,"name":"Acme"}]`)
	if err := store.SaveSection(ctx, content.SectionPartners, payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := store.LoadSection(ctx, content.SectionPartners)
	if err != nil || string(raw) != string(payload) {
		t.Fatalf("expected %s, got %s (%v)", payload, raw, err)
	}
	if store.Kind() != storage.KindKeyValue {
		t.Fatalf("unexpected kind %q", store.Kind())
	}
}

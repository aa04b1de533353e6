package storage_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"ecoacustica/internal/records"
	"ecoacustica/internal/storage"
	"ecoacustica/internal/testsupport"
)

func TestPutGetDelete(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get missing key = (%v, %v), want absent", ok, err)
	}

	if err := store.Put(ctx, "auth", `{"user":{"id":"user_1"}}`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	value, ok, err := store.Get(ctx, "auth")
	if err != nil || !ok {
		t.Fatalf("Get failed: (%v, %v)", ok, err)
	}
	if value != `{"user":{"id":"user_1"}}` {
		t.Fatalf("unexpected value: %q", value)
	}

	if err := store.Delete(ctx, "auth"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "auth"); ok {
		t.Fatal("key should be gone after delete")
	}
	if err := store.Delete(ctx, "auth"); err != nil {
		t.Fatalf("deleting absent key should be a no-op, got %v", err)
	}
}

func TestPutFullyReplaces(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.Put(ctx, "k", "first value with extra length"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, "k", "second"); err != nil {
		t.Fatalf("Put replace failed: %v", err)
	}
	value, _, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "second" {
		t.Fatalf("expected full replacement, got %q", value)
	}
}

func TestPutRejectsEmptyKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	if err := store.Put(context.Background(), "  ", "value"); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestCollectionRoundTripThroughStore(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	seed := records.Seed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	key := storage.HistoryKey("user_1")
	if err := store.PutJSON(ctx, key, seed); err != nil {
		t.Fatalf("PutJSON failed: %v", err)
	}

	var loaded records.Collection
	ok, err := store.GetJSON(ctx, key, &loaded)
	if err != nil || !ok {
		t.Fatalf("GetJSON failed: (%v, %v)", ok, err)
	}
	if len(loaded) != len(seed) {
		t.Fatalf("length mismatch: %d != %d", len(loaded), len(seed))
	}
	for i := range seed {
		if loaded[i].ID != seed[i].ID || loaded[i].FileName != seed[i].FileName {
			t.Fatalf("record %d identity mismatch: %+v", i, loaded[i])
		}
		if !loaded[i].UploadDate.Equal(seed[i].UploadDate) {
			t.Fatalf("record %d upload date mismatch", i)
		}
		if !reflect.DeepEqual(loaded[i].Tags, seed[i].Tags) {
			t.Fatalf("record %d tags mismatch: %v != %v", i, loaded[i].Tags, seed[i].Tags)
		}
		if !reflect.DeepEqual(loaded[i].AnalysisResults, seed[i].AnalysisResults) {
			t.Fatalf("record %d analysis results mismatch", i)
		}
		if loaded[i].ProcessingSteps != seed[i].ProcessingSteps {
			t.Fatalf("record %d steps mismatch: %+v != %+v", i, loaded[i].ProcessingSteps, seed[i].ProcessingSteps)
		}
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	store, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Put(ctx, "auth", "persisted"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	value, ok, err := reopened.Get(ctx, "auth")
	if err != nil || !ok || value != "persisted" {
		t.Fatalf("value did not survive reopen: (%q, %v, %v)", value, ok, err)
	}
}

func TestSecondOpenFailsWhileLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_ = testsupport.MustOpenStore(t, cfg)

	if _, err := storage.Open(cfg); !errors.Is(err, storage.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestKeysSorted(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for _, key := range []string{"audioHistory_user_2", "auth", "audioHistory_user_1"} {
		if err := store.Put(ctx, key, "{}"); err != nil {
			t.Fatalf("Put %s failed: %v", key, err)
		}
	}
	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	want := []string{"audioHistory_user_1", "audioHistory_user_2", "auth"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("Keys = %v, want %v", keys, want)
	}
}

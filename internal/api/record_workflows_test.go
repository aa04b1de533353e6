package api

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ecoacustica/internal/config"
	"ecoacustica/internal/records"
	"ecoacustica/internal/services"
	"ecoacustica/internal/testsupport"
)

func loginAdmin(t *testing.T, cfg *config.Config) {
	t.Helper()
	if _, err := Login(context.Background(), LoginRequest{Config: cfg, Email: "admin@ecoacustica.com", Credential: "password123"}); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
}

func TestListRecordsReturnsSeededCollection(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	loginAdmin(t, cfg)
	ctx := context.Background()

	result, err := ListRecords(ctx, ListRecordsRequest{Config: cfg})
	if err != nil {
		t.Fatalf("ListRecords returned error: %v", err)
	}
	if len(result.Records) != 3 {
		t.Fatalf("got %d records, want the 3 seeded samples", len(result.Records))
	}
	if result.User.Email != "admin@ecoacustica.com" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	for i := 1; i < len(result.Records); i++ {
		if result.Records[i-1].UploadDate.Before(result.Records[i].UploadDate) {
			t.Fatal("default order should be newest first")
		}
	}
}

func TestListRecordsAppliesFilter(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	loginAdmin(t, cfg)

	result, err := ListRecords(context.Background(), ListRecordsRequest{
		Config: cfg,
		Query:  QuerySpec{Status: string(records.StatusProcessing)},
	})
	if err != nil {
		t.Fatalf("ListRecords returned error: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d processing records, want 1", len(result.Records))
	}
	if result.Records[0].Status != records.StatusProcessing {
		t.Fatalf("record %s has status %s", result.Records[0].ID, result.Records[0].Status)
	}
}

func TestListRecordsRejectsUnknownSortKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	loginAdmin(t, cfg)

	if _, err := ListRecords(context.Background(), ListRecordsRequest{
		Config: cfg,
		Query:  QuerySpec{SortBy: "duration"},
	}); err == nil {
		t.Fatal("expected error for unknown sort key")
	}
}

func TestTagRecordReplacesTags(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	loginAdmin(t, cfg)
	ctx := context.Background()

	result, err := TagRecord(ctx, TagRecordRequest{Config: cfg, ID: "sample_1", Tags: []string{"nocturno", "nocturno", "  ribera "}})
	if err != nil {
		t.Fatalf("TagRecord returned error: %v", err)
	}
	if len(result.Record.Tags) != 2 || result.Record.Tags[0] != "nocturno" || result.Record.Tags[1] != "ribera" {
		t.Fatalf("tags = %v", result.Record.Tags)
	}

	shown, err := ShowRecord(ctx, ShowRecordRequest{Config: cfg, ID: "sample_1"})
	if err != nil {
		t.Fatalf("ShowRecord returned error: %v", err)
	}
	if len(shown.Record.Tags) != 2 {
		t.Fatalf("persisted tags = %v", shown.Record.Tags)
	}
}

func TestAnnotateRecordMissingID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	loginAdmin(t, cfg)

	_, err := AnnotateRecord(context.Background(), AnnotateRecordRequest{Config: cfg, ID: "audio_missing", Notes: "x"})
	if !errors.Is(err, services.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDeleteRecordReportsOutcome(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	loginAdmin(t, cfg)
	ctx := context.Background()

	result, err := DeleteRecord(ctx, DeleteRecordRequest{Config: cfg, ID: "sample_2"})
	if err != nil {
		t.Fatalf("DeleteRecord returned error: %v", err)
	}
	if !result.Deleted {
		t.Fatal("expected Deleted true for an existing record")
	}

	again, err := DeleteRecord(ctx, DeleteRecordRequest{Config: cfg, ID: "sample_2"})
	if err != nil {
		t.Fatalf("second DeleteRecord returned error: %v", err)
	}
	if again.Deleted {
		t.Fatal("expected Deleted false for an absent record")
	}

	list, err := ListRecords(ctx, ListRecordsRequest{Config: cfg})
	if err != nil {
		t.Fatalf("ListRecords returned error: %v", err)
	}
	if len(list.Records) != 2 {
		t.Fatalf("got %d records after delete, want 2", len(list.Records))
	}
}

func TestExportRecordsWritesFilteredJSON(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	loginAdmin(t, cfg)

	path := filepath.Join(t.TempDir(), "out.json")
	result, err := ExportRecords(context.Background(), ExportRecordsRequest{
		Config: cfg,
		Path:   path,
		Query:  QuerySpec{Status: string(records.StatusCompleted)},
	})
	if err != nil {
		t.Fatalf("ExportRecords returned error: %v", err)
	}
	if result.Count != 2 {
		t.Fatalf("exported %d records, want 2", result.Count)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	var decoded records.Collection
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("file holds %d records, want 2", len(decoded))
	}
}

func TestCollectionStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	loginAdmin(t, cfg)

	result, err := CollectionStats(context.Background(), CollectionStatsRequest{Config: cfg})
	if err != nil {
		t.Fatalf("CollectionStats returned error: %v", err)
	}
	if result.Stats.Total != 3 || result.Stats.Completed != 2 || result.Stats.Processing != 1 {
		t.Fatalf("stats = %+v", result.Stats)
	}
}

func TestRecordWorkflowsRequireSession(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	_, err := ListRecords(context.Background(), ListRecordsRequest{Config: cfg})
	if !errors.Is(err, services.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

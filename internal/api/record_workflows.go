package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ecoacustica/internal/config"
	"ecoacustica/internal/export"
	"ecoacustica/internal/history"
	"ecoacustica/internal/query"
	"ecoacustica/internal/records"
	"ecoacustica/internal/services"
	"ecoacustica/internal/session"
)

// QuerySpec carries the user-facing filter and sort flags before parsing.
type QuerySpec struct {
	Search string
	Status string
	SortBy string
	Order  string
}

func (q QuerySpec) parse() (query.Options, error) {
	sortBy, ok := query.ParseSortKey(q.SortBy)
	if !ok {
		return query.Options{}, fmt.Errorf("unknown sort key %q (expected date, name, or size)", q.SortBy)
	}
	order, ok := query.ParseDirection(q.Order)
	if !ok {
		return query.Options{}, fmt.Errorf("unknown sort order %q (expected asc or desc)", q.Order)
	}
	status := q.Status
	if status == "" {
		status = query.StatusAll
	}
	if status != query.StatusAll {
		parsed, ok := records.ParseStatus(status)
		if !ok {
			return query.Options{}, fmt.Errorf("unknown status %q (expected all, processing, completed, or error)", q.Status)
		}
		status = string(parsed)
	}
	return query.Options{Search: q.Search, Status: status, SortBy: sortBy, Order: order}, nil
}

type ListRecordsRequest struct {
	Config *config.Config
	Logger *slog.Logger
	Query  QuerySpec
}

type ListRecordsResult struct {
	User    session.Identity
	Records records.Collection
}

// ListRecords returns the active identity's collection after filtering and
// sorting.
func ListRecords(ctx context.Context, req ListRecordsRequest) (ListRecordsResult, error) {
	opts, err := req.Query.parse()
	if err != nil {
		return ListRecordsResult{}, err
	}

	env, err := openEnvironment(req.Config, req.Logger)
	if err != nil {
		return ListRecordsResult{}, err
	}
	defer env.Close()

	if err := env.restore(ctx); err != nil {
		return ListRecordsResult{}, err
	}
	collection, err := env.history.List(ctx)
	if err != nil {
		return ListRecordsResult{}, err
	}
	user, _ := env.sessions.Active()
	return ListRecordsResult{User: user, Records: query.Apply(collection, opts)}, nil
}

type ShowRecordRequest struct {
	Config *config.Config
	Logger *slog.Logger
	ID     string
}

type ShowRecordResult struct {
	Record records.AudioRecord
}

func ShowRecord(ctx context.Context, req ShowRecordRequest) (ShowRecordResult, error) {
	env, err := openEnvironment(req.Config, req.Logger)
	if err != nil {
		return ShowRecordResult{}, err
	}
	defer env.Close()

	if err := env.restore(ctx); err != nil {
		return ShowRecordResult{}, err
	}
	record, err := env.history.Get(ctx, req.ID)
	if err != nil {
		return ShowRecordResult{}, err
	}
	return ShowRecordResult{Record: record}, nil
}

type TagRecordRequest struct {
	Config *config.Config
	Logger *slog.Logger
	ID     string
	Tags   []string
}

type TagRecordResult struct {
	Record records.AudioRecord
}

// TagRecord replaces the record's tag list.
func TagRecord(ctx context.Context, req TagRecordRequest) (TagRecordResult, error) {
	env, err := openEnvironment(req.Config, req.Logger)
	if err != nil {
		return TagRecordResult{}, err
	}
	defer env.Close()

	if err := env.restore(ctx); err != nil {
		return TagRecordResult{}, err
	}
	if _, err := env.history.Get(ctx, req.ID); err != nil {
		return TagRecordResult{}, err
	}
	tags := records.NormalizeTags(req.Tags)
	if err := env.history.Update(ctx, req.ID, history.Patch{Tags: &tags}); err != nil {
		return TagRecordResult{}, err
	}
	record, err := env.history.Get(ctx, req.ID)
	if err != nil {
		return TagRecordResult{}, err
	}
	return TagRecordResult{Record: record}, nil
}

type AnnotateRecordRequest struct {
	Config *config.Config
	Logger *slog.Logger
	ID     string
	Notes  string
}

type AnnotateRecordResult struct {
	Record records.AudioRecord
}

// AnnotateRecord replaces the record's notes.
func AnnotateRecord(ctx context.Context, req AnnotateRecordRequest) (AnnotateRecordResult, error) {
	env, err := openEnvironment(req.Config, req.Logger)
	if err != nil {
		return AnnotateRecordResult{}, err
	}
	defer env.Close()

	if err := env.restore(ctx); err != nil {
		return AnnotateRecordResult{}, err
	}
	if _, err := env.history.Get(ctx, req.ID); err != nil {
		return AnnotateRecordResult{}, err
	}
	notes := req.Notes
	if err := env.history.Update(ctx, req.ID, history.Patch{Notes: &notes}); err != nil {
		return AnnotateRecordResult{}, err
	}
	record, err := env.history.Get(ctx, req.ID)
	if err != nil {
		return AnnotateRecordResult{}, err
	}
	return AnnotateRecordResult{Record: record}, nil
}

type DeleteRecordRequest struct {
	Config *config.Config
	Logger *slog.Logger
	ID     string
}

type DeleteRecordResult struct {
	Deleted bool
}

// DeleteRecord removes the record from the collection. Deleting an absent ID
// reports Deleted false rather than an error.
func DeleteRecord(ctx context.Context, req DeleteRecordRequest) (DeleteRecordResult, error) {
	env, err := openEnvironment(req.Config, req.Logger)
	if err != nil {
		return DeleteRecordResult{}, err
	}
	defer env.Close()

	if err := env.restore(ctx); err != nil {
		return DeleteRecordResult{}, err
	}
	if _, err := env.history.Get(ctx, req.ID); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return DeleteRecordResult{Deleted: false}, nil
		}
		return DeleteRecordResult{}, err
	}
	if err := env.history.Delete(ctx, req.ID); err != nil {
		return DeleteRecordResult{}, err
	}
	return DeleteRecordResult{Deleted: true}, nil
}

type ExportRecordsRequest struct {
	Config *config.Config
	Logger *slog.Logger
	Path   string
	Query  QuerySpec
}

type ExportRecordsResult struct {
	Path  string
	Count int
}

// ExportRecords writes the filtered collection to a JSON file. An empty path
// defaults to a date-stamped file name in the working directory.
func ExportRecords(ctx context.Context, req ExportRecordsRequest) (ExportRecordsResult, error) {
	opts, err := req.Query.parse()
	if err != nil {
		return ExportRecordsResult{}, err
	}

	env, err := openEnvironment(req.Config, req.Logger)
	if err != nil {
		return ExportRecordsResult{}, err
	}
	defer env.Close()

	if err := env.restore(ctx); err != nil {
		return ExportRecordsResult{}, err
	}
	collection, err := env.history.List(ctx)
	if err != nil {
		return ExportRecordsResult{}, err
	}
	filtered := query.Apply(collection, opts)

	path := req.Path
	if path == "" {
		path = export.DefaultFileName(time.Now())
	}
	if err := export.ToFile(path, filtered); err != nil {
		return ExportRecordsResult{}, err
	}
	return ExportRecordsResult{Path: path, Count: len(filtered)}, nil
}

type CollectionStatsRequest struct {
	Config *config.Config
	Logger *slog.Logger
}

type CollectionStatsResult struct {
	User  session.Identity
	Stats history.Stats
}

// CollectionStats summarizes the active identity's collection.
func CollectionStats(ctx context.Context, req CollectionStatsRequest) (CollectionStatsResult, error) {
	env, err := openEnvironment(req.Config, req.Logger)
	if err != nil {
		return CollectionStatsResult{}, err
	}
	defer env.Close()

	if err := env.restore(ctx); err != nil {
		return CollectionStatsResult{}, err
	}
	stats, err := env.history.Stats(ctx)
	if err != nil {
		return CollectionStatsResult{}, err
	}
	user, _ := env.sessions.Active()
	return CollectionStatsResult{User: user, Stats: stats}, nil
}

package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ecoacustica/internal/config"
	"ecoacustica/internal/pipeline"
	"ecoacustica/internal/records"
	"ecoacustica/internal/services"
)

type SubmitRecordingRequest struct {
	Config    *config.Config
	Logger    *slog.Logger
	Path      string
	MediaType string
	Mode      string
	Duration  float64
	Tags      []string
	Notes     string
	Latitude  *float64
	Longitude *float64
	// Progress, when set, receives periodic engine snapshots while the
	// submission is processed, plus one final snapshot.
	Progress func(pipeline.Snapshot)
}

type SubmitRecordingResult struct {
	RecordID string
	Record   records.AudioRecord
}

// SubmitRecording runs one file through the full processing pipeline and
// blocks until it finishes.
func SubmitRecording(ctx context.Context, req SubmitRecordingRequest) (SubmitRecordingResult, error) {
	mode, ok := pipeline.ParseMode(req.Mode)
	if !ok {
		return SubmitRecordingResult{}, fmt.Errorf("unknown mode %q (expected upload or identification)", req.Mode)
	}
	var location *records.Location
	switch {
	case req.Latitude != nil && req.Longitude != nil:
		location = &records.Location{Lat: *req.Latitude, Lng: *req.Longitude}
	case req.Latitude != nil || req.Longitude != nil:
		return SubmitRecordingResult{}, fmt.Errorf("latitude and longitude must be supplied together")
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		return SubmitRecordingResult{}, fmt.Errorf("stat submission: %w", err)
	}
	if info.IsDir() {
		return SubmitRecordingResult{}, fmt.Errorf("submission path %q is a directory", req.Path)
	}

	env, err := openEnvironment(req.Config, req.Logger)
	if err != nil {
		return SubmitRecordingResult{}, err
	}
	defer env.Close()

	if err := env.restore(ctx); err != nil {
		return SubmitRecordingResult{}, err
	}
	if _, active := env.sessions.Active(); !active {
		return SubmitRecordingResult{}, services.Wrap(services.ErrNoActiveSession, "api", "submit",
			"log in before submitting recordings", nil)
	}

	engine := pipeline.New(req.Config, env.history, req.Logger, pipeline.WithMode(mode))
	recordID, err := engine.Submit(ctx, pipeline.Submission{
		Path:      req.Path,
		FileName:  filepath.Base(req.Path),
		MediaType: req.MediaType,
		Size:      info.Size(),
		Duration:  req.Duration,
		Tags:      req.Tags,
		Notes:     req.Notes,
		Location:  location,
	})
	if err != nil {
		return SubmitRecordingResult{}, err
	}

	ticker := time.NewTicker(time.Duration(req.Config.Pipeline.TickIntervalMillis) * time.Millisecond)
	defer ticker.Stop()
poll:
	for {
		select {
		case <-engine.Done():
			break poll
		case <-ticker.C:
			if req.Progress != nil {
				req.Progress(engine.Snapshot())
			}
		case <-ctx.Done():
			engine.Cancel()
			return SubmitRecordingResult{}, ctx.Err()
		}
	}
	if req.Progress != nil {
		req.Progress(engine.Snapshot())
	}
	if err := engine.Wait(ctx); err != nil {
		return SubmitRecordingResult{}, err
	}

	record, err := env.history.Get(ctx, recordID)
	if err != nil {
		return SubmitRecordingResult{}, err
	}
	return SubmitRecordingResult{RecordID: recordID, Record: record}, nil
}

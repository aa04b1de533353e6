package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ecoacustica/internal/analysis"
	"ecoacustica/internal/config"
	"ecoacustica/internal/fileutil"
	"ecoacustica/internal/geolocation"
	"ecoacustica/internal/history"
	"ecoacustica/internal/logging"
	"ecoacustica/internal/records"
	"ecoacustica/internal/services"
)

// ErrBusy is returned when Submit is called while a submission is in flight.
// The in-flight run is never cancelled implicitly; callers must Cancel first.
var ErrBusy = errors.New("a submission is already being processed")

// Submission carries an accepted file plus optional user-supplied metadata.
type Submission struct {
	Path      string
	FileName  string
	MediaType string
	Size      int64
	Duration  float64
	Tags      []string
	Notes     string
	Location  *records.Location
}

// Snapshot is a point-in-time view of the engine for progress display.
type Snapshot struct {
	State    State
	Progress float64
	Steps    records.ProcessingSteps
	RecordID string
	FileName string
	Err      error
}

// Option configures optional Pipeline behavior.
type Option func(*Pipeline)

// WithMode selects which media types Submit accepts.
func WithMode(mode Mode) Option {
	return func(p *Pipeline) { p.mode = mode }
}

// WithIdentifier overrides the species identifier.
func WithIdentifier(identifier analysis.Identifier) Option {
	return func(p *Pipeline) {
		if identifier != nil {
			p.identifier = identifier
		}
	}
}

// WithGeolocation overrides the location enrichment provider.
func WithGeolocation(provider geolocation.Provider) Option {
	return func(p *Pipeline) {
		if provider != nil {
			p.geo = provider
		}
	}
}

// Pipeline is the staged-processing engine. One instance drives one
// submission at a time.
type Pipeline struct {
	cfg        *config.Config
	store      *history.Store
	identifier analysis.Identifier
	geo        geolocation.Provider
	logger     *slog.Logger
	mode       Mode

	mu         sync.Mutex
	state      State
	progress   float64
	steps      records.ProcessingSteps
	recordID   string
	fileName   string
	runErr     error
	stagedPath string
	completing bool
	cancelRun  context.CancelFunc
	done       chan struct{}
}

// New constructs a pipeline that hands finished records to the given store.
func New(cfg *config.Config, store *history.Store, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Pipeline{
		cfg:        cfg,
		store:      store,
		identifier: analysis.NewCatalogIdentifier(),
		geo:        geolocation.Nop{},
		logger:     logging.WithComponent(logger, "pipeline"),
		mode:       ModeUpload,
		state:      StateIdle,
	}
	if cfg.Geolocation.Enabled {
		p.geo = geolocation.NewStaticProvider(time.Duration(cfg.Geolocation.CacheTTLSeconds) * time.Second)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit validates the submission, stages the payload, and starts processing.
// It returns the new record's ID immediately; completion arrives as a state
// change observable through Snapshot, Done, and Wait. Rejections leave the
// engine exactly as it was.
func (p *Pipeline) Submit(ctx context.Context, sub Submission) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if sub.FileName == "" && sub.Path != "" {
		sub.FileName = filepath.Base(sub.Path)
	}
	if sub.MediaType == "" {
		sub.MediaType = DetectMediaType(sub.FileName)
	}
	if sub.Size == 0 && sub.Path != "" {
		info, err := os.Stat(sub.Path)
		if err != nil {
			return "", fmt.Errorf("stat submission: %w", err)
		}
		sub.Size = info.Size()
	}

	if err := validateSubmission(p.mode, sub); err != nil {
		return "", err
	}

	id := "audio_" + uuid.NewString()

	p.mu.Lock()
	if p.state.Active() {
		p.mu.Unlock()
		return "", ErrBusy
	}
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	runCtx = services.WithRecordID(runCtx, id)
	p.state = StateUploading
	p.progress = 0
	p.steps = records.ProcessingSteps{}
	p.recordID = id
	p.fileName = sub.FileName
	p.runErr = nil
	p.completing = false
	p.cancelRun = cancel
	p.done = make(chan struct{})
	p.mu.Unlock()

	staged, err := p.stage(id, sub)
	if err != nil {
		p.abortStaging(id)
		cancel()
		return "", fmt.Errorf("stage submission: %w", err)
	}

	p.mu.Lock()
	p.stagedPath = staged
	p.mu.Unlock()

	p.logger.Info("submission accepted",
		logging.String("record", id),
		logging.String("fileName", sub.FileName),
		logging.Int64("size", sub.Size))

	go p.run(runCtx, id, sub)
	return id, nil
}

// abortStaging rolls the engine back after a staging failure. Cancel may have
// already torn the run down while the payload was copying, in which case the
// state is no longer active and done is already closed.
func (p *Pipeline) abortStaging(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.recordID != id || !p.state.Active() {
		return
	}
	p.state = StateIdle
	p.recordID = ""
	p.fileName = ""
	p.cancelRun = nil
	close(p.done)
}

// Cancel discards the in-flight submission, releasing the staged payload and
// resetting progress. Cancelling twice, or after natural completion, is a
// no-op.
func (p *Pipeline) Cancel() {
	p.mu.Lock()
	if p.completing || !p.state.Active() {
		p.mu.Unlock()
		return
	}
	cancel := p.cancelRun
	staged := p.stagedPath
	recordID := p.recordID
	p.state = StateCancelled
	p.progress = 0
	p.steps = records.ProcessingSteps{}
	p.stagedPath = ""
	p.cancelRun = nil
	close(p.done)
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	fileutil.RemoveQuiet(staged)
	p.logger.Info("submission cancelled", logging.String("record", recordID))
}

// Snapshot returns the current engine state for progress display.
func (p *Pipeline) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		State:    p.state,
		Progress: p.progress,
		Steps:    p.steps,
		RecordID: p.recordID,
		FileName: p.fileName,
		Err:      p.runErr,
	}
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Done returns a channel closed when the current run reaches a terminal
// state. With no run in flight the returned channel is already closed.
func (p *Pipeline) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done == nil {
		return closedChan
	}
	return p.done
}

// Wait blocks until the current run terminates or ctx expires, returning the
// run error if the pipeline failed.
func (p *Pipeline) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.Done():
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runErr
}

func (p *Pipeline) stage(id string, sub Submission) (string, error) {
	if sub.Path == "" {
		return "", nil
	}
	if err := os.MkdirAll(p.cfg.Paths.StagingDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure staging dir: %w", err)
	}
	staged := filepath.Join(p.cfg.Paths.StagingDir, id+strings.ToLower(filepath.Ext(sub.FileName)))
	if err := fileutil.CopyFileVerified(sub.Path, staged); err != nil {
		return "", err
	}
	return staged, nil
}

func (p *Pipeline) run(ctx context.Context, id string, sub Submission) {
	interval := time.Duration(p.cfg.Pipeline.TickIntervalMillis) * time.Millisecond
	step := p.cfg.Pipeline.StepPercent

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		p.mu.Lock()
		if p.recordID != id || !p.state.Active() {
			p.mu.Unlock()
			return
		}
		previous := p.state
		p.progress += step
		if p.progress > completeBoundary {
			p.progress = completeBoundary
		}
		p.steps.Merge(stepsFor(p.progress))
		p.state = stageFor(p.progress)
		entered := p.state
		complete := p.progress >= completeBoundary
		if complete {
			p.completing = true
		}
		p.mu.Unlock()

		if entered != previous {
			ctx = services.WithStage(ctx, string(entered))
			p.logger.Debug("stage advanced",
				logging.String("record", id),
				logging.String("stage", string(entered)))
		}
		if complete {
			p.finish(ctx, id, sub)
			return
		}
	}
}

// runAttrs widens log attrs with the record and stage annotated on the run
// context, keeping warnings from enrichment hooks traceable to the run.
func runAttrs(ctx context.Context, attrs ...any) []any {
	if id, ok := services.RecordIDFromContext(ctx); ok {
		attrs = append(attrs, logging.String("record", id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		attrs = append(attrs, logging.String("stage", stage))
	}
	return attrs
}

// finish assembles the completed record and hands it to the record store.
func (p *Pipeline) finish(ctx context.Context, id string, sub Submission) {
	location := sub.Location
	if location != nil {
		resolved, err := p.geo.Resolve(ctx, location.Lat, location.Lng)
		if err == nil {
			location = &resolved
		} else {
			p.logger.Warn("location enrichment failed", runAttrs(ctx, logging.Error(err))...)
		}
	}

	results, err := p.identifier.Identify(ctx, sub.FileName)
	if err != nil {
		p.logger.Warn("identification failed", runAttrs(ctx, logging.Error(err))...)
		results = []records.AnalysisResult{}
	}

	p.mu.Lock()
	staged := p.stagedPath
	p.stagedPath = ""
	p.mu.Unlock()

	audioURL := staged
	if staged != "" {
		final := filepath.Join(p.cfg.Paths.DataDir, "uploads", filepath.Base(staged))
		if err := os.MkdirAll(filepath.Dir(final), 0o755); err == nil {
			if err := os.Rename(staged, final); err == nil {
				audioURL = final
			}
		}
	}

	record := records.AudioRecord{
		ID:              id,
		FileName:        sub.FileName,
		UploadDate:      time.Now().UTC().Truncate(time.Second),
		SpectrogramURL:  analysis.PlaceholderSpectrogramURL,
		AudioURL:        audioURL,
		FileSize:        sub.Size,
		Duration:        sub.Duration,
		Location:        location,
		AnalysisResults: results,
		Tags:            records.NormalizeTags(sub.Tags),
		Notes:           sub.Notes,
		Status:          records.StatusCompleted,
		ProcessingSteps: records.ProcessingSteps{Upload: true, Spectrogram: true, Analysis: true, Identification: true},
	}

	addErr := p.store.Add(ctx, record)

	p.mu.Lock()
	if addErr != nil {
		p.state = StateFailed
		p.runErr = fmt.Errorf("store finished record: %w", addErr)
	} else {
		p.state = StateDone
	}
	p.cancelRun = nil
	close(p.done)
	p.mu.Unlock()

	if addErr != nil {
		fileutil.RemoveQuiet(audioURL)
		p.logger.Error("pipeline failed", logging.String("record", id), logging.Error(addErr))
		return
	}
	p.logger.Info("analysis completed",
		logging.String("record", id),
		logging.Int("detections", len(record.AnalysisResults)))
}

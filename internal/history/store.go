package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ecoacustica/internal/logging"
	"ecoacustica/internal/records"
	"ecoacustica/internal/services"
	"ecoacustica/internal/session"
	"ecoacustica/internal/storage"
)

// Store exposes CRUD over the active identity's record collection.
type Store struct {
	storage  *storage.Store
	sessions *session.Store
	logger   *slog.Logger
	now      func() time.Time
}

// NewStore constructs a record store bound to the given session store.
func NewStore(kv *storage.Store, sessions *session.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		storage:  kv,
		sessions: sessions,
		logger:   logging.WithComponent(logger, "history"),
		now:      time.Now,
	}
}

// Patch describes a partial record update. Nil fields are left untouched;
// ProcessingSteps merges monotonically so stage flags never revert.
type Patch struct {
	Tags            *[]string
	Notes           *string
	Status          *records.Status
	Duration        *float64
	SpectrogramURL  *string
	Location        *records.Location
	AnalysisResults *[]records.AnalysisResult
	ProcessingSteps *records.ProcessingSteps
}

// Add prepends the record to the active identity's collection and persists it.
func (s *Store) Add(ctx context.Context, record records.AudioRecord) error {
	identity, collection, err := s.load(ctx)
	if err != nil {
		return err
	}

	record.Tags = records.NormalizeTags(record.Tags)
	updated := make(records.Collection, 0, len(collection)+1)
	updated = append(updated, record)
	updated = append(updated, collection...)

	if err := s.persist(ctx, identity.ID, updated); err != nil {
		return err
	}
	s.logger.Info("record added",
		logging.String("record", record.ID),
		logging.String("fileName", record.FileName),
		logging.String("user", identity.ID))
	return nil
}

// Update merges the patch into the record with the given ID. Updating an
// absent ID is a no-op.
func (s *Store) Update(ctx context.Context, id string, patch Patch) error {
	identity, collection, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := collection.IndexOf(id)
	if idx < 0 {
		return nil
	}

	record := &collection[idx]
	if patch.Tags != nil {
		record.Tags = records.NormalizeTags(*patch.Tags)
	}
	if patch.Notes != nil {
		record.Notes = *patch.Notes
	}
	if patch.Status != nil {
		record.Status = *patch.Status
	}
	if patch.Duration != nil {
		record.Duration = *patch.Duration
	}
	if patch.SpectrogramURL != nil {
		record.SpectrogramURL = *patch.SpectrogramURL
	}
	if patch.Location != nil {
		loc := *patch.Location
		record.Location = &loc
	}
	if patch.AnalysisResults != nil {
		record.AnalysisResults = append([]records.AnalysisResult(nil), (*patch.AnalysisResults)...)
	}
	if patch.ProcessingSteps != nil {
		record.ProcessingSteps.Merge(*patch.ProcessingSteps)
	}

	if err := s.persist(ctx, identity.ID, collection); err != nil {
		return err
	}
	s.logger.Debug("record updated", logging.String("record", id), logging.String("user", identity.ID))
	return nil
}

// Delete removes the record with the given ID. Deleting an absent ID is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	identity, collection, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := collection.IndexOf(id)
	if idx < 0 {
		return nil
	}

	updated := append(collection[:idx:idx], collection[idx+1:]...)
	if err := s.persist(ctx, identity.ID, updated); err != nil {
		return err
	}
	s.logger.Info("record deleted", logging.String("record", id), logging.String("user", identity.ID))
	return nil
}

// Get returns the record with the given ID.
func (s *Store) Get(ctx context.Context, id string) (records.AudioRecord, error) {
	_, collection, err := s.load(ctx)
	if err != nil {
		return records.AudioRecord{}, err
	}

	idx := collection.IndexOf(id)
	if idx < 0 {
		return records.AudioRecord{}, services.Wrap(services.ErrRecordNotFound, "history", "get", id, nil)
	}
	return collection[idx].Clone(), nil
}

// List returns the active identity's collection in storage order.
func (s *Store) List(ctx context.Context) (records.Collection, error) {
	_, collection, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return collection.Clone(), nil
}

// Stats summarizes the active identity's collection.
type Stats struct {
	Total        int
	Completed    int
	Processing   int
	Errors       int
	WithLocation int
	TotalBytes   int64
}

// Stats computes collection totals for presentation.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	_, collection, err := s.load(ctx)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	stats.Total = len(collection)
	for _, record := range collection {
		switch record.Status {
		case records.StatusCompleted:
			stats.Completed++
		case records.StatusProcessing:
			stats.Processing++
		case records.StatusError:
			stats.Errors++
		}
		if record.Location != nil {
			stats.WithLocation++
		}
		stats.TotalBytes += record.FileSize
	}
	return stats, nil
}

// load resolves the active identity and its collection, seeding the fixture
// records on the identity's first access.
func (s *Store) load(ctx context.Context) (session.Identity, records.Collection, error) {
	identity, ok := s.sessions.Active()
	if !ok {
		return session.Identity{}, nil, services.Wrap(services.ErrNoActiveSession, "history", "load", "log in before accessing records", nil)
	}

	key := storage.HistoryKey(identity.ID)
	var collection records.Collection
	found, err := s.storage.GetJSON(ctx, key, &collection)
	if err != nil {
		return session.Identity{}, nil, fmt.Errorf("load collection: %w", err)
	}
	if !found {
		collection = records.Seed(s.now())
		if err := s.persist(ctx, identity.ID, collection); err != nil {
			return session.Identity{}, nil, err
		}
		s.logger.Info("seeded new collection",
			logging.String("user", identity.ID),
			logging.Int("records", len(collection)))
	}
	return identity, collection, nil
}

func (s *Store) persist(ctx context.Context, identityID string, collection records.Collection) error {
	if err := s.storage.PutJSON(ctx, storage.HistoryKey(identityID), collection); err != nil {
		return fmt.Errorf("persist collection: %w", err)
	}
	return nil
}

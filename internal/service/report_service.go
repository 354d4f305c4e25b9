package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"complaints-service/internal/dataset"
	"complaints-service/internal/model"
	"complaints-service/internal/pivot"
)

// ReportService runs the pivot engine over a freshly loaded dataset and
// memoizes each serialized report for a TTL window. The engine itself stays
// stateless; all cross-call memory lives here, and Invalidate drops it when
// the dataset file changes.
type ReportService struct {
	datasetPath string
	ttl         time.Duration
	log         zerolog.Logger

	now  func() time.Time
	load func(string) ([]model.Complaint, error)

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	records []pivot.Record
	expires time.Time
}

func NewReportService(datasetPath string, ttl time.Duration, log zerolog.Logger) *ReportService {
	return &ReportService{
		datasetPath: datasetPath,
		ttl:         ttl,
		log:         log,
		now:         time.Now,
		load:        dataset.Load,
		cache:       make(map[string]cacheEntry),
	}
}

func (s *ReportService) OpenComplaintPivot(ctx context.Context) ([]pivot.Record, error) {
	return s.report("open_complaint_pivot", func(records []model.Complaint, _ time.Time) *pivot.Table {
		return pivot.OpenComplaintPivot(records)
	})
}

func (s *ReportService) OpenCloseComplaintPivot(ctx context.Context) ([]pivot.Record, error) {
	return s.report("open_close_complaint_pivot", func(records []model.Complaint, _ time.Time) *pivot.Table {
		return pivot.OpenCloseComplaintPivot(records)
	})
}

func (s *ReportService) AgingOpenPivot(ctx context.Context) ([]pivot.Record, error) {
	return s.report("agging_open_pivot_dict", pivot.AgingOpenPivot)
}

func (s *ReportService) AgingOpenClosePivot(ctx context.Context) ([]pivot.Record, error) {
	return s.report("agging_open_close_pivot_dict", pivot.AgingOpenClosePivot)
}

func (s *ReportService) AllAgingComplaintReport(ctx context.Context) ([]pivot.Record, error) {
	return s.report("generate_all_agging_complaint_report", pivot.AllAgingComplaintReport)
}

func (s *ReportService) OpenCloseComplaintReport(ctx context.Context) ([]pivot.Record, error) {
	return s.report("open_close_complaint_report", func(records []model.Complaint, _ time.Time) *pivot.Table {
		return pivot.OpenCloseComplaintReport(records)
	})
}

// Health reports whether the backing dataset file exists.
func (s *ReportService) Health() model.Health {
	available := dataset.Exists(s.datasetPath)
	status := "healthy"
	if !available {
		status = "degraded"
	}
	return model.Health{
		Status:           status,
		DatasetAvailable: available,
		DatasetPath:      s.datasetPath,
	}
}

// Invalidate drops every cached report. Called when the dataset file is
// replaced, so the next request reloads from disk.
func (s *ReportService) Invalidate() {
	s.mu.Lock()
	s.cache = make(map[string]cacheEntry)
	s.mu.Unlock()
	s.log.Debug().Msg("report cache invalidated")
}

func (s *ReportService) report(key string, build func([]model.Complaint, time.Time) *pivot.Table) ([]pivot.Record, error) {
	now := s.now()

	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && now.Before(entry.expires) {
		s.mu.Unlock()
		return entry.records, nil
	}
	s.mu.Unlock()

	records, err := s.load(s.datasetPath)
	if err != nil {
		return nil, err
	}

	out := build(records, now).Records()

	s.mu.Lock()
	s.cache[key] = cacheEntry{records: out, expires: now.Add(s.ttl)}
	s.mu.Unlock()

	s.log.Debug().Str("report", key).Int("rows", len(out)).Msg("report generated")
	return out, nil
}

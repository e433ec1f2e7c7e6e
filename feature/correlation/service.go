package correlation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"data-correlator/core/cache"
	"data-correlator/core/config"
	"data-correlator/core/contract"
	"data-correlator/core/correlate"
	"data-correlator/core/correlate/presets"
	"data-correlator/core/storage"
	"data-correlator/feature/people"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	errDatabaseDisabled = errors.New("database is not configured")
	errStorageDisabled  = errors.New("storage is not configured")
)

// Service runs correlations of people record sets.
type Service struct {
	db       *gorm.DB
	client   storage.Client
	bucket   string
	region   string
	cfg      config.Correlation
	registry *presets.Registry[people.Person, people.Person]
	sources  *cache.Cache[[]people.Person]
	logger   *zap.Logger
}

// NewService creates a new correlation service. db and client may be nil
// when the matching source kind is not available.
func NewService(db *gorm.DB, client storage.Client, store storage.Config, cfg config.Correlation, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:       db,
		client:   client,
		bucket:   store.Bucket,
		region:   store.Region,
		cfg:      cfg,
		registry: people.NewRegistry(),
		sources:  cache.New[[]people.Person](time.Duration(cfg.CacheTTLSeconds) * time.Second),
		logger:   logger,
	}
}

// Result is the outcome of one run.
type Result struct {
	RunID      string                      `json:"run_id" yaml:"run_id"`
	Mode       string                      `json:"mode" yaml:"mode"`
	Strategies []string                    `json:"strategies" yaml:"strategies"`
	SizeA      int                         `json:"size_a" yaml:"size_a"`
	SizeB      int                         `json:"size_b" yaml:"size_b"`
	Report     *correlate.Report[any, any] `json:"report" yaml:"report"`
	StoredAs   string                      `json:"stored_as,omitempty" yaml:"stored_as,omitempty"`
}

// SourceInfo describes a loaded source.
type SourceInfo struct {
	Source Source `json:"source" yaml:"source"`
	Count  int    `json:"count" yaml:"count"`
	Cached bool   `json:"cached" yaml:"cached"`
}

// Catalog lists the strategy and reporter names runs may use.
func (s *Service) Catalog() presets.Catalog {
	return s.registry.Catalog()
}

// Run validates req, loads both sides, runs the funnel and classifies the
// result. Nothing is returned unless the whole run succeeds.
func (s *Service) Run(ctx context.Context, req RunRequest) (result *Result, err error) {
	start := time.Now()
	runID := uuid.NewString()
	l := s.logger.With(zap.String("run_id", runID), zap.String("mode", req.Mode))

	// Metrics are labelled with the mode only once it has been validated,
	// caller supplied junk would otherwise open a new series per value.
	modeLabel := modeInvalid
	defer func() {
		outcome := "ok"
		switch {
		case errors.Is(err, contract.ErrConfiguration), errors.Is(err, contract.ErrTypeContract):
			outcome = "invalid"
		case err != nil:
			outcome = "failed"
		}
		runsTotal.WithLabelValues(modeLabel, outcome).Inc()
		runDuration.WithLabelValues(modeLabel).Observe(time.Since(start).Seconds())
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	modeLabel = req.Mode
	f, err := s.funnel(req)
	if err != nil {
		return nil, err
	}
	reportA, reportB, err := s.reporters(req)
	if err != nil {
		return nil, err
	}

	l.Info("Correlation run started", zap.Strings("strategies", req.Strategies), zap.String("a", req.A), zap.String("b", req.B))

	setA, setB, err := s.loadSets(ctx, req)
	if err != nil {
		l.Error("Failed to load sources", zap.Error(err))
		return nil, err
	}

	report, err := correlate.ReportWithReporters(f, setA, setB, reportA, reportB)
	if err != nil {
		l.Error("Correlation run failed", zap.Error(err))
		return nil, err
	}

	observeReport(report.Summary)
	l.Info("Correlation run completed",
		zap.Int("size_a", len(setA)),
		zap.Int("size_b", len(setB)),
		zap.Int("one_to_one", report.Summary.OneToOneCount),
		zap.Int("one_to_many", report.Summary.OneToManyCount),
		zap.Int("no_correlation_a", report.Summary.NoCorrelationACount),
		zap.Int("no_correlation_b", report.Summary.NoCorrelationBCount),
		zap.Duration("duration", time.Since(start)),
	)

	result = &Result{
		RunID:      runID,
		Mode:       req.Mode,
		Strategies: req.Strategies,
		SizeA:      len(setA),
		SizeB:      len(setB),
		Report:     report,
	}

	if req.Store != "" {
		key, err := s.StoreReport(ctx, req.Store, result)
		if err != nil {
			l.Error("Failed to store report", zap.Error(err))
			return nil, err
		}
		result.StoredAs = key
	}
	return result, nil
}

// funnel builds the funnel described by req.
func (s *Service) funnel(req RunRequest) (*correlate.Funnel[people.Person, people.Person], error) {
	var f *correlate.Funnel[people.Person, people.Person]

	switch req.Mode {
	case ModeDeepCorrelation:
		correlators, err := s.registry.Correlators(req.Strategies)
		if err != nil {
			return nil, err
		}
		f = correlate.NewCorrelationFunnel(correlators...)
	case ModeDeepDisambiguation:
		stages, err := s.registry.Stages(req.Strategies)
		if err != nil {
			return nil, err
		}
		f = correlate.NewDisambiguationFunnel(stages...)
	case ModeQuick:
		first, err := s.registry.Correlator(req.Strategies[0])
		if err != nil {
			return nil, err
		}
		rest, err := s.registry.Stages(req.Strategies[1:])
		if err != nil {
			return nil, err
		}
		f = correlate.NewQuickFunnel(first, rest...)
	default:
		return nil, contract.Configuration("mode", "unknown mode %q", req.Mode)
	}

	if req.Continue != "" {
		f = f.WithContinuation(continuation(req.Continue))
	}

	workers := req.Workers
	if workers == 0 {
		workers = s.cfg.Workers
	}
	return f.WithWorkers(workers), nil
}

// reporters resolves both reporters, falling back to the configured default.
func (s *Service) reporters(req RunRequest) (correlate.Reporter[people.Person, any], correlate.Reporter[people.Person, any], error) {
	nameA, nameB := req.ReporterA, req.ReporterB
	if nameA == "" {
		nameA = s.cfg.DefaultReporter
	}
	if nameB == "" {
		nameB = s.cfg.DefaultReporter
	}

	reportA, _, err := s.registry.Reporters(nameA)
	if err != nil {
		return nil, nil, err
	}
	_, reportB, err := s.registry.Reporters(nameB)
	if err != nil {
		return nil, nil, err
	}
	return reportA, reportB, nil
}

// loadSets loads both sides concurrently. Inline records are used as given.
func (s *Service) loadSets(ctx context.Context, req RunRequest) ([]people.Person, []people.Person, error) {
	setA, setB := req.RecordsA, req.RecordsB

	g, gctx := errgroup.WithContext(ctx)
	if setA == nil {
		g.Go(func() error {
			var err error
			setA, err = s.loadRef(gctx, req.A)
			return err
		})
	}
	if setB == nil {
		g.Go(func() error {
			var err error
			setB, err = s.loadRef(gctx, req.B)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return setA, setB, nil
}

func (s *Service) loadRef(ctx context.Context, ref string) ([]people.Person, error) {
	src, err := ParseSource(ref, s.cfg)
	if err != nil {
		return nil, err
	}
	set, _, err := s.Load(ctx, src)
	return set, err
}

// Load returns the records of src, from the cache when fresh. cached reports
// whether the cache served them.
func (s *Service) Load(ctx context.Context, src Source) (set []people.Person, cached bool, err error) {
	set, cached, err = s.sources.Get(ctx, src.String(), func(ctx context.Context) ([]people.Person, error) {
		switch src.Kind {
		case SourceDB:
			if s.db == nil {
				return nil, errDatabaseDisabled
			}
			if err := people.VerifyTable(s.db, src.Name); err != nil {
				return nil, err
			}
			return people.LoadFromDB(ctx, s.db, src.Name)
		case SourceStorage:
			if s.client == nil {
				return nil, errStorageDisabled
			}
			return people.LoadFromStorage(ctx, s.client, s.bucket, src.Name)
		}
		return nil, contract.Configuration("source", "unknown source kind %q", src.Kind)
	})
	if err != nil {
		return nil, false, fmt.Errorf("source %s: %w", src, err)
	}

	label := "miss"
	if cached {
		label = "hit"
	}
	sourceLoads.WithLabelValues(string(src.Kind), label).Inc()
	s.logger.Debug("Source loaded", zap.Stringer("source", src), zap.Int("count", len(set)), zap.Bool("cached", cached))
	return set, cached, nil
}

// InspectSource loads ref and reports its size.
func (s *Service) InspectSource(ctx context.Context, ref string) (*SourceInfo, error) {
	src, err := ParseSource(ref, s.cfg)
	if err != nil {
		return nil, err
	}
	set, cached, err := s.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return &SourceInfo{Source: src, Count: len(set), Cached: cached}, nil
}

// ListObjects lists the objects under prefix that storage sources can name.
func (s *Service) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	if s.client == nil {
		return nil, errStorageDisabled
	}
	return storage.ListObjectNames(ctx, s.client, s.bucket, prefix)
}

// StoreReport renders v and uploads it below the report prefix. The format
// follows the name's extension. It returns the object key.
func (s *Service) StoreReport(ctx context.Context, name string, v any) (string, error) {
	if s.client == nil {
		return "", errStorageDisabled
	}

	format := FormatFromName(name)
	var buf bytes.Buffer
	if err := Render(&buf, v, format); err != nil {
		return "", err
	}

	if err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region); err != nil {
		return "", err
	}

	key := path.Join(s.cfg.ReportPrefix, name)
	_, err := s.client.PutObject(ctx, s.bucket, key, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: ContentType(format),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", key, err)
	}
	return key, nil
}

func observeReport(s correlate.Summary) {
	bucketElements.WithLabelValues(bucketOneToOne).Add(float64(s.OneToOneCount))
	bucketElements.WithLabelValues(bucketOneToMany).Add(float64(s.OneToManyCount))
	bucketElements.WithLabelValues(bucketNoCorrelationA).Add(float64(s.NoCorrelationACount))
	bucketElements.WithLabelValues(bucketNoCorrelationB).Add(float64(s.NoCorrelationBCount))
}

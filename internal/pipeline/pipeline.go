// Package pipeline drives one upload through load, classification, place
// enrichment, rendering and report publishing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/flood-risk-dashboard/internal/domain"
	"github.com/couchcryptid/flood-risk-dashboard/internal/observability"
	"github.com/couchcryptid/flood-risk-dashboard/internal/report"
	"github.com/couchcryptid/flood-risk-dashboard/internal/spreadsheet"
	"github.com/google/uuid"
)

// Upload outcomes, used as metric labels and API error kinds.
const (
	OutcomeRendered       = "rendered"
	OutcomeMissingColumns = "missing_columns"
	OutcomeParseError     = "parse_error"
	OutcomeError          = "error"
)

// ReportPublisher hands a finished upload summary to downstream consumers.
type ReportPublisher interface {
	Publish(ctx context.Context, report domain.RiskReport) error
}

// Upload is one submitted file.
type Upload struct {
	FileName string
	Data     []byte
}

// Options configures the rendered views.
type Options struct {
	Map     report.MapOptions
	Summary report.SummaryOptions

	// GeocodeBudget bounds reverse geocoding for one upload. Posts still
	// unnamed when it runs out keep the placeholder. Zero means no bound.
	GeocodeBudget time.Duration
}

// Result is everything rendered for one upload.
type Result struct {
	UploadID    string
	FileName    string
	Posts       []domain.Post
	Map         report.MapView
	Summary     report.Summary
	ProcessedAt time.Time

	// Warning is set when the upload rendered but has nothing to draw on the
	// map. It is a *domain.EmptyResultError.
	Warning error
}

// Pipeline processes uploads. It is safe for concurrent use.
type Pipeline struct {
	geocoder  domain.Geocoder
	publisher ReportPublisher
	opts      Options
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool

	templateOnce sync.Once
	template     []byte
	templateErr  error
}

// New creates a Pipeline. Pass a nil geocoder to skip place enrichment and a
// nil publisher to skip report publishing.
func New(geocoder domain.Geocoder, publisher ReportPublisher, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		geocoder:  geocoder,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once the example template has been built,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("example template has not been built yet")
	}
	return nil
}

// Template returns the example workbook, building it on first use.
func (p *Pipeline) Template() ([]byte, error) {
	p.templateOnce.Do(func() {
		p.template, p.templateErr = spreadsheet.ExampleWorkbook()
		if p.templateErr != nil {
			p.logger.Error("build example template failed", "error", p.templateErr)
			return
		}
		p.ready.Store(true)
	})
	return p.template, p.templateErr
}

// Process runs one upload end to end. Loader failures are returned as
// *domain.ParseError or *domain.MissingColumnError. An upload without any
// mappable row still succeeds, with Result.Warning set.
func (p *Pipeline) Process(ctx context.Context, u Upload) (*Result, error) {
	start := time.Now()
	uploadID := uuid.NewString()
	logger := p.logger.With("upload_id", uploadID, "file", u.FileName)

	table, err := spreadsheet.Load(u.FileName, u.Data)
	if err != nil {
		return nil, p.fail(logger, err)
	}
	if err := table.Validate(); err != nil {
		return nil, p.fail(logger, err)
	}

	posts := domain.Classify(table.Posts())
	posts = p.enrich(ctx, logger, posts)

	res := &Result{
		UploadID: uploadID,
		FileName: u.FileName,
		Posts:    posts,
	}

	res.Map, err = report.BuildMap(posts, p.opts.Map)
	if err != nil {
		var empty *domain.EmptyResultError
		if !errors.As(err, &empty) {
			return nil, p.fail(logger, fmt.Errorf("build map: %w", err))
		}
		logger.Warn("no mappable rows", "rows", len(posts))
		p.metrics.EmptyMaps.Inc()
		res.Warning = err
	}
	res.Summary = report.BuildSummary(posts, p.opts.Summary)
	res.ProcessedAt = domain.Now()

	p.publish(ctx, logger, res)
	p.record(res, time.Since(start))

	logger.Info("upload rendered",
		"rows", len(posts),
		"markers", len(res.Map.Markers),
		"duration", time.Since(start),
	)
	return res, nil
}

// Report converts a result into the event published downstream.
func (r *Result) Report() domain.RiskReport {
	counts := make(map[domain.RiskLevel]int, len(r.Summary.Counts))
	for _, c := range r.Summary.Counts {
		counts[c.Level] = c.Count
	}
	severe := make([]string, 0, len(r.Summary.MostSevere))
	for _, s := range r.Summary.MostSevere {
		severe = append(severe, s.Preview)
	}
	return domain.RiskReport{
		UploadID:    r.UploadID,
		FileName:    r.FileName,
		TotalRows:   r.Summary.TotalRows,
		MappedRows:  r.Summary.MappedRows,
		RiskCounts:  counts,
		CenterLat:   r.Map.CenterLat,
		CenterLon:   r.Map.CenterLon,
		MostSevere:  severe,
		ProcessedAt: r.ProcessedAt,
	}
}

// Outcome classifies a Process error for metrics and API responses.
func Outcome(err error) string {
	var missing *domain.MissingColumnError
	var parse *domain.ParseError
	switch {
	case err == nil:
		return OutcomeRendered
	case errors.As(err, &missing):
		return OutcomeMissingColumns
	case errors.As(err, &parse):
		return OutcomeParseError
	default:
		return OutcomeError
	}
}

func (p *Pipeline) fail(logger *slog.Logger, err error) error {
	outcome := Outcome(err)
	p.metrics.Uploads.WithLabelValues(outcome).Inc()
	logger.Warn("upload rejected", "outcome", outcome, "error", err)
	return err
}

// enrich fills in missing place names within the configured geocode budget.
func (p *Pipeline) enrich(ctx context.Context, logger *slog.Logger, posts []domain.Post) []domain.Post {
	if p.geocoder == nil || p.opts.GeocodeBudget <= 0 {
		return domain.EnrichPlaceNames(ctx, posts, p.geocoder, logger)
	}
	enrichCtx, cancel := context.WithTimeout(ctx, p.opts.GeocodeBudget)
	defer cancel()
	posts = domain.EnrichPlaceNames(enrichCtx, posts, p.geocoder, logger)
	if errors.Is(enrichCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		logger.Warn("geocode budget exhausted, remaining posts keep placeholder names", "budget", p.opts.GeocodeBudget)
	}
	return posts
}

// publish never fails the upload; errors are logged and counted.
func (p *Pipeline) publish(ctx context.Context, logger *slog.Logger, res *Result) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, res.Report()); err != nil {
		logger.Error("publish risk report failed", "error", err)
		p.metrics.PublishErrors.Inc()
		return
	}
	p.metrics.ReportsPublished.Inc()
}

func (p *Pipeline) record(res *Result, elapsed time.Duration) {
	p.metrics.Uploads.WithLabelValues(OutcomeRendered).Inc()
	p.metrics.RowsProcessed.Add(float64(len(res.Posts)))
	p.metrics.MarkersRendered.Add(float64(len(res.Map.Markers)))
	for _, c := range res.Summary.Counts {
		p.metrics.PostsByRisk.WithLabelValues(strconv.Itoa(int(c.Level))).Add(float64(c.Count))
	}
	p.metrics.ProcessingTime.Observe(elapsed.Seconds())
}

// Package service provides application-level services that orchestrate domain services and repositories
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/cadetops/internal/application/dto"
	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/internal/domain/repository"
	domainService "github.com/turtacn/cadetops/internal/domain/service"
	"github.com/turtacn/cadetops/pkg/constants"
	"github.com/turtacn/cadetops/pkg/errors"
	"github.com/turtacn/cadetops/pkg/logger"
)

const tracerName = "cadetops-analytics"

// Snapshot sources reported in metrics and logs
const (
	SourceRepository = "repository"
	SourceRequest    = "request"
)

// AnalyticsAppService defines the interface for the analytics application service
type AnalyticsAppService interface {
	// GenerateReport runs a full analytics pass over the repository snapshot
	GenerateReport(ctx context.Context) (*models.AnalyticsReport, error)

	// AnalyzeSnapshot runs a full analytics pass over a caller-supplied snapshot
	AnalyzeSnapshot(ctx context.Context, snap *models.Snapshot) (*models.AnalyticsReport, error)

	// AssessRisk scores every cadet in the repository snapshot
	AssessRisk(ctx context.Context) (*dto.RiskResponse, error)

	// GenerateInsights evaluates the population insight rules
	GenerateInsights(ctx context.Context) (*dto.InsightsResponse, error)

	// ForecastInventory forecasts depletion for every stock item
	ForecastInventory(ctx context.Context) (*dto.ForecastResponse, error)

	// AnalyzeWorkload computes per-staff utilization
	AnalyzeWorkload(ctx context.Context) (*dto.WorkloadResponse, error)

	// AnalyzeCoverage checks experienced-staff coverage of high-risk cadets
	AnalyzeCoverage(ctx context.Context) (*dto.CoverageResponse, error)
}

// AnalyticsOptions tunes the analytics service
type AnalyticsOptions struct {
	// Workers bounds per-record parallelism; values below 1 use the default
	Workers int
	// Clock returns the current time; defaults to time.Now
	Clock func() time.Time
	// Tracer receives the pass spans; defaults to the global provider's tracer
	Tracer trace.Tracer
}

// analyticsAppServiceImpl is the concrete implementation of AnalyticsAppService
type analyticsAppServiceImpl struct {
	snapshots repository.SnapshotRepository
	policies  domainService.PolicyProvider
	metrics   domainService.Metrics
	logger    logger.Logger
	tracer    trace.Tracer
	workers   int
	now       func() time.Time
}

// NewAnalyticsAppService creates a new instance of AnalyticsAppService
func NewAnalyticsAppService(
	snapshots repository.SnapshotRepository,
	policies domainService.PolicyProvider,
	metrics domainService.Metrics,
	log logger.Logger,
	opts AnalyticsOptions,
) AnalyticsAppService {
	if metrics == nil {
		metrics = domainService.NoopMetrics{}
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}
	if opts.Workers < 1 {
		opts.Workers = constants.DefaultAnalyticsWorkers
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(tracerName)
	}
	return &analyticsAppServiceImpl{
		snapshots: snapshots,
		policies:  policies,
		metrics:   metrics,
		logger:    log.WithComponent("analytics"),
		tracer:    opts.Tracer,
		workers:   opts.Workers,
		now:       opts.Clock,
	}
}

// pass is the state of one analytics pass over one normalized snapshot
type pass struct {
	engine  *domainService.Engine
	ns      *models.NormalizedSnapshot
	issues  []models.RecordIssue
	source  string
	started time.Time
}

// GenerateReport implements the full pass over the repository snapshot
func (s *analyticsAppServiceImpl) GenerateReport(ctx context.Context) (*models.AnalyticsReport, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.GenerateReport")
	defer span.End()

	p, err := s.loadPass(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	return s.buildReport(ctx, span, p)
}

// AnalyzeSnapshot implements the full pass over a caller-supplied snapshot
func (s *analyticsAppServiceImpl) AnalyzeSnapshot(ctx context.Context, snap *models.Snapshot) (*models.AnalyticsReport, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.AnalyzeSnapshot")
	defer span.End()

	if snap == nil {
		err := errors.ErrMissingField("snapshot")
		recordSpanError(span, err)
		return nil, err
	}

	// never mutate the caller's snapshot
	local := *snap
	if local.ID == "" {
		local.ID = uuid.NewString()
	}
	if local.CapturedAt.IsZero() {
		local.CapturedAt = s.now().UTC()
	}

	p := s.beginPass(ctx, SourceRequest, &local)
	return s.buildReport(ctx, span, p)
}

// AssessRisk implements AnalyticsAppService
func (s *analyticsAppServiceImpl) AssessRisk(ctx context.Context) (*dto.RiskResponse, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.AssessRisk")
	defer span.End()

	p, err := s.loadPass(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	assessments, err := s.assessRisk(ctx, p)
	if err != nil {
		return nil, s.fail(ctx, span, p, err)
	}

	issues := s.finish(ctx, p, "risk", constants.RecordTypeCadet)
	return &dto.RiskResponse{SnapshotID: p.ns.SnapshotID, Assessments: assessments, Issues: issues}, nil
}

// GenerateInsights implements AnalyticsAppService
func (s *analyticsAppServiceImpl) GenerateInsights(ctx context.Context) (*dto.InsightsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.GenerateInsights")
	defer span.End()

	p, err := s.loadPass(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	report := s.generateInsights(ctx, p)

	issues := s.finish(ctx, p, "insights", constants.RecordTypeCadet)
	return &dto.InsightsResponse{
		SnapshotID:    p.ns.SnapshotID,
		Insights:      report.Insights,
		HighRiskAlert: report.HighRiskAlert,
		Issues:        issues,
	}, nil
}

// ForecastInventory implements AnalyticsAppService
func (s *analyticsAppServiceImpl) ForecastInventory(ctx context.Context) (*dto.ForecastResponse, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.ForecastInventory")
	defer span.End()

	p, err := s.loadPass(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	forecasts, err := s.forecastInventory(ctx, p)
	if err != nil {
		return nil, s.fail(ctx, span, p, err)
	}

	issues := s.finish(ctx, p, "forecast", constants.RecordTypeInventory)
	return &dto.ForecastResponse{SnapshotID: p.ns.SnapshotID, Forecasts: forecasts, Issues: issues}, nil
}

// AnalyzeWorkload implements AnalyticsAppService
func (s *analyticsAppServiceImpl) AnalyzeWorkload(ctx context.Context) (*dto.WorkloadResponse, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.AnalyzeWorkload")
	defer span.End()

	p, err := s.loadPass(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	workloads, err := s.analyzeWorkload(ctx, p)
	if err != nil {
		return nil, s.fail(ctx, span, p, err)
	}

	issues := s.finish(ctx, p, "workload", constants.RecordTypeStaff, constants.RecordTypeSchedule)
	return &dto.WorkloadResponse{SnapshotID: p.ns.SnapshotID, Workloads: workloads, Issues: issues}, nil
}

// AnalyzeCoverage implements AnalyticsAppService
func (s *analyticsAppServiceImpl) AnalyzeCoverage(ctx context.Context) (*dto.CoverageResponse, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.AnalyzeCoverage")
	defer span.End()

	p, err := s.loadPass(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	// average utilization needs the workload records
	workloads, err := s.analyzeWorkload(ctx, p)
	if err != nil {
		return nil, s.fail(ctx, span, p, err)
	}
	coverage := s.analyzeCoverage(ctx, p, workloads)

	issues := s.finish(ctx, p, "coverage", constants.RecordTypeCadet, constants.RecordTypeStaff, constants.RecordTypeSchedule)
	return &dto.CoverageResponse{SnapshotID: p.ns.SnapshotID, Coverage: coverage, Issues: issues}, nil
}

// ================================================================================
// Pass lifecycle
// ================================================================================

// loadPass acquires the repository snapshot with a single read and normalizes it
func (s *analyticsAppServiceImpl) loadPass(ctx context.Context) (*pass, error) {
	started := s.now()
	loadCtx, span := s.tracer.Start(ctx, "snapshot.load")
	snap, err := s.snapshots.LoadSnapshot(loadCtx)
	if err == nil && snap == nil {
		err = errors.ErrSnapshotUnavailable("repository returned no snapshot")
	}
	if err != nil {
		recordSpanError(span, err)
		span.End()
		s.metrics.RecordAnalyticsPass(SourceRepository, "error", s.now().Sub(started))
		s.logger.Error(ctx, "Failed to load snapshot", err)
		if de, ok := errors.AsDomainError(err); ok {
			return nil, de
		}
		return nil, errors.ErrSnapshotUnavailable(err.Error()).WithCause(err)
	}
	span.SetAttributes(attribute.String("snapshot.id", snap.ID))
	span.End()

	p := s.beginPass(ctx, SourceRepository, snap)
	p.started = started
	return p, nil
}

// beginPass normalizes the snapshot under the policy currently in force
func (s *analyticsAppServiceImpl) beginPass(ctx context.Context, source string, snap *models.Snapshot) *pass {
	p := &pass{
		engine:  domainService.NewEngine(s.policies.Current()),
		source:  source,
		started: s.now(),
	}

	_, span := s.tracer.Start(ctx, "analytics.normalize", trace.WithAttributes(
		attribute.String("snapshot.id", snap.ID),
		attribute.Int("cadets", len(snap.Cadets)),
		attribute.Int("staff", len(snap.Staff)),
		attribute.Int("schedule", len(snap.Schedule)),
		attribute.Int("inventory", len(snap.Inventory)),
	))
	p.ns, p.issues = p.engine.Normalizer().NormalizeSnapshot(snap)
	span.SetAttributes(attribute.Int("issues", len(p.issues)))
	span.End()

	for _, issue := range p.issues {
		s.logger.Debug(ctx, "Skipped invalid record", logger.Fields{
			"record_type": issue.RecordType,
			"record_id":   issue.RecordID,
			"code":        issue.Code,
			"message":     issue.Message,
		})
	}
	return p
}

// buildReport runs every phase and assembles the report
func (s *analyticsAppServiceImpl) buildReport(ctx context.Context, span trace.Span, p *pass) (*models.AnalyticsReport, error) {
	// 1. Per-record phases, each fanned out across workers
	assessments, err := s.assessRisk(ctx, p)
	if err != nil {
		return nil, s.fail(ctx, span, p, err)
	}
	forecasts, err := s.forecastInventory(ctx, p)
	if err != nil {
		return nil, s.fail(ctx, span, p, err)
	}
	workloads, err := s.analyzeWorkload(ctx, p)
	if err != nil {
		return nil, s.fail(ctx, span, p, err)
	}

	// 2. Population phases over the same normalized snapshot
	insights := s.generateInsights(ctx, p)
	coverage := s.analyzeCoverage(ctx, p, workloads)

	// 3. Assemble
	report := &models.AnalyticsReport{
		ReportID:        uuid.NewString(),
		SnapshotID:      p.ns.SnapshotID,
		GeneratedAt:     s.now().UTC(),
		RiskAssessments: assessments,
		Insights:        insights.Insights,
		HighRiskAlert:   insights.HighRiskAlert,
		Forecasts:       forecasts,
		Workloads:       workloads,
		Coverage:        coverage,
	}
	report.Issues = s.finish(ctx, p, "report")
	span.SetAttributes(attribute.String("report.id", report.ReportID))
	return report, nil
}

// finish records metrics and logs for a completed pass, and returns the issues of the given
// record types (all issues when none are given)
func (s *analyticsAppServiceImpl) finish(ctx context.Context, p *pass, operation string, types ...constants.RecordType) []models.RecordIssue {
	issues := filterIssues(p.issues, types)
	for _, issue := range issues {
		s.metrics.RecordRecordIssue(issue.RecordType, issue.Code)
	}

	outcome := "success"
	if len(issues) > 0 {
		outcome = "partial"
	}
	duration := s.now().Sub(p.started)
	s.metrics.RecordAnalyticsPass(p.source, outcome, duration)

	fields := logger.Fields{
		"operation":   operation,
		"source":      p.source,
		"snapshot_id": p.ns.SnapshotID,
		"cadets":      len(p.ns.Cadets),
		"staff":       len(p.ns.Staff),
		"inventory":   len(p.ns.Inventory),
		"issues":      len(issues),
		"duration_ms": duration.Milliseconds(),
	}
	if len(issues) > 0 {
		s.logger.Warn(ctx, "Analytics pass completed with skipped records", fields)
	} else {
		s.logger.Info(ctx, "Analytics pass completed", fields)
	}
	return issues
}

func (s *analyticsAppServiceImpl) fail(ctx context.Context, span trace.Span, p *pass, err error) error {
	recordSpanError(span, err)
	s.metrics.RecordAnalyticsPass(p.source, "error", s.now().Sub(p.started))
	s.logger.Error(ctx, "Analytics pass aborted", err, logger.Fields{"snapshot_id": p.ns.SnapshotID})
	if de, ok := errors.AsDomainError(err); ok {
		return de
	}
	return errors.WrapError(err, constants.ErrCodeServerError, "analytics pass aborted")
}

// ================================================================================
// Phases
// ================================================================================

func (s *analyticsAppServiceImpl) assessRisk(ctx context.Context, p *pass) ([]models.RiskAssessment, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.risk")
	defer span.End()

	scorer := p.engine.RiskScorer()
	today := domainService.Today(p.ns)
	out, err := fanOut(ctx, s.workers, p.ns.Cadets, func(c models.Cadet) models.RiskAssessment {
		return scorer.Assess(c, today)
	})
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	for _, a := range out {
		_, applicable := a.Score()
		s.metrics.RecordRiskAssessment(applicable)
	}
	return out, nil
}

type forecastOutcome struct {
	result models.ForecastResult
	err    errors.DomainError
}

func (s *analyticsAppServiceImpl) forecastInventory(ctx context.Context, p *pass) ([]models.ForecastResult, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.forecast")
	defer span.End()

	forecaster := p.engine.InventoryForecaster()
	outcomes, err := fanOut(ctx, s.workers, p.ns.Inventory, func(item models.InventoryItem) forecastOutcome {
		res, ferr := forecaster.Forecast(item)
		return forecastOutcome{result: res, err: ferr}
	})
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	forecasts := make([]models.ForecastResult, 0, len(outcomes))
	for i, o := range outcomes {
		if o.err != nil {
			p.issues = append(p.issues, models.RecordIssue{
				RecordType: constants.RecordTypeInventory,
				RecordID:   p.ns.Inventory[i].ID,
				Code:       o.err.Code(),
				Message:    o.err.Error(),
			})
			continue
		}
		s.metrics.RecordForecastBucket(o.result.ForecastBucket)
		forecasts = append(forecasts, o.result)
	}
	return forecasts, nil
}

func (s *analyticsAppServiceImpl) analyzeWorkload(ctx context.Context, p *pass) ([]models.WorkloadRecord, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.workload")
	defer span.End()

	analyzer := p.engine.WorkloadAnalyzer()
	shifts := p.engine.ShiftsByStaff(p.ns)
	out, err := fanOut(ctx, s.workers, p.ns.Staff, func(m models.StaffMember) models.WorkloadRecord {
		return analyzer.Analyze(m, shifts[m.ID])
	})
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	for _, w := range out {
		s.metrics.RecordBalanceLabel(w.BalanceLabel)
	}
	return out, nil
}

func (s *analyticsAppServiceImpl) generateInsights(ctx context.Context, p *pass) models.InsightReport {
	_, span := s.tracer.Start(ctx, "analytics.insights")
	defer span.End()

	report := p.engine.InsightGenerator().Generate(p.ns.Cadets)
	span.SetAttributes(attribute.Int("insights", len(report.Insights)))
	return report
}

func (s *analyticsAppServiceImpl) analyzeCoverage(ctx context.Context, p *pass, workloads []models.WorkloadRecord) models.CoverageReport {
	_, span := s.tracer.Start(ctx, "analytics.coverage")
	defer span.End()

	report := p.engine.Coverage(p.ns, workloads)
	s.metrics.SetCoverageAdequate(report.CoverageAdequate)
	span.SetAttributes(attribute.Bool("coverage.adequate", report.CoverageAdequate))
	return report
}

// fanOut applies fn to every element with at most workers goroutines. Results keep input order.
func fanOut[T, R any](ctx context.Context, workers int, in []T, fn func(T) R) ([]R, error) {
	out := make([]R, len(in))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range in {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = fn(in[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func filterIssues(issues []models.RecordIssue, types []constants.RecordType) []models.RecordIssue {
	out := make([]models.RecordIssue, 0, len(issues))
	for _, issue := range issues {
		if len(types) == 0 {
			out = append(out, issue)
			continue
		}
		for _, t := range types {
			if issue.RecordType == t {
				out = append(out, issue)
				break
			}
		}
	}
	return out
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

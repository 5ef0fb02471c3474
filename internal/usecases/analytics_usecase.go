package usecases

import (
	"context"
	"strings"
	"time"

	"autoserve.backend/internal/domain/entities"
	"autoserve.backend/internal/domain/repositories"
	"autoserve.backend/pkg/logger"
	"go.uber.org/zap"
)

const anonymousIdentity = "anonymous"

// AnalyticsUsecase records request telemetry and serves the admin usage
// views. Recording is strictly fail-open: a broken analytics store must
// never fail a request that the business logic already served.
type AnalyticsUsecase struct {
	analyticsRepo repositories.AnalyticsRepository
}

// NewAnalyticsUsecase creates a new analytics usecase
func NewAnalyticsUsecase(analyticsRepo repositories.AnalyticsRepository) *AnalyticsUsecase {
	return &AnalyticsUsecase{analyticsRepo: analyticsRepo}
}

// Record persists one completed request: an immutable detail row plus an
// atomic fold into the daily (key, endpoint) summary. Both writes swallow
// their own errors.
func (u *AnalyticsUsecase) Record(ctx context.Context, log *entities.RequestLog) {
	if log.KeyIdentity == "" {
		log.KeyIdentity = anonymousIdentity
	}
	if log.Endpoint == "" {
		log.Endpoint = ResolveEndpoint(log.Path)
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	if err := u.analyticsRepo.CreateRequestLog(ctx, log); err != nil {
		logger.Error(ctx, "failed to write request log",
			zap.String("endpoint", log.Endpoint),
			zap.Error(err))
	}

	success := log.StatusCode >= 200 && log.StatusCode < 300
	err := u.analyticsRepo.RecordRequest(ctx, log.CreatedAt, log.KeyIdentity, log.Endpoint, success, log.ResponseTimeMs)
	if err != nil {
		logger.Error(ctx, "failed to update usage summary",
			zap.String("endpoint", log.Endpoint),
			zap.Error(err))
	}
}

// GetSummary reads one (date, key, endpoint) summary row
func (u *AnalyticsUsecase) GetSummary(ctx context.Context, date time.Time, keyIdentity, endpoint string) (*entities.ApiUsageSummary, error) {
	return u.analyticsRepo.GetSummary(ctx, date, keyIdentity, endpoint)
}

// ListSummaries reads summary rows matching the query
func (u *AnalyticsUsecase) ListSummaries(ctx context.Context, query entities.UsageQuery) ([]*entities.ApiUsageSummary, error) {
	return u.analyticsRepo.ListSummaries(ctx, query)
}

// ResolveEndpoint reduces a request path to its stable endpoint name: the
// version prefix and query string are dropped and only the first path
// segment is kept, so /api/v1/bookings/42?x=1 and /api/v1/bookings both
// aggregate under "bookings".
func ResolveEndpoint(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimPrefix(path, "/api/v1")
	path = strings.Trim(path, "/")
	if path == "" {
		return "root"
	}
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}

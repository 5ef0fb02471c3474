package repositories

import (
	"context"
	"time"

	"autoserve.backend/internal/domain/entities"
)

type AnalyticsRepository interface {
	// CreateRequestLog writes one immutable detail row
	CreateRequestLog(ctx context.Context, log *entities.RequestLog) error
	// RecordRequest folds one completed request into the (date, key, endpoint)
	// summary row with a single atomic upsert. success means 2xx.
	RecordRequest(ctx context.Context, date time.Time, keyIdentity, endpoint string, success bool, elapsedMs int64) error
	// GetSummary reads one summary row
	GetSummary(ctx context.Context, date time.Time, keyIdentity, endpoint string) (*entities.ApiUsageSummary, error)
	// ListSummaries reads summary rows matching the query
	ListSummaries(ctx context.Context, query entities.UsageQuery) ([]*entities.ApiUsageSummary, error)
}

package repositories

import (
	"context"
	"errors"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsRepository implements request log and usage summary persistence
type AnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// CreateRequestLog writes one immutable detail row
func (r *AnalyticsRepository) CreateRequestLog(ctx context.Context, log *entities.RequestLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	m := &models.RequestLog{
		ID:             log.ID,
		KeyIdentity:    log.KeyIdentity,
		Endpoint:       log.Endpoint,
		Method:         log.Method,
		Path:           log.Path,
		StatusCode:     log.StatusCode,
		ResponseTimeMs: log.ResponseTimeMs,
		RequestSize:    log.RequestSize,
		ResponseSize:   log.ResponseSize,
		IPAddress:      log.IPAddress,
		UserAgent:      log.UserAgent,
		Referer:        log.Referer,
		ErrorMessage:   log.ErrorMessage,
		CreatedAt:      log.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// RecordRequest folds one completed request into the (date, key, endpoint)
// summary with a single conditional upsert. The arithmetic happens inside
// the statement, so concurrent requests for the same row serialize at the
// store instead of racing through an application-tier read-modify-write.
func (r *AnalyticsRepository) RecordRequest(ctx context.Context, date time.Time, keyIdentity, endpoint string, success bool, elapsedMs int64) error {
	day := date.UTC().Truncate(24 * time.Hour)

	var successCount, failCount int64
	if success {
		successCount = 1
	} else {
		failCount = 1
	}

	// Seed row used when no summary exists yet for this combination.
	m := &models.ApiUsageSummary{
		ID:                  uuid.New(),
		Date:                day,
		KeyIdentity:         keyIdentity,
		Endpoint:            endpoint,
		TotalRequests:       1,
		SuccessCount:        successCount,
		FailCount:           failCount,
		TotalResponseTimeMs: elapsedMs,
		AvgResponseTimeMs:   float64(elapsedMs),
		MinResponseTimeMs:   elapsedMs,
		MaxResponseTimeMs:   elapsedMs,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}, {Name: "key_identity"}, {Name: "endpoint"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_requests":         gorm.Expr("api_usage_summaries.total_requests + 1"),
			"success_count":          gorm.Expr("api_usage_summaries.success_count + excluded.success_count"),
			"fail_count":             gorm.Expr("api_usage_summaries.fail_count + excluded.fail_count"),
			"total_response_time_ms": gorm.Expr("api_usage_summaries.total_response_time_ms + excluded.total_response_time_ms"),
			"avg_response_time_ms":   gorm.Expr("(api_usage_summaries.total_response_time_ms + excluded.total_response_time_ms) * 1.0 / (api_usage_summaries.total_requests + 1)"),
			"min_response_time_ms":   gorm.Expr("CASE WHEN excluded.min_response_time_ms < api_usage_summaries.min_response_time_ms THEN excluded.min_response_time_ms ELSE api_usage_summaries.min_response_time_ms END"),
			"max_response_time_ms":   gorm.Expr("CASE WHEN excluded.max_response_time_ms > api_usage_summaries.max_response_time_ms THEN excluded.max_response_time_ms ELSE api_usage_summaries.max_response_time_ms END"),
		}),
	}).Create(m).Error
}

// GetSummary reads one summary row
func (r *AnalyticsRepository) GetSummary(ctx context.Context, date time.Time, keyIdentity, endpoint string) (*entities.ApiUsageSummary, error) {
	day := date.UTC().Truncate(24 * time.Hour)

	var m models.ApiUsageSummary
	err := r.db.WithContext(ctx).
		Where("date = ? AND key_identity = ? AND endpoint = ?", day, keyIdentity, endpoint).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return summaryToEntity(&m), nil
}

// ListSummaries reads summary rows matching the query, newest first
func (r *AnalyticsRepository) ListSummaries(ctx context.Context, query entities.UsageQuery) ([]*entities.ApiUsageSummary, error) {
	q := r.db.WithContext(ctx).Model(&models.ApiUsageSummary{}).Order("date DESC, total_requests DESC")

	if !query.From.IsZero() {
		q = q.Where("date >= ?", query.From.UTC().Truncate(24*time.Hour))
	}
	if !query.To.IsZero() {
		q = q.Where("date <= ?", query.To.UTC().Truncate(24*time.Hour))
	}
	if query.KeyIdentity != "" {
		q = q.Where("key_identity = ?", query.KeyIdentity)
	}
	if query.Endpoint != "" {
		q = q.Where("endpoint = ?", query.Endpoint)
	}

	var summaryModels []models.ApiUsageSummary
	if err := q.Find(&summaryModels).Error; err != nil {
		return nil, err
	}

	var summaries []*entities.ApiUsageSummary
	for _, m := range summaryModels {
		model := m
		summaries = append(summaries, summaryToEntity(&model))
	}
	return summaries, nil
}

func summaryToEntity(m *models.ApiUsageSummary) *entities.ApiUsageSummary {
	return &entities.ApiUsageSummary{
		ID:                  m.ID,
		Date:                m.Date,
		KeyIdentity:         m.KeyIdentity,
		Endpoint:            m.Endpoint,
		TotalRequests:       m.TotalRequests,
		SuccessCount:        m.SuccessCount,
		FailCount:           m.FailCount,
		TotalResponseTimeMs: m.TotalResponseTimeMs,
		AvgResponseTimeMs:   m.AvgResponseTimeMs,
		MinResponseTimeMs:   m.MinResponseTimeMs,
		MaxResponseTimeMs:   m.MaxResponseTimeMs,
	}
}

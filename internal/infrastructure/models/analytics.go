package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestLog is one immutable row per completed request.
type RequestLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	KeyIdentity    string    `gorm:"type:varchar(255);not null;index"`
	Endpoint       string    `gorm:"type:varchar(100);not null;index"`
	Method         string    `gorm:"type:varchar(10);not null"`
	Path           string    `gorm:"type:varchar(500);not null"`
	StatusCode     int       `gorm:"not null"`
	ResponseTimeMs int64     `gorm:"not null"`
	RequestSize    int64
	ResponseSize   int64
	IPAddress      string `gorm:"type:varchar(45)"`
	UserAgent      string `gorm:"type:text"`
	Referer        string `gorm:"type:varchar(500)"`
	ErrorMessage   string `gorm:"type:text"`
	CreatedAt      time.Time
}

// ApiUsageSummary holds one aggregate row per (date, key, endpoint),
// updated with a single atomic upsert per request.
type ApiUsageSummary struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Date                time.Time `gorm:"type:date;not null;uniqueIndex:idx_usage_summary_key,priority:1"`
	KeyIdentity         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_usage_summary_key,priority:2"`
	Endpoint            string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_usage_summary_key,priority:3"`
	TotalRequests       int64     `gorm:"not null;default:0"`
	SuccessCount        int64     `gorm:"not null;default:0"`
	FailCount           int64     `gorm:"not null;default:0"`
	TotalResponseTimeMs int64     `gorm:"not null;default:0"`
	AvgResponseTimeMs   float64   `gorm:"not null;default:0"`
	MinResponseTimeMs   int64     `gorm:"not null;default:0"`
	MaxResponseTimeMs   int64     `gorm:"not null;default:0"`
}

func (ApiUsageSummary) TableName() string {
	return "api_usage_summaries"
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// RequestLog is one immutable detail row per completed request
type RequestLog struct {
	ID             uuid.UUID `json:"id"`
	KeyIdentity    string    `json:"keyIdentity"`
	Endpoint       string    `json:"endpoint"`
	Method         string    `json:"method"`
	Path           string    `json:"path"`
	StatusCode     int       `json:"statusCode"`
	ResponseTimeMs int64     `json:"responseTimeMs"`
	RequestSize    int64     `json:"requestSize"`
	ResponseSize   int64     `json:"responseSize"`
	IPAddress      string    `json:"ipAddress"`
	UserAgent      string    `json:"userAgent"`
	Referer        string    `json:"referer"`
	ErrorMessage   string    `json:"errorMessage,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ApiUsageSummary is the rolling aggregate, one row per (date, key, endpoint),
// updated incrementally on every completed request and never deleted.
// SuccessCount + FailCount == TotalRequests holds at all times.
type ApiUsageSummary struct {
	ID                  uuid.UUID `json:"id"`
	Date                time.Time `json:"date"`
	KeyIdentity         string    `json:"keyIdentity"`
	Endpoint            string    `json:"endpoint"`
	TotalRequests       int64     `json:"totalRequests"`
	SuccessCount        int64     `json:"successCount"`
	FailCount           int64     `json:"failCount"`
	TotalResponseTimeMs int64     `json:"totalResponseTimeMs"`
	AvgResponseTimeMs   float64   `json:"avgResponseTimeMs"`
	MinResponseTimeMs   int64     `json:"minResponseTimeMs"`
	MaxResponseTimeMs   int64     `json:"maxResponseTimeMs"`
}

// UsageQuery filters summary reads for the admin analytics endpoints
type UsageQuery struct {
	From        time.Time
	To          time.Time
	KeyIdentity string
	Endpoint    string
}

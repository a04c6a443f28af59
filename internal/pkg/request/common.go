package request

import (
	"strings"
	"time"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/apperror"
)

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListParams holds the shared pagination and sorting query parameters.
type ListParams struct {
	Page      int    `form:"page,default=1" binding:"min=1"`
	Limit     int    `form:"limit,default=10" binding:"min=1,max=100"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Direction returns the SQL sort direction for SortOrder, defaulting to DESC.
func (p ListParams) Direction() string {
	if strings.EqualFold(p.SortOrder, "asc") {
		return "ASC"
	}
	return "DESC"
}

// ErrInvalidDate is returned when a date query parameter is not ISO-8601.
var ErrInvalidDate = apperror.BadRequest("date must be an ISO-8601 timestamp, e.g. 2025-10-01T00:00:00Z")

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 date or timestamp. Values without a zone are read as UTC.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

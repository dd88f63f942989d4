package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned by lookups for absent rows so callers can map it
// to a client-facing 404 instead of a generic failure.
var ErrNotFound = errors.New("not found")

type CostRow struct {
	ID         string
	Cloud      string
	Account    string
	Product    string
	ResourceID string
	Owner      string
	Date       time.Time
	AmountUSD  float64
}

type UtilRow struct {
	ID         string
	ResourceID string
	Metric     string
	HourTS     time.Time
	P50        float64
	P95        float64
}

type ResourceRow struct {
	ResourceID   string
	Cloud        string
	Type         string
	Name         string
	State        string
	Account      string
	Region       string
	InstanceType string
	Tags         map[string]string
}

type DailyTotal struct {
	Date     time.Time
	TotalUSD float64
}

type ProductTotal struct {
	Product  string
	TotalUSD float64
}

type ProductDaily struct {
	Product  string
	Date     time.Time
	TotalUSD float64
}

package domain

import "time"

// CostRecord is one observed day of spend for an (account, product,
// resource) combination. Records are append-only; a day is never upserted.
type CostRecord struct {
	Cloud      string
	Account    string
	Product    string
	ResourceID string // empty when the spend is not attributable to a resource
	Owner      string
	Date       time.Time // calendar day, UTC midnight
	AmountUSD  float64
}

// UtilSample is an hourly utilization observation. P50 <= P95 is expected
// from well-behaved collectors but never enforced here.
type UtilSample struct {
	ResourceID string
	Metric     string
	Hour       time.Time
	P50        float64
	P95        float64
}

// Metric vocabulary used by UtilSample.
const (
	MetricCPU    = "cpu"
	MetricGPU    = "gpu"
	MetricNetIn  = "net_in"
	MetricELBReq = "elb_req"
)

type Resource struct {
	ResourceID   string
	Cloud        string
	Type         ResourceType
	Name         string
	State        string
	Account      string
	Region       string
	InstanceType string
	Tags         map[string]string
}

// Resource states the detectors key on. State itself is free-form text
// coming from the provider.
const (
	StateRunning   = "running"
	StateAvailable = "available"
	StateActive    = "active"
)

type ResourceDetail struct {
	Resource    Resource
	CostHistory []CostRecord
	Utilization []UtilSample
}

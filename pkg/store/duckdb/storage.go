package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const CostDailySchema = `
	CREATE TABLE IF NOT EXISTS cost_daily (
		id VARCHAR NOT NULL,
		cloud VARCHAR NOT NULL,
		account VARCHAR NOT NULL,
		product VARCHAR NOT NULL,
		resource_id VARCHAR,
		owner VARCHAR,
		date DATE NOT NULL,
		amount_usd DOUBLE NOT NULL,
		PRIMARY KEY (id)
	);
`

const UtilHourlySchema = `
	CREATE TABLE IF NOT EXISTS util_hourly (
		id VARCHAR NOT NULL,
		resource_id VARCHAR NOT NULL,
		metric VARCHAR NOT NULL,
		ts_hour TIMESTAMP NOT NULL,
		p50 DOUBLE NOT NULL,
		p95 DOUBLE NOT NULL,
		PRIMARY KEY (id)
	);
`

const ResourcesSchema = `
	CREATE TABLE IF NOT EXISTS resources (
		resource_id VARCHAR NOT NULL,
		cloud VARCHAR NOT NULL,
		type VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		state VARCHAR NOT NULL,
		account VARCHAR NOT NULL,
		region VARCHAR,
		instance_type VARCHAR,
		tags JSON,
		PRIMARY KEY (resource_id)
	);
`

const FindingsSchema = `
	CREATE TABLE IF NOT EXISTS findings (
		finding_id VARCHAR NOT NULL,
		resource_id VARCHAR,
		type VARCHAR NOT NULL,
		title VARCHAR NOT NULL,
		severity VARCHAR NOT NULL,
		confidence VARCHAR NOT NULL,
		monthly_savings_usd DOUBLE NOT NULL,
		evidence JSON,
		suggested_action VARCHAR,
		commands JSON,
		risk_level VARCHAR,
		implementation_time VARCHAR,
		methodology VARCHAR,
		assumptions JSON,
		created_at TIMESTAMP NOT NULL,
		last_analyzed TIMESTAMP NOT NULL,
		PRIMARY KEY (finding_id)
	);
`

var bootQueries = []string{
	CostDailySchema,
	UtilHourlySchema,
	ResourcesSchema,
	FindingsSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}

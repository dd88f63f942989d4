package costs

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/cost-guard/pkg/models/store"
	"github.com/de-tools/cost-guard/pkg/store/duckdb"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: s}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedRows(t *testing.T, f *fixture, ctx context.Context) {
	t.Helper()
	rows := []store.CostRow{
		{Cloud: "aws", Account: "a1", Product: "EC2-Instance", ResourceID: "i-001", Owner: "team-alpha", Date: day(2025, 6, 10), AmountUSD: 100},
		{Cloud: "aws", Account: "a1", Product: "EC2-Instance", Date: day(2025, 6, 11), AmountUSD: 150},
		{Cloud: "aws", Account: "a2", Product: "S3-Storage", Date: day(2025, 6, 11), AmountUSD: 50},
		{Cloud: "aws", Account: "a1", Product: "S3-Storage", Date: day(2025, 6, 12), AmountUSD: 25},
	}
	require.NoError(t, f.store.Add(ctx, rows))
}

func TestCostStore_Add(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("assigns ids and stores rows", func(t *testing.T) {
		seedRows(t, f, ctx)

		var count int
		err := f.db.QueryRow(`SELECT COUNT(*) FROM cost_daily`).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 4, count)

		var nullIDs int
		err = f.db.QueryRow(`SELECT COUNT(*) FROM cost_daily WHERE id IS NULL OR id = ''`).Scan(&nullIDs)
		require.NoError(t, err)
		assert.Equal(t, 0, nullIDs)
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		require.NoError(t, f.store.Add(ctx, nil))
	})
}

func TestCostStore_AddInTransaction(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	row := []store.CostRow{{Cloud: "aws", Account: "a1", Product: "EC2-Instance", Date: day(2025, 6, 10), AmountUSD: 42}}

	t.Run("rolled back writes are discarded", func(t *testing.T) {
		tx, err := f.db.BeginTx(ctx, nil)
		require.NoError(t, err)

		require.NoError(t, f.store.Add(duckdb.WithTransaction(ctx, tx), row))
		require.NoError(t, tx.Rollback())

		total, err := f.store.TotalSince(ctx, day(2025, 1, 1))
		require.NoError(t, err)
		assert.Equal(t, 0.0, total)
	})

	t.Run("committed writes are visible", func(t *testing.T) {
		tx, err := f.db.BeginTx(ctx, nil)
		require.NoError(t, err)

		require.NoError(t, f.store.Add(duckdb.WithTransaction(ctx, tx), row))
		require.NoError(t, tx.Commit())

		total, err := f.store.TotalSince(ctx, day(2025, 1, 1))
		require.NoError(t, err)
		assert.Equal(t, 42.0, total)
	})
}

func TestCostStore_Totals(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	seedRows(t, f, ctx)

	t.Run("total since", func(t *testing.T) {
		total, err := f.store.TotalSince(ctx, day(2025, 6, 11))
		require.NoError(t, err)
		assert.Equal(t, 225.0, total)
	})

	t.Run("total since with no rows is zero", func(t *testing.T) {
		total, err := f.store.TotalSince(ctx, day(2030, 1, 1))
		require.NoError(t, err)
		assert.Equal(t, 0.0, total)
	})

	t.Run("total between is end-exclusive", func(t *testing.T) {
		total, err := f.store.TotalBetween(ctx, day(2025, 6, 10), day(2025, 6, 12))
		require.NoError(t, err)
		assert.Equal(t, 300.0, total)
	})

	t.Run("daily totals ordered by date", func(t *testing.T) {
		totals, err := f.store.DailyTotals(ctx, day(2025, 6, 1))
		require.NoError(t, err)
		require.Len(t, totals, 3)
		assert.Equal(t, 100.0, totals[0].TotalUSD)
		assert.Equal(t, 200.0, totals[1].TotalUSD)
		assert.Equal(t, 25.0, totals[2].TotalUSD)
	})

	t.Run("product totals ordered by spend", func(t *testing.T) {
		totals, err := f.store.ProductTotals(ctx, day(2025, 6, 1))
		require.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, "EC2-Instance", totals[0].Product)
		assert.Equal(t, 250.0, totals[0].TotalUSD)
		assert.Equal(t, "S3-Storage", totals[1].Product)
		assert.Equal(t, 75.0, totals[1].TotalUSD)
	})

	t.Run("product daily totals grouped per product and day", func(t *testing.T) {
		totals, err := f.store.ProductDailyTotals(ctx, day(2025, 6, 1))
		require.NoError(t, err)
		require.Len(t, totals, 4)
		// ordered by product then date
		assert.Equal(t, "EC2-Instance", totals[0].Product)
		assert.Equal(t, day(2025, 6, 10), totals[0].Date.UTC())
	})

	t.Run("resource total since", func(t *testing.T) {
		total, err := f.store.ResourceTotalSince(ctx, "i-001", day(2025, 6, 1))
		require.NoError(t, err)
		assert.Equal(t, 100.0, total)
	})

	t.Run("resource rows returns attributed history", func(t *testing.T) {
		rows, err := f.store.ResourceRows(ctx, "i-001", day(2025, 6, 1))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "i-001", rows[0].ResourceID)
		assert.Equal(t, "team-alpha", rows[0].Owner)
	})
}

func TestCostStore_Clear(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	seedRows(t, f, ctx)

	require.NoError(t, f.store.Clear(ctx))

	total, err := f.store.TotalSince(ctx, day(2025, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestCostStore_QueryErrorPropagates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT COALESCE").WillReturnError(sql.ErrConnDone)

	_, err = s.TotalSince(context.Background(), day(2025, 6, 1))
	assert.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/cost-guard/pkg/server"
	"github.com/de-tools/cost-guard/pkg/services/analysis"
	"github.com/de-tools/cost-guard/pkg/services/config"
	"github.com/de-tools/cost-guard/pkg/services/resources"
	"github.com/de-tools/cost-guard/pkg/services/seed"
	"github.com/de-tools/cost-guard/pkg/services/summary"
	"github.com/de-tools/cost-guard/pkg/store/duckdb"
	duckdbcosts "github.com/de-tools/cost-guard/pkg/store/duckdb/costs"
	duckdbfindings "github.com/de-tools/cost-guard/pkg/store/duckdb/findings"
	duckdbresources "github.com/de-tools/cost-guard/pkg/store/duckdb/resources"
	duckdbutil "github.com/de-tools/cost-guard/pkg/store/duckdb/utilization"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Cloud Cost Guard API server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the config file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.DBPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	costStore, err := duckdbcosts.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create cost store: %w", err)
	}
	utilStore, err := duckdbutil.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create utilization store: %w", err)
	}
	resourceStore, err := duckdbresources.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create resource store: %w", err)
	}
	findingStore, err := duckdbfindings.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create finding store: %w", err)
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	logger.Info().Str("db", cfg.DBPath).Str("addr", addr).Msg("cost guard starting")

	api := server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Analyzer:  analysis.NewOrchestrator(costStore, utilStore, resourceStore, findingStore, cfg.Analysis),
			Summaries: summary.NewService(costStore, findingStore, cfg.MonthlyBudgetUSD),
			Seeder:    seed.NewSeeder(db, costStore, utilStore, resourceStore, findingStore),
			Explorer:  resources.NewExplorer(resourceStore, costStore, utilStore),
			Logger:    logger,
		},
	})

	return api.Start()
}

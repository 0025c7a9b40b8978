package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"aequitas/server/config"
	"aequitas/server/internal/api"
	"aequitas/server/internal/arbitrage"
	"aequitas/server/internal/benchmark"
	"aequitas/server/internal/climate"
	"aequitas/server/internal/database"
	"aequitas/server/internal/geocoding"
	"aequitas/server/internal/hedonic"
	"aequitas/server/internal/memo"
	"aequitas/server/internal/returns"
	"aequitas/server/internal/risk"
	"aequitas/server/internal/tier"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Load reference data overrides; compiled defaults apply when absent.
	engineData, err := config.LoadEngineData()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load engine data")
	}

	logger.Infof("Using database at: %s", cfg.Server.DatabasePath)
	db, err := database.NewDatabase(cfg.Server.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	geocoder := geocoding.NewGeocoder(logger, time.Duration(cfg.Lookups.GeocoderTimeout)*time.Second)
	floodClient := climate.NewFEMAClient(logger, time.Duration(cfg.Lookups.FloodTimeout)*time.Second)

	engine := memo.NewEngine(memo.Dependencies{
		Store:        db,
		Geocoder:     geocoder,
		Rent:         hedonic.NewModel(db, logger),
		Tiers:        tier.NewClassifier(db, engineData, logger),
		Yields:       returns.NewYieldCalculator(db, logger),
		Appreciation: returns.NewAppreciationCalculator(db, logger),
		Returns:      returns.NewReturnCalculator(cfg.Returns.LeverageCap, logger),
		Risk:         risk.NewAssessor(db, engineData, logger),
		Climate:      climate.NewService(db, floodClient, engineData, logger),
		Arbitrage:    arbitrage.NewScorer(logger),
		Benchmarks:   benchmark.NewComparator(db, logger),
	}, cfg, logger)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(router, db, engine)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}

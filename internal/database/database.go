package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"aequitas/server/internal/models"
)

type Database struct {
	sqlDB *sql.DB
	orm   *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	orm, err := gorm.Open(sqlite.New(sqlite.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}

	return &Database{sqlDB: sqlDB, orm: orm}, nil
}

func (d *Database) Close() error {
	return d.sqlDB.Close()
}

func (d *Database) GetDB() *sql.DB {
	return d.sqlDB
}

func (d *Database) ORM() *gorm.DB {
	return d.orm
}

// CreateDeal persists a new deal record.
func (d *Database) CreateDeal(deal *models.Deal) error {
	if deal.Status == "" {
		deal.Status = "potential"
	}
	return d.orm.Create(deal).Error
}

// GetDeal returns a deal by ID, nil when it does not exist.
func (d *Database) GetDeal(id int64) (*models.Deal, error) {
	var deal models.Deal
	err := d.orm.First(&deal, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// ListDeals returns deals newest first, optionally filtered by status.
func (d *Database) ListDeals(status string) ([]models.Deal, error) {
	var deals []models.Deal
	query := d.orm.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

// UpdateDeal saves changes to an existing deal.
func (d *Database) UpdateDeal(deal *models.Deal) error {
	return d.orm.Save(deal).Error
}

// DeleteDeal removes a deal and its stored assessment.
func (d *Database) DeleteDeal(id int64) error {
	return d.orm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deal_id = ?", id).Delete(&models.RiskAssessmentResult{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Deal{}, id).Error
	})
}

// SaveAssessment stores the assessment for a deal, replacing any prior run.
func (d *Database) SaveAssessment(result *models.RiskAssessmentResult) error {
	return d.orm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deal_id = ?", result.DealID).Delete(&models.RiskAssessmentResult{}).Error; err != nil {
			return err
		}
		return tx.Create(result).Error
	})
}

// GetAssessment returns the stored assessment for a deal, nil when the deal
// has not been assessed.
func (d *Database) GetAssessment(dealID int64) (*models.RiskAssessmentResult, error) {
	var result models.RiskAssessmentResult
	err := d.orm.Where("deal_id = ?", dealID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Coefficients returns the newest coefficient set for a region, nil when no
// model has been fitted for it.
func (d *Database) Coefficients(region string) (*models.RegressionCoefficients, error) {
	var coef models.RegressionCoefficients
	err := d.orm.Where("region = ?", region).
		Order("created_at DESC").
		First(&coef).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coef, nil
}

// Thresholds returns the latest decile table for a market slice. A nil
// bedrooms filter matches the unsegmented row. Returns nil on a miss.
func (d *Database) Thresholds(geography string, bedrooms *int) (*models.DecileThresholds, error) {
	var row models.DecileThresholds
	query := d.orm.Where("geography = ?", geography)
	if bedrooms != nil {
		query = query.Where("bedrooms = ?", *bedrooms)
	} else {
		query = query.Where("bedrooms IS NULL")
	}

	err := query.Order("data_year DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Benchmark returns the research benchmark row for a (decile, geography)
// cell, nil on a miss.
func (d *Database) Benchmark(decile int, geography string) (*models.RiskBenchmark, error) {
	var row models.RiskBenchmark
	err := d.orm.Where("rent_decile = ? AND geography = ?", decile, geography).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListBenchmarks returns every benchmark row, optionally filtered by
// geography, ordered by decile.
func (d *Database) ListBenchmarks(geography string) ([]models.RiskBenchmark, error) {
	var rows []models.RiskBenchmark
	query := d.orm.Order("geography, rent_decile")
	if geography != "" {
		query = query.Where("geography = ?", geography)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListThresholds returns every decile threshold table, newest year first.
func (d *Database) ListThresholds(geography string) ([]models.DecileThresholds, error) {
	var rows []models.DecileThresholds
	query := d.orm.Order("geography, bedrooms, data_year DESC")
	if geography != "" {
		query = query.Where("geography = ?", geography)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetSample returns a cached hazard sample for exact key values. An expired
// sample is evicted and reported as a miss.
func (d *Database) GetSample(lat, lon float64, hazardType string) (*models.ClimateHazardSample, error) {
	var sample models.ClimateHazardSample
	err := d.orm.Where("latitude = ? AND longitude = ? AND hazard_type = ?", lat, lon, hazardType).
		Order("created_at DESC").
		First(&sample).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if sample.Expired() {
		if err := d.orm.Delete(&models.ClimateHazardSample{}, sample.ID).Error; err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &sample, nil
}

// PutSample stores a hazard sample, replacing any prior entry for the key.
func (d *Database) PutSample(sample *models.ClimateHazardSample) error {
	if sample.CreatedAt.IsZero() {
		sample.CreatedAt = time.Now().UTC()
	}
	return d.orm.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("latitude = ? AND longitude = ? AND hazard_type = ?",
			sample.Latitude, sample.Longitude, sample.HazardType).
			Delete(&models.ClimateHazardSample{}).Error
		if err != nil {
			return err
		}
		return tx.Create(sample).Error
	})
}

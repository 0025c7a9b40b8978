package memo

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"aequitas/server/config"
	"aequitas/server/internal/arbitrage"
	"aequitas/server/internal/benchmark"
	"aequitas/server/internal/climate"
	"aequitas/server/internal/hedonic"
	"aequitas/server/internal/models"
	"aequitas/server/internal/returns"
	"aequitas/server/internal/risk"
	"aequitas/server/internal/tier"
)

// DealStore loads deals and persists their latest assessment.
type DealStore interface {
	GetDeal(id int64) (*models.Deal, error)
	SaveAssessment(result *models.RiskAssessmentResult) error
}

// Geocoder resolves an address to coordinates.
type Geocoder interface {
	GeocodeAddress(street, city, state, zipcode string) (float64, float64, error)
}

// Dependencies wires the component services into the engine.
type Dependencies struct {
	Store        DealStore
	Geocoder     Geocoder
	Rent         *hedonic.Model
	Tiers        *tier.Classifier
	Yields       *returns.YieldCalculator
	Appreciation *returns.AppreciationCalculator
	Returns      *returns.ReturnCalculator
	Risk         *risk.Assessor
	Climate      *climate.Service
	Arbitrage    *arbitrage.Scorer
	Benchmarks   *benchmark.Comparator
}

// Engine sequences the component services into assessments, memos and
// multi-deal comparisons. It is the only component with fan-out; everything
// beneath it is a pure function of its inputs plus lookup tables.
type Engine struct {
	deps   Dependencies
	cfg    *config.Config
	logger *logrus.Logger
}

func NewEngine(deps Dependencies, cfg *config.Config, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Engine{deps: deps, cfg: cfg, logger: logger}
}

// computation carries every intermediate result of one pipeline run.
type computation struct {
	property      models.PropertyCharacteristics
	holdingPeriod int
	geography     string

	prediction     *hedonic.Prediction
	predictedRent  float64
	rentMethod     string
	rentError      string
	national       *tier.Classification
	regional       *tier.Classification
	annualRent     float64
	propertyValue  float64
	yields         *returns.YieldBreakdown
	appreciation   *returns.Projection
	costOfDebt     float64
	downPaymentPct float64
	totals         *returns.TotalReturn
	systematic     *risk.SystematicResult
	regulatory     *risk.RegulatoryResult
	idiosyncratic  *risk.IdiosyncraticResult
	climate        *climate.Assessment
	hasClimate     bool
	hasCoordinates bool
	latitude       float64
	longitude      float64
	composite      *risk.CompositeResult
	arbitrage      *arbitrage.Result
	comparison     *benchmark.Comparison
}

// ComputeRiskAssessment runs the full pipeline for a property and returns the
// flattened assessment record.
func (e *Engine) ComputeRiskAssessment(property models.PropertyCharacteristics, holdingPeriod int, geography string) (*models.RiskAssessmentResult, error) {
	c, err := e.run(property, holdingPeriod, geography)
	if err != nil {
		return nil, err
	}
	return c.toResult(), nil
}

// AssessDeal computes and persists the assessment for a stored deal.
func (e *Engine) AssessDeal(dealID int64, holdingPeriod int, geography string) (*models.RiskAssessmentResult, error) {
	deal, err := e.deps.Store.GetDeal(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, &models.ValidationError{Field: "deal_id", Detail: fmt.Sprintf("deal %d not found", dealID)}
	}

	result, err := e.ComputeRiskAssessment(deal.Characteristics(), holdingPeriod, geography)
	if err != nil {
		return nil, err
	}
	result.DealID = dealID

	if err := e.deps.Store.SaveAssessment(result); err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateMemo produces the full investment memo for a stored deal.
func (e *Engine) GenerateMemo(dealID int64, holdingPeriod int, geography string) (*Memo, error) {
	deal, err := e.deps.Store.GetDeal(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, &models.ValidationError{Field: "deal_id", Detail: fmt.Sprintf("deal %d not found", dealID)}
	}

	c, err := e.run(deal.Characteristics(), holdingPeriod, geography)
	if err != nil {
		return nil, err
	}
	return e.buildMemo(deal, c), nil
}

// run executes the component pipeline in order. External lookup failures
// degrade in place; only configuration and validation problems surface.
func (e *Engine) run(property models.PropertyCharacteristics, holdingPeriod int, geography string) (*computation, error) {
	if holdingPeriod < 1 {
		return nil, &models.ValidationError{Field: "holding_period", Detail: "must be at least 1 year"}
	}
	if geography == "" {
		geography = "US"
	}
	if !validGeography(geography) {
		return nil, &models.ValidationError{
			Field:  "geography",
			Detail: fmt.Sprintf("%q is not a two-letter code such as US or CA", geography),
		}
	}

	c := &computation{
		property:      property,
		holdingPeriod: holdingPeriod,
		geography:     geography,
	}

	if err := e.predictRent(c); err != nil {
		return nil, err
	}

	if err := e.classify(c); err != nil {
		return nil, err
	}

	c.annualRent = c.predictedRent * 12
	c.propertyValue = e.cfg.Returns.DefaultPropertyValue
	if property.PurchasePrice != nil && *property.PurchasePrice > 0 {
		c.propertyValue = *property.PurchasePrice
	}

	yields, err := e.deps.Yields.Calculate(c.annualRent, c.propertyValue, c.national.Decile, geography)
	if err != nil {
		return nil, err
	}
	c.yields = yields

	appreciation, err := e.deps.Appreciation.Project(c.propertyValue, c.national.Decile, geography, holdingPeriod)
	if err != nil {
		return nil, err
	}
	c.appreciation = appreciation

	c.costOfDebt = e.cfg.Returns.DefaultCostOfDebt
	if property.LoanInterestRate != nil {
		c.costOfDebt = *property.LoanInterestRate
	}
	c.downPaymentPct = e.cfg.Returns.DefaultDownPayment
	if property.DownPaymentPercent != nil {
		c.downPaymentPct = *property.DownPaymentPercent
	}

	totals, err := e.deps.Returns.Total(yields.NetYield, appreciation.AnnualRate, c.costOfDebt, c.downPaymentPct)
	if err != nil {
		return nil, err
	}
	c.totals = totals

	systematic, err := e.deps.Risk.Systematic(c.national.Decile, geography)
	if err != nil {
		return nil, err
	}
	c.systematic = systematic
	c.regulatory = e.deps.Risk.Regulatory(property.State, property.City, property.AMIPercentage)
	c.idiosyncratic = e.deps.Risk.Idiosyncratic(property)

	e.assessClimate(c)

	climateScore := 0.0
	if c.climate != nil {
		climateScore = c.climate.Score
	}
	c.composite = e.deps.Risk.Composite(
		systematic.Score, c.regulatory.Score, c.idiosyncratic.Score,
		climateScore, c.hasClimate, c.national.Decile)

	arb, err := e.deps.Arbitrage.Score(c.national.Decile, c.propertyValue, c.predictedRent, property)
	if err != nil {
		return nil, err
	}
	c.arbitrage = arb

	comparison, err := e.deps.Benchmarks.Compare(yields.NetYield, totals.Unlevered, c.national.Decile, geography)
	if err != nil {
		return nil, err
	}
	c.comparison = comparison

	return c, nil
}

// predictRent runs the hedonic model and falls back to the observed rent when
// no usable coefficient set exists. The fallback covers configuration gaps
// only; invalid property input surfaces to the caller unchanged.
func (e *Engine) predictRent(c *computation) error {
	prediction, err := e.deps.Rent.PredictRent(c.property, c.geography, time.Now().Year())
	if err == nil {
		c.prediction = prediction
		c.predictedRent = prediction.MonthlyRent
		c.rentMethod = "hedonic_model"
		return nil
	}

	var configuration *models.ConfigurationError
	if !errors.As(err, &configuration) {
		return err
	}

	observed := e.cfg.Returns.FallbackMonthlyRent
	if c.property.MonthlyRent != nil && *c.property.MonthlyRent > 0 {
		observed = *c.property.MonthlyRent
	}

	e.logger.WithError(err).WithField("observed_rent", observed).
		Warn("Hedonic model failed, falling back to observed rent")

	c.predictedRent = observed
	c.rentMethod = "observed_rent"
	c.rentError = err.Error()
	return nil
}

// validGeography accepts "US" or a two-letter state code.
func validGeography(geography string) bool {
	if len(geography) != 2 {
		return false
	}
	for i := 0; i < len(geography); i++ {
		if geography[i] < 'A' || geography[i] > 'Z' {
			return false
		}
	}
	return true
}

// classify places the predicted rent into its national decile and, when a
// state is known, into the regional decile independently.
func (e *Engine) classify(c *computation) error {
	bedrooms := c.property.Bedrooms

	national, err := e.deps.Tiers.Classify(c.predictedRent, "US", &bedrooms)
	if err != nil {
		return err
	}
	c.national = national

	c.regional = national
	region := c.property.State
	if region == "" && c.geography != "US" {
		region = c.geography
	}
	if region != "" && region != "US" {
		regional, err := e.deps.Tiers.Classify(c.predictedRent, region, &bedrooms)
		if err != nil {
			return err
		}
		c.regional = regional
	}
	return nil
}

// assessClimate resolves coordinates and scores the climate dimension. A
// property that cannot be located gets the Unknown assessment and the
// composite reverts to three-dimension weighting.
func (e *Engine) assessClimate(c *computation) {
	if c.property.Latitude != nil && c.property.Longitude != nil {
		c.latitude, c.longitude = *c.property.Latitude, *c.property.Longitude
		c.hasCoordinates = true
	} else if c.property.StreetAddress != "" || c.property.Zipcode != "" {
		lat, lon, err := e.deps.Geocoder.GeocodeAddress(
			c.property.StreetAddress, c.property.City, c.property.State, c.property.Zipcode)
		if err != nil {
			e.logger.WithError(err).Warn("Geocoding failed, climate risk unavailable")
		} else {
			c.latitude, c.longitude = lat, lon
			c.hasCoordinates = true
		}
	}

	if !c.hasCoordinates {
		c.climate = climate.UnknownAssessment(0, 0)
		return
	}

	c.climate = e.deps.Climate.Assess(c.latitude, c.longitude)
	c.hasClimate = c.climate.Known()
}

func (c *computation) toResult() *models.RiskAssessmentResult {
	result := &models.RiskAssessmentResult{
		HoldingPeriod: c.holdingPeriod,
		Geography:     c.geography,

		PredictedFundamentalRent: c.predictedRent,
		RentPredictionMethod:     c.rentMethod,
		RentDecileNational:       c.national.Decile,
		RentDecileRegional:       c.regional.Decile,
		RentTierLabel:            c.national.TierLabel,
		RentPercentile:           c.national.Percentile,

		GrossYield:         c.yields.GrossYield,
		MaintenanceCostPct: c.yields.MaintenanceCostPct,
		PropertyTaxPct:     c.yields.PropertyTaxPct,
		TurnoverCostPct:    c.yields.TurnoverCostPct,
		DefaultCostPct:     c.yields.DefaultCostPct,
		ManagementCostPct:  c.yields.ManagementCostPct,
		TotalCostPct:       c.yields.TotalCostPct,
		NetYield:           c.yields.NetYield,

		ProjectedPriceYr1:      c.appreciation.PriceYr1,
		ProjectedPriceYr5:      c.appreciation.PriceYr5,
		ProjectedPriceYr10:     c.appreciation.PriceYr10,
		ProjectedPriceHorizon:  c.appreciation.PriceHorizon,
		CapitalGainYieldAnnual: c.appreciation.AnnualRate,
		AppreciationRateSource: c.appreciation.RateSource,

		TotalReturnUnlevered: c.totals.Unlevered,
		TotalReturnLevered:   c.totals.Levered,
		LeverageEffect:       c.totals.LeverageEffect,
		CostOfDebt:           c.totals.CostOfDebt,
		LoanToValue:          c.totals.LoanToValue,

		SystematicRiskScore:    c.systematic.Score,
		BetaGDP:                c.systematic.BetaGDP,
		BetaStocks:             c.systematic.BetaStocks,
		CashFlowVolatility:     c.systematic.CashFlowVolatility,
		CashFlowCyclicality:    c.systematic.Cyclicality,
		RegulatoryRiskScore:    c.regulatory.Score,
		HasRentControl:         c.regulatory.RentControl,
		RPSScore:               c.regulatory.RPSScore,
		IdiosyncraticRiskScore: c.idiosyncratic.Score,
		CompositeRiskScore:     c.composite.Score,
		CompositeRiskLevel:     c.composite.Level,
		RiskValidation:         c.composite.ValidationVsResearch,

		RenterConstraintScore:        c.arbitrage.RenterConstraintScore,
		InstitutionalConstraintScore: c.arbitrage.InstitutionalConstraintScore,
		MediumLandlordFitScore:       c.arbitrage.MediumLandlordFitScore,
		ArbitrageOpportunityScore:    c.arbitrage.OpportunityScore,
		ArbitrageOpportunityLevel:    c.arbitrage.OpportunityLevel,
		RecommendedInvestorType:      c.arbitrage.RecommendedInvestorType,

		VsBenchmarkYield:  c.comparison.YieldPosition,
		VsBenchmarkReturn: c.comparison.ReturnPosition,

		LastCalculated: time.Now().UTC(),
	}

	if c.prediction != nil {
		result.HedonicModelVersion = c.prediction.ModelVersion
	}

	result.ClimateRiskLevel = c.climate.Level
	if c.hasClimate {
		score := c.climate.Score
		result.ClimateRiskScore = &score
		result.FloodRiskScore = hazardScore(c.climate, "flood")
		result.WildfireRiskScore = hazardScore(c.climate, "wildfire")
		result.HurricaneRiskScore = hazardScore(c.climate, "hurricane")
		result.EarthquakeRiskScore = hazardScore(c.climate, "earthquake")
		result.TornadoRiskScore = hazardScore(c.climate, "tornado")
		result.ExtremeHeatRiskScore = hazardScore(c.climate, "extreme_heat")
		result.SeaLevelRiskScore = hazardScore(c.climate, "sea_level_rise")
		result.DroughtRiskScore = hazardScore(c.climate, "drought")
	}
	if c.hasCoordinates {
		lat, lon := c.latitude, c.longitude
		result.PropertyLatitude = &lat
		result.PropertyLongitude = &lon
	}

	return result
}

func hazardScore(a *climate.Assessment, hazard string) *float64 {
	result, ok := a.Hazards[hazard]
	if !ok {
		return nil
	}
	score := result.Score
	return &score
}

func (e *Engine) buildMemo(deal *models.Deal, c *computation) *Memo {
	recommendation := buildRecommendation(c)
	sensitivity := e.buildSensitivity(c)

	return &Memo{
		DealID:        deal.ID,
		GeneratedAt:   time.Now().UTC(),
		HoldingPeriod: c.holdingPeriod,
		Geography:     c.geography,

		PropertySummary: PropertySummary{
			Address:           deal.StreetAddress,
			PurchasePrice:     deal.PurchasePrice,
			Bedrooms:          deal.Bedrooms,
			Bathrooms:         deal.Bathrooms,
			SquareFootage:     deal.SquareFootage,
			YearBuilt:         deal.YearBuilt,
			PropertyAge:       c.property.Age(),
			PropertyCondition: deal.PropertyCondition,
			NumberOfUnits:     c.property.Units(),
			PropertyType:      deal.PropertyType,
		},
		RentPrediction:         buildRentPrediction(c),
		TierClassification:     buildTierSection(c),
		YieldAnalysis:          buildYieldSection(c),
		AppreciationProjection: c.appreciation,
		TotalReturn: ReturnSection{
			NetYield:          c.yields.NetYield,
			CapitalGainYield:  c.appreciation.AnnualRate,
			Totals:            c.totals,
			BenchmarkPosition: c.comparison.ReturnPosition,
		},
		RiskAssessment: RiskSection{
			Systematic:    c.systematic,
			Regulatory:    c.regulatory,
			Idiosyncratic: c.idiosyncratic,
			Climate:       c.climate,
			Composite:     c.composite,
			KeyRisks:      risk.KeyRisks(c.systematic, c.regulatory, c.idiosyncratic),
			Mitigations:   risk.Mitigations(c.systematic, c.regulatory, c.idiosyncratic, c.national.Decile),
		},
		ArbitrageOpportunity:     c.arbitrage,
		InvestmentRecommendation: recommendation,
		SensitivityAnalysis:      sensitivity,
		ExecutiveSummary:         buildExecutiveSummary(deal, c, recommendation),
	}
}

func buildRentPrediction(c *computation) RentPrediction {
	prediction := RentPrediction{
		PredictedRent: c.predictedRent,
		Method:        c.rentMethod,
		Error:         c.rentError,
	}
	if c.prediction != nil {
		prediction.ModelVersion = c.prediction.ModelVersion
		prediction.Contributions = c.prediction.Contributions
	}
	return prediction
}

func buildTierSection(c *computation) TierSection {
	return TierSection{
		NationalDecile:      c.national.Decile,
		RegionalDecile:      c.regional.Decile,
		TierLabel:           c.national.TierLabel,
		Percentile:          c.national.Percentile,
		Category:            c.national.Category,
		ExpectedReturnRange: c.national.ExpectedReturnRange,
		UsedDefaultTable:    c.national.UsedDefaultTable,
	}
}

func buildYieldSection(c *computation) YieldSection {
	return YieldSection{
		AnnualRent:        c.annualRent,
		PropertyValue:     c.propertyValue,
		Breakdown:         c.yields,
		BenchmarkPosition: c.comparison.YieldPosition,
	}
}

func buildExecutiveSummary(deal *models.Deal, c *computation, recommendation Recommendation) ExecutiveSummary {
	return ExecutiveSummary{
		Property:            fmt.Sprintf("%dBR/%.1fBA, %d sqft", deal.Bedrooms, deal.Bathrooms, deal.SquareFootage),
		Address:             deal.StreetAddress,
		PurchasePrice:       deal.PurchasePrice,
		RentTier:            c.national.TierLabel,
		TierCategory:        c.national.Category,
		ExpectedReturnRange: c.national.ExpectedReturnRange,
		ReturnUnlevered:     c.totals.Unlevered,
		ReturnLevered:       c.totals.Levered,
		RiskLevel:           c.composite.Level,
		RiskScore:           c.composite.Score,
		ArbitrageLevel:      c.arbitrage.OpportunityLevel,
		ArbitrageScore:      c.arbitrage.OpportunityScore,
		OverallRating:       recommendation.OverallRating,
		RatingScore:         recommendation.RatingScore,
		TargetInvestor:      recommendation.TargetInvestor,
		KeyTakeaway:         recommendation.Summary,
	}
}

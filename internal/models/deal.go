package models

import "time"

// Deal is the persisted record for a property under evaluation.
type Deal struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	DealName  string    `json:"deal_name" gorm:"not null"`
	Status    string    `json:"status" gorm:"default:potential"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Location
	StreetAddress string   `json:"street_address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Zipcode       string   `json:"zipcode"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`

	// Property details
	SquareFootage     int      `json:"square_footage"`
	Bedrooms          int      `json:"bedrooms"`
	Bathrooms         float64  `json:"bathrooms"`
	YearBuilt         *int     `json:"year_built"`
	PropertyType      string   `json:"property_type"`
	PropertyCondition string   `json:"property_condition"`
	NumberOfUnits     int      `json:"number_of_units"`
	OccupancyRate     *float64 `json:"occupancy_rate"`
	EPCScore          *float64 `json:"epc_score"`

	// Financing
	PurchasePrice      *float64 `json:"purchase_price"`
	DownPaymentPercent *float64 `json:"down_payment_percent"`
	LoanInterestRate   *float64 `json:"loan_interest_rate"`
	MonthlyRent        *float64 `json:"monthly_rent"`
}

// PropertyCharacteristics is the immutable engine input. It is owned by the
// caller; the engine never mutates it.
type PropertyCharacteristics struct {
	SquareFootage int      `json:"square_footage"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     float64  `json:"bathrooms"`
	YearBuilt     *int     `json:"year_built"`
	PropertyType  string   `json:"property_type"`
	Condition     string   `json:"condition"`
	NumberOfUnits int      `json:"number_of_units"`
	OccupancyRate *float64 `json:"occupancy_rate"`

	// Tenant concentration as a percentage of rent from the largest tenant.
	// When absent it is inferred from the unit count.
	TenantConcentrationPct *float64 `json:"tenant_concentration_pct"`

	StreetAddress string   `json:"street_address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Zipcode       string   `json:"zipcode"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`

	PurchasePrice      *float64 `json:"purchase_price"`
	DownPaymentPercent *float64 `json:"down_payment_percent"`
	LoanInterestRate   *float64 `json:"loan_interest_rate"`
	MonthlyRent        *float64 `json:"monthly_rent"`
	EPCScore           *float64 `json:"epc_score"`

	// Rent as a percentage of Area Median Income, when known.
	AMIPercentage *float64 `json:"ami_percentage"`

	// Optional arbitrage inputs.
	MedianIncome     *float64 `json:"median_income"`
	PriceToRentRatio *float64 `json:"price_to_rent_ratio"`
}

// Characteristics converts a stored deal into the engine input struct.
func (d *Deal) Characteristics() PropertyCharacteristics {
	return PropertyCharacteristics{
		SquareFootage:      d.SquareFootage,
		Bedrooms:           d.Bedrooms,
		Bathrooms:          d.Bathrooms,
		YearBuilt:          d.YearBuilt,
		PropertyType:       d.PropertyType,
		Condition:          d.PropertyCondition,
		NumberOfUnits:      d.NumberOfUnits,
		OccupancyRate:      d.OccupancyRate,
		StreetAddress:      d.StreetAddress,
		City:               d.City,
		State:              d.State,
		Zipcode:            d.Zipcode,
		Latitude:           d.Latitude,
		Longitude:          d.Longitude,
		PurchasePrice:      d.PurchasePrice,
		DownPaymentPercent: d.DownPaymentPercent,
		LoanInterestRate:   d.LoanInterestRate,
		MonthlyRent:        d.MonthlyRent,
		EPCScore:           d.EPCScore,
	}
}

// Age returns the property age in years relative to now, or nil when the
// construction year is unknown.
func (p *PropertyCharacteristics) Age() *int {
	if p.YearBuilt == nil {
		return nil
	}
	age := time.Now().Year() - *p.YearBuilt
	if age < 0 {
		age = 0
	}
	return &age
}

// Units returns the unit count with a single-unit default.
func (p *PropertyCharacteristics) Units() int {
	if p.NumberOfUnits <= 0 {
		return 1
	}
	return p.NumberOfUnits
}

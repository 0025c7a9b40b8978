package benchmark

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aequitas/server/internal/models"
)

type stubSource struct {
	row *models.RiskBenchmark
}

func (s *stubSource) Benchmark(decile int, geography string) (*models.RiskBenchmark, error) {
	if geography != "US" {
		return nil, nil
	}
	return s.row, nil
}

func floatPtr(v float64) *float64 { return &v }

func newTestComparator(row *models.RiskBenchmark) *Comparator {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewComparator(&stubSource{row: row}, logger)
}

func fullRow() *models.RiskBenchmark {
	return &models.RiskBenchmark{
		RentDecile:     3,
		Geography:      "US",
		NetYieldMin:    floatPtr(6.0),
		NetYieldMax:    floatPtr(8.0),
		TotalReturnMin: floatPtr(8.0),
		TotalReturnMax: floatPtr(11.0),
	}
}

func TestComparePositions(t *testing.T) {
	comparator := newTestComparator(fullRow())

	above, err := comparator.Compare(9.0, 12.0, 3, "US")
	require.NoError(t, err)
	assert.Equal(t, PositionAbove, above.YieldPosition)
	assert.Equal(t, PositionAbove, above.ReturnPosition)

	within, err := comparator.Compare(7.0, 9.5, 3, "US")
	require.NoError(t, err)
	assert.Equal(t, PositionWithin, within.YieldPosition)
	assert.Equal(t, PositionWithin, within.ReturnPosition)

	below, err := comparator.Compare(4.0, 6.0, 3, "US")
	require.NoError(t, err)
	assert.Equal(t, PositionBelow, below.YieldPosition)
	assert.Equal(t, PositionBelow, below.ReturnPosition)
}

func TestCompareBoundariesAreWithin(t *testing.T) {
	comparator := newTestComparator(fullRow())

	result, err := comparator.Compare(6.0, 11.0, 3, "US")
	require.NoError(t, err)

	assert.Equal(t, PositionWithin, result.YieldPosition)
	assert.Equal(t, PositionWithin, result.ReturnPosition)
}

func TestCompareMissingRowIsUnknown(t *testing.T) {
	comparator := newTestComparator(nil)

	result, err := comparator.Compare(7.0, 9.0, 3, "US")
	require.NoError(t, err)

	assert.Equal(t, PositionUnknown, result.YieldPosition)
	assert.Equal(t, PositionUnknown, result.ReturnPosition)
}

func TestComparePartialRowIsUnknownPerMetric(t *testing.T) {
	row := fullRow()
	row.TotalReturnMin = nil
	comparator := newTestComparator(row)

	result, err := comparator.Compare(7.0, 9.0, 3, "US")
	require.NoError(t, err)

	assert.Equal(t, PositionWithin, result.YieldPosition)
	assert.Equal(t, PositionUnknown, result.ReturnPosition)
}

func TestCompareFallsBackToNational(t *testing.T) {
	comparator := newTestComparator(fullRow())

	result, err := comparator.Compare(7.0, 9.5, 3, "TX")
	require.NoError(t, err)

	assert.Equal(t, PositionWithin, result.YieldPosition)
}

func TestCompareRejectsBadDecile(t *testing.T) {
	comparator := newTestComparator(fullRow())

	_, err := comparator.Compare(7.0, 9.0, 0, "US")
	assert.Error(t, err)
}

package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyRisksRanksBySeverity(t *testing.T) {
	systematic := &SystematicResult{Score: 70, BetaGDP: 0.55}
	regulatory := &RegulatoryResult{RentControl: true, RPSScore: 4.2}
	idiosyncratic := &IdiosyncraticResult{
		Condition:          "poor",
		ConditionScore:     25,
		ConcentrationScore: 30,
	}

	risks := KeyRisks(systematic, regulatory, idiosyncratic)

	require.Len(t, risks, 3)
	assert.Equal(t, "High", risks[0].Severity)
	assert.Equal(t, "High", risks[1].Severity)
	assert.Equal(t, "Moderate", risks[2].Severity)
	assert.Equal(t, "Systematic", risks[0].Category)
	assert.Contains(t, risks[0].Concern, "β=0.55")
}

func TestKeyRisksRentControlSeverityFollowsRPS(t *testing.T) {
	systematic := &SystematicResult{Score: 30}
	idiosyncratic := &IdiosyncraticResult{}

	mild := KeyRisks(systematic, &RegulatoryResult{RentControl: true, RPSScore: 2.5}, idiosyncratic)
	require.Len(t, mild, 1)
	assert.Equal(t, "Moderate", mild[0].Severity)

	strict := KeyRisks(systematic, &RegulatoryResult{RentControl: true, RPSScore: 4.0}, idiosyncratic)
	require.Len(t, strict, 1)
	assert.Equal(t, "High", strict[0].Severity)
}

func TestKeyRisksUnknownConditionLabel(t *testing.T) {
	risks := KeyRisks(
		&SystematicResult{Score: 30},
		&RegulatoryResult{},
		&IdiosyncraticResult{ConditionScore: 25},
	)

	require.Len(t, risks, 1)
	assert.Equal(t, "Property condition: Unknown", risks[0].Concern)
}

func TestKeyRisksQuietProfileIsEmpty(t *testing.T) {
	risks := KeyRisks(
		&SystematicResult{Score: 30},
		&RegulatoryResult{Score: 20},
		&IdiosyncraticResult{ConditionScore: 5, ConcentrationScore: 10},
	)

	assert.Empty(t, risks)
}

func TestMitigationsCapAtFive(t *testing.T) {
	suggestions := Mitigations(
		&SystematicResult{Score: 60},
		&RegulatoryResult{RentControl: true, PoliticalRisk: "High"},
		&IdiosyncraticResult{ConcentrationScore: 25, AgeScore: 20},
		2,
	)

	assert.Len(t, suggestions, 5)
}

func TestMitigationsLowTierFinancingAngle(t *testing.T) {
	suggestions := Mitigations(
		&SystematicResult{Score: 30},
		&RegulatoryResult{},
		&IdiosyncraticResult{},
		2,
	)

	require.Len(t, suggestions, 2)
	assert.Contains(t, suggestions[0], "favorable financing")
}

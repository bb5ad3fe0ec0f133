package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultCalculator() *Calculator {
	return NewCalculator(1.0, 0.07)
}

func TestDerive_NetWeight(t *testing.T) {
	calc := defaultCalculator()

	d := calc.Derive(Input{GrossWeight: 100, PattiWeight: 5, BoxCount: 2})
	assert.Equal(t, 93.0, d.NetWeight)
}

func TestDerive_DandaWeight(t *testing.T) {
	calc := defaultCalculator()

	// The engine applies no rounding, so danda is the raw IEEE-754 product
	// of the net weight and the rate (not a tidy decimal 7).
	d := calc.Derive(Input{GrossWeight: 100})
	assert.Equal(t, 100.0, d.NetWeight)
	assert.Equal(t, d.NetWeight*0.07, d.DandaWeight)
	assert.InDelta(t, 7.0, d.DandaWeight, 1e-9)
}

func TestDerive_FinalNetWeight_AddsDandaAndTut(t *testing.T) {
	calc := defaultCalculator()

	d := calc.Derive(Input{GrossWeight: 100, TutWastage: 3})
	assert.Equal(t, 110.0, d.FinalNetWeight)
}

func TestDerive_Amounts(t *testing.T) {
	calc := defaultCalculator()

	d := calc.Derive(Input{GrossWeight: 100, TutWastage: 3, RatePerKg: 50, Majuri: 500})
	assert.Equal(t, 5500.0, d.TotalAmount)
	assert.Equal(t, 5000.0, d.NetAmount)
}

func TestDerive_NetWeightClampedAtZero(t *testing.T) {
	calc := defaultCalculator()

	d := calc.Derive(Input{GrossWeight: 10, PattiWeight: 15})
	assert.Equal(t, 0.0, d.NetWeight)
	assert.Equal(t, 0.0, d.DandaWeight)
}

func TestDerive_NetAmountClampedAtZero(t *testing.T) {
	calc := defaultCalculator()

	// total 1000, majuri 1500 ⇒ net amount clamps to zero
	d := calc.Derive(Input{GrossWeight: 20, RatePerKg: 1000.0 / 21.4, Majuri: 1500})
	assert.Equal(t, 0.0, calc.NetAmount(1000, 1500))
	assert.Equal(t, 0.0, d.NetAmount)
}

func TestDerive_BoxCountUsesConfiguredTare(t *testing.T) {
	calc := NewCalculator(1.5, 0.07)

	d := calc.Derive(Input{GrossWeight: 100, BoxCount: 4})
	assert.Equal(t, 94.0, d.NetWeight)
}

func TestDerive_ZeroInputIsZeroOutput(t *testing.T) {
	calc := defaultCalculator()

	d := calc.Derive(Input{})
	assert.Equal(t, Derived{}, d)
}

func TestDerive_Deterministic(t *testing.T) {
	calc := defaultCalculator()
	in := Input{GrossWeight: 123.45, PattiWeight: 6.7, BoxCount: 3, TutWastage: 1.2, RatePerKg: 48.5, Majuri: 250}

	first := calc.Derive(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, calc.Derive(in))
	}
}

func TestDerive_NegativeInputsNeverProduceNegativeOutputs(t *testing.T) {
	calc := defaultCalculator()

	inputs := []Input{
		{GrossWeight: -50, PattiWeight: 10, RatePerKg: 40},
		{GrossWeight: 100, PattiWeight: 5, Majuri: 1e9, RatePerKg: 40},
		{GrossWeight: 0, PattiWeight: 0, BoxCount: 100, RatePerKg: 40},
	}
	for _, in := range inputs {
		d := calc.Derive(in)
		assert.GreaterOrEqual(t, d.NetWeight, 0.0)
		assert.GreaterOrEqual(t, d.FinalNetWeight, d.NetWeight)
		assert.GreaterOrEqual(t, d.TotalAmount, 0.0)
		assert.GreaterOrEqual(t, d.NetAmount, 0.0)
		assert.LessOrEqual(t, d.NetAmount, d.TotalAmount)
	}
}

func TestDerive_NetAmountNeverExceedsTotal(t *testing.T) {
	calc := defaultCalculator()

	d := calc.Derive(Input{GrossWeight: 250, PattiWeight: 10, BoxCount: 5, TutWastage: 2, RatePerKg: 42, Majuri: 300})
	assert.LessOrEqual(t, d.NetAmount, d.TotalAmount)
	assert.Equal(t, d.TotalAmount-300, d.NetAmount)
}

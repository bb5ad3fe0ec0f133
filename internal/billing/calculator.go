package billing

// Calculator derives all downstream weight and payment fields for a bill.
//
// DOMAIN FORMULA (agricultural commodity billing):
//  1. Net Weight       = Gross - Patti - (BoxCount × BoxWeightKg), capped at zero
//  2. Danda Weight     = Net Weight × DandaPercent (default 7%)
//  3. Final Net Weight = Net Weight + Danda Weight + Tut Wastage
//  4. Total Amount     = Final Net Weight × Rate per Kg
//  5. Net Amount       = Total Amount - Majuri, capped at zero
//
// Danda and tut are ADDED back onto the net weight — that is the domain
// rule, not a sign error.
//
// The calculator is pure: no I/O, no rounding, no validation. Out-of-range
// inputs are clamped rather than rejected; business-rule validation belongs
// to the service layer.
type Calculator struct {
	boxWeightKg  float64
	dandaPercent float64
}

// NewCalculator creates a Calculator with the given per-box tare weight and
// danda allowance rate.
func NewCalculator(boxWeightKg, dandaPercent float64) *Calculator {
	return &Calculator{boxWeightKg: boxWeightKg, dandaPercent: dandaPercent}
}

// Input holds the raw intake measurements for one bill.
type Input struct {
	GrossWeight float64
	PattiWeight float64
	BoxCount    int
	TutWastage  float64
	RatePerKg   float64
	Majuri      float64
}

// Derived holds every field computed from an Input. All values are
// non-negative for non-negative inputs.
type Derived struct {
	NetWeight      float64
	DandaWeight    float64
	FinalNetWeight float64
	TotalAmount    float64
	NetAmount      float64
}

// NetWeight computes the base net weight: gross minus patti minus box tare,
// capped at zero.
func (c *Calculator) NetWeight(grossWeight, pattiWeight float64, boxCount int) float64 {
	result := grossWeight - pattiWeight - float64(boxCount)*c.boxWeightKg
	if result < 0 {
		return 0
	}
	return result
}

// DandaWeight computes the danda allowance from the base net weight.
func (c *Calculator) DandaWeight(netWeight float64) float64 {
	return netWeight * c.dandaPercent
}

// FinalNetWeight computes the chargeable weight: net plus danda plus tut.
func (c *Calculator) FinalNetWeight(netWeight, dandaWeight, tutWastage float64) float64 {
	return netWeight + dandaWeight + tutWastage
}

// TotalAmount computes the gross payable amount.
func (c *Calculator) TotalAmount(finalNetWeight, ratePerKg float64) float64 {
	return finalNetWeight * ratePerKg
}

// NetAmount computes the payable amount after the majuri labor deduction,
// capped at zero.
func (c *Calculator) NetAmount(totalAmount, majuri float64) float64 {
	result := totalAmount - majuri
	if result < 0 {
		return 0
	}
	return result
}

// Derive runs the full pipeline. Calling Derive twice with identical input
// yields bit-identical output.
func (c *Calculator) Derive(in Input) Derived {
	netWeight := c.NetWeight(in.GrossWeight, in.PattiWeight, in.BoxCount)
	dandaWeight := c.DandaWeight(netWeight)
	finalNetWeight := c.FinalNetWeight(netWeight, dandaWeight, in.TutWastage)
	totalAmount := c.TotalAmount(finalNetWeight, in.RatePerKg)
	netAmount := c.NetAmount(totalAmount, in.Majuri)

	return Derived{
		NetWeight:      netWeight,
		DandaWeight:    dandaWeight,
		FinalNetWeight: finalNetWeight,
		TotalAmount:    totalAmount,
		NetAmount:      netAmount,
	}
}

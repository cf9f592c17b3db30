// Package pricing implements the spray-price formula shared by the quote
// endpoint, the booking create handler and the chatbot composer.
package pricing

// DepositRate is the fraction of the total collected up front.
const DepositRate = 0.3

// Quote is the computed price breakdown for a spraying request.
type Quote struct {
	AreaRai    float64 `json:"area_rai"`
	CropRate   float64 `json:"crop_rate"`
	SprayRate  float64 `json:"spray_rate"`
	TotalPrice float64 `json:"total_price"`
	Deposit    float64 `json:"deposit"`
}

// Calculate computes total = area * (cropRate + sprayRate) and a 30%
// deposit. Values propagate as float64 with no currency rounding; totals
// are rendered with separators only at the presentation layer.
func Calculate(areaRai, cropRate, sprayRate float64) Quote {
	total := areaRai * (cropRate + sprayRate)
	return Quote{
		AreaRai:    areaRai,
		CropRate:   cropRate,
		SprayRate:  sprayRate,
		TotalPrice: total,
		Deposit:    total * DepositRate,
	}
}

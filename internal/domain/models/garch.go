package models

// Requests for the GARCH analysis endpoints. Defined in domain for
// consistency and reuse; defaults and constraints mirror the wire contract.

type FitRequest struct {
	SeriesID  string    `json:"series_id" validate:"required"`
	Values    []float64 `json:"values" validate:"required,min=2"`
	P         int       `json:"p" default:"1" validate:"gte=1,lte=5"`
	Q         int       `json:"q" default:"1" validate:"gte=1,lte=5"`
	Dist      string    `json:"dist" default:"t" validate:"oneof=normal t skewt"`
	MeanModel string    `json:"mean_model" default:"Constant" validate:"oneof=Constant Zero ARX"`
}

// AnomalyRequest uses pointer fields where zero is either a legal
// observation (a level can be 0) or must fail validation instead of being
// overwritten by the defaults pass, so presence is checked on the pointer.
type AnomalyRequest struct {
	CurrentValue     *float64  `json:"current_value" validate:"required"`
	HistoricalValues []float64 `json:"historical_values" validate:"required,min=2"`
	ConfidenceLevel  *float64  `json:"confidence_level" default:"0.95" validate:"required,gte=0.9,lte=0.99"`
}

type ForecastRequest struct {
	Values  []float64 `json:"values" validate:"required,min=2"`
	Horizon int       `json:"horizon" default:"5" validate:"gte=1,lte=30"`
}

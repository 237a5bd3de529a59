package http

// APIResponse wraps transport-level errors. Domain endpoints write their
// payloads flat; only schema/binding failures use this envelope.
type APIResponse struct {
	Status  int         `json:"status" example:"400"`
	Message string      `json:"message" example:"Bad Request"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"values"`
	Message string                 `json:"message,omitempty" example:"values is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

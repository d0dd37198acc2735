package calculator

import "time"

// CalculationRequest is the JSON body for POST /api/calculator/calculate.
type CalculationRequest struct {
	FirstNumber  float64 `json:"firstNumber"`
	SecondNumber float64 `json:"secondNumber"`
	Operation    string  `json:"operation"` // "Add", "Subtract", "Multiply", "Divide" (any case)
}

// CalculationResponse is the JSON response for every calculation endpoint.
// When IsSuccess is false, Result is zero and ErrorMessage is set.
type CalculationResponse struct {
	FirstNumber  float64   `json:"firstNumber"`
	SecondNumber float64   `json:"secondNumber"`
	Operation    string    `json:"operation"`
	Result       float64   `json:"result"`
	Timestamp    time.Time `json:"timestamp"`
	IsSuccess    bool      `json:"isSuccess"`
	ErrorMessage *string   `json:"errorMessage"`
}

// HealthResponse is the JSON response for GET /api/calculator/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

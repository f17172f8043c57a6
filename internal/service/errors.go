package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when credentials are wrong or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidPhone is returned when a lead phone number fails the German format check
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrUnknownCity is returned when a lead names a city outside the service area
	ErrUnknownCity = errors.New("unknown city")

	// ErrServiceNotFound is returned when a lead references a nonexistent service
	ErrServiceNotFound = errors.New("service not found")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrCompanyNotFound is returned when a company is not found
	ErrCompanyNotFound = errors.New("company not found")
)

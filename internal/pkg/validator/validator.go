package validator

// Validator validates tagged structs.
type Validator interface {
	// Validate checks data and returns an error describing the violations.
	Validate(data any) error
}

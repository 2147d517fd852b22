package neat

import "errors"

var (
	// ErrMissingConnection is returned when a genome is asked about a gene it does not express.
	ErrMissingConnection = errors.New("missing genotype entry")
	// ErrInputSize is returned when a forward pass receives the wrong number of inputs.
	ErrInputSize = errors.New("input size mismatch")
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("config error")
)

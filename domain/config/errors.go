package config

import "errors"

// Domain errors for scenario operations.
var (
	// ErrConfigNotFound indicates the scenario file was not found.
	ErrConfigNotFound = errors.New("scenario file not found")

	// ErrInvalidFormat indicates the scenario could not be decoded.
	ErrInvalidFormat = errors.New("invalid scenario format")

	// ErrUnsupportedFormat indicates the file format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported scenario format")

	// ErrValidationFailed indicates scenario validation failed.
	ErrValidationFailed = errors.New("scenario validation failed")

	// ErrMissingEnvVar indicates a required environment variable is not set.
	ErrMissingEnvVar = errors.New("required environment variable not set")

	// ErrBuildFailed indicates the scenario could not be turned into planning values.
	ErrBuildFailed = errors.New("failed to build scenario")
)

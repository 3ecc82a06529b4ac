package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrReadingSources is returned when a source chain file cannot be read.
	ErrReadingSources = errors.New("failed to read tenant sources file")

	// ErrParsingSources is returned when a source chain file is not valid YAML.
	ErrParsingSources = errors.New("failed to parse tenant sources file")

	// ErrNoSources is returned when a source chain file defines no sources.
	ErrNoSources = errors.New("tenant sources file defines no sources")
)

package models

import "fmt"

// DataSourceError reports a missing, unreadable, or malformed corpus.
// It is fatal to initialization; no partial corpus is ever used.
type DataSourceError struct {
	Source string
	Reason string
	Err    error
}

func (e *DataSourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data source %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("data source %s: %s", e.Source, e.Reason)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// ConfigurationError reports invalid training configuration, such as a
// cluster count outside [1, number of recipes].
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Field, e.Reason)
}

// EmptyClusterError reports a trained cluster with no members. This signals
// degenerate clustering (k too large for the data); the caller should retrain
// with a different k or seed rather than paper over it with a default.
type EmptyClusterError struct {
	ClusterID int
}

func (e *EmptyClusterError) Error() string {
	return fmt.Sprintf("cluster %d has no member recipes", e.ClusterID)
}

// InvalidInputError reports a malformed per-request input.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

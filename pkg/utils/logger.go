package utils

import "go.uber.org/zap"

// NewLogger returns the zap logger the server and CLI share. Debug mode uses
// the development config (console encoding, debug level) for watching dataset
// reloads and watcher events; otherwise the production config (JSON, info).
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger: human-readable in debug mode, JSON
// production encoding otherwise.
func New(mode string) (*zap.Logger, error) {
	if mode == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import "go.uber.org/zap"

// newLogger returns a zap logger writing to stderr. With debug it uses the
// development config (human-readable, debug level); otherwise the production
// config at warn level, so a normal run only reports problems.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

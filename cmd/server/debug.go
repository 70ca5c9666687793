//go:build debug
// +build debug

package main

import "github.com/loglumen/loglumen-server/pkg/logger"

func init() {
	// Enable debug logging when built with debug tag
	logger.SetDebug()
}

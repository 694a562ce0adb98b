// Package config provides configuration loading for cells programs.
//
// The configuration is stored in cells.yaml, cells.yml or cells.json in the
// working directory. Environment variables override file values.
//
// # Configuration File Structure
//
//	debug: false
//	performanceLints: true
//	dependentLintThreshold: 20
//	logTicks: false
//	logLevel: info
//	listen: localhost:8080
//	metricsPath: /metrics
//	tracerName: cells
//
// # Environment
//
//	CELLS_DEBUG=1            turns on reactive.DebugMode
//	CELLS_LISTEN=:9000       overrides listen
//	CELLS_LOG_LEVEL=debug    overrides logLevel
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Apply()
package config

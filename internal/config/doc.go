// Package config handles configuration loading for the console.
//
// # Overview
//
// Configuration is loaded from a YAML file with environment variable
// expansion. The package provides validation and sensible defaults; a
// missing file falls back to Default().
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from DESK_CONFIG environment variable
//  2. ~/.config/bankdesk/console.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	server:
//	  token: "${DESK_TOKEN}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	chat:
//	  request_timeout: "30s"
package config

// Package config loads and merges the runtime configuration of the auth and
// todo services and of the programmatic client adapter.
//
// Values are collected from three sources and merged in priority order
// (environment variables, command-line flags, optional JSON file), then
// validated before the application starts.
package config

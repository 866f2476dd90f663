// Package server wires and runs an HTTP server around a service router.
//
// It provides orchestration for the server lifecycle, including startup,
// signal handling, and graceful shutdown.
package server

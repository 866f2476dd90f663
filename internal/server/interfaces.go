package server

// Server is the lifecycle contract shared by the auth and todo HTTP
// servers: both binaries build their chi router, hand it to the server and
// block in [RunServer] until shutdown is requested.
//
// Implementations release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}

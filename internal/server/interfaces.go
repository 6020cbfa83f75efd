package server

// Server is the lifecycle contract shared by the transport servers.
// RunServer blocks until shutdown is requested; Shutdown drains in-flight
// work and releases the listener.
type Server interface {
	RunServer()
	Shutdown()
}

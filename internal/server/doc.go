// Package server runs the enabled transport surfaces (HTTP, gRPC) and
// ties their lifecycle to process signals: both start together and both
// drain gracefully on SIGTERM/SIGINT/SIGQUIT.
package server

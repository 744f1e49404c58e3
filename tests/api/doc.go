// Package api contains tests that run against a real backend server.
//
// These tests require the backend server to be running before execution.
// They exercise the public mail lifecycle endpoints end to end.
//
// Usage:
//
//	# Start the backend server first
//	go run cmd/server/main.go
//
//	# Then run the API tests
//	go test -tags=api ./tests/api/... -v
//
// Environment Variables:
//
//	API_BASE_URL - Base URL of the API server (default: http://localhost:8080)
//	API_KEY      - API key for authentication (empty = auth disabled)
package api

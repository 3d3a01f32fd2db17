// Package mocks provides centralized mock implementations for testing.
//
// Each mock mirrors one interface from the store or service packages:
// function fields override individual methods per test, and an
// in-memory default implementation backs everything left unset. Tests
// import these instead of redefining inline fakes per file.
package mocks

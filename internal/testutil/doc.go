// Package testutil provides helpers shared by package tests: a slog handler
// that records diagnostics so tests can count them, and a fixed session
// generator for deterministic journal output.
package testutil

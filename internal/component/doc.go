// Package component defines the concrete replicated component kinds.
//
// Each kind owns a property.Store built from a fixed schema and exposes
// typed accessor pairs over it. Accessors use the tolerant policy: a value
// of the wrong type reads as the type's default and logs once.
package component

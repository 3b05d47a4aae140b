// Package wire models the untyped, self-describing values carried by the
// real-time transport.
//
// A wire Value is a scalar, an ordered Array, or a map keyed by strings
// (StringMap) or small integers (IntMap). The package converts between wire
// values and transport-native Go values, encodes them as deterministic CBOR
// for binary transports and storage, and parses JSON text for text
// transports and fixtures.
//
// The package does not interpret type tags; see package mcs for that.
package wire

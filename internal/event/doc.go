// Package event reconstructs stable application event records from the
// evolving positional wire encoding.
//
// Every event arrives as [EventName, SenderId, RecipientId, ComponentsMap].
// ParsePayload validates that envelope; per-event decoders then read the
// Component Elements by position and, where the wire layout has changed over
// time, detect the generation from the type tag found at a fixed position.
//
// Failures at required positions surface as *DecodeError and drop the whole
// event. Failures in optional, later-added fields are logged and leave the
// field at its default.
package event

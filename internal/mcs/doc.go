// Package mcs decodes and encodes Component Elements, the typed unit of
// data on the replication wire.
//
// Every element is a two-element sequence [TypeId, [Value]]: a numeric
// DataType tag from a fixed catalogue and the payload wrapped in a singleton
// array. STRING_DICTIONARY and UINT16_DICTIONARY payloads hold further
// elements, so decoding is recursive.
//
// The decoder only knows how to turn one tagged element into one native
// value. Reading fields by position and reconciling schema generations is
// the job of package event. ApplyComponentUpdate and EncodeComponentUpdate
// bridge elements to a property.Store.
package mcs

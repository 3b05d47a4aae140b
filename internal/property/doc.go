// Package property provides the keyed property store that holds one
// component's replicated state.
//
// A Schema declares, per component kind, the stable integer keys and a typed
// default for each. NewSchema rejects layouts that could leave a key without
// a typed value, so Store.Get never sees an unpopulated declared key.
package property

// Package catalog holds the authoritative property key layouts of every
// component kind, declared in CUE.
//
// The layouts are part of the wire contract: keys are positional and a
// retired key stays behind as a RESERVED gap. Verify checks a Go schema
// against its declared layout so that a key added to one side only fails at
// test time instead of decoding into a wrong-typed default at runtime.
package catalog

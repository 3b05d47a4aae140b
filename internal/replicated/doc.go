// Package replicated provides the tagged value that every replicated
// property is stored as.
//
// A Value carries a Type discriminant plus exactly one payload drawn from a
// closed catalogue: bool, int64, float32, string, Vector2, Vector3, Vector4
// and StringMap. The zero Value is InvalidType and carries no payload.
//
// Fields are unexported, so the only way to build a Value is through the
// New* constructors or the Set* methods, and the discriminant always matches
// the payload.
//
// # Access policies
//
// Each payload type has two accessors:
//   - Strict (Int, Str, Vector3, ...) returns a *TypeMismatchError when the
//     discriminant does not match.
//   - Tolerant (IntOr, StrOr, Vector3Or, ...) logs one error record through the
//     supplied *slog.Logger and returns the documented default for that type.
//
// Tolerant accessors exist for per-frame component code where a fault is
// worse than a momentarily wrong default.
package replicated

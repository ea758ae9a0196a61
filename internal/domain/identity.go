package domain

import (
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Wrapper is implemented by every type that adapts a native object into the
// CRS object model. Delegate returns the underlying native object, letting
// callers unwrap back to the reader's representation.
type Wrapper interface {
	Delegate() any
}

// IdentityKeyer lets a delegate supply a stable key for identity hashing.
// Delegates that do not implement it are keyed by their printed form.
type IdentityKeyer interface {
	IdentityKey() string
}

// Same reports whether two wrappers are equal under the delegate policy:
// same concrete type and equal delegates. Delegates compare by value when
// comparable (pointer identity for reader-owned objects, value equality for
// constant sentinels).
func Same(a, b Wrapper) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	da, db := a.Delegate(), b.Delegate()
	if da == nil || db == nil {
		return da == nil && db == nil
	}
	if reflect.TypeOf(da).Comparable() && reflect.TypeOf(db).Comparable() {
		return da == db
	}
	return reflect.DeepEqual(da, db)
}

// Hash returns the identity hash of a wrapper: the bit-inverted hash of its
// delegate, so that a wrapper and its delegate stored in the same structure
// land in different buckets.
func Hash(w Wrapper) uint64 {
	if w == nil {
		return 0
	}
	return ^DelegateHash(w.Delegate())
}

// DelegateHash returns the 64-bit identity hash of a delegate value.
func DelegateHash(d any) uint64 {
	switch v := d.(type) {
	case nil:
		return 0
	case IdentityKeyer:
		return xxhash.Sum64String(v.IdentityKey())
	case string:
		return xxhash.Sum64String(v)
	case fmt.Stringer:
		return xxhash.Sum64String(v.String())
	default:
		return xxhash.Sum64String(fmt.Sprintf("%T %v", d, d))
	}
}

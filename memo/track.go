package memo

import (
	"fmt"
	"reflect"
)

// Trackable is implemented by every input that can be memoized.
//
// Key feeds the identity-relevant part of the input into h. It must be
// deterministic for inputs that are equal for caching purposes.
//
// Matches reports whether the output computed earlier, under the constraint c
// returned by the memoized function, is still valid for this input. It must be
// a pure predicate.
type Trackable[C any] interface {
	Key(h *Hasher)
	Matches(c C) bool
}

// Unit is the trivial constraint. It is satisfied by every input.
type Unit = struct{}

// Keyer lets a value decide how it is hashed by Exact.
type Keyer interface {
	HashKey(h *Hasher)
}

var _ Trackable[Unit] = Exact[int]{}

// Exact memoizes on the whole value: equal values share a digest and any
// digest hit is accepted. This is classic exact-equality memoization.
type Exact[T any] struct {
	Value T
}

// Exactly wraps v for exact-equality memoization.
func Exactly[T any](v T) Exact[T] {
	return Exact[T]{Value: v}
}

// Key hashes the value. When T is an interface type the dynamic type is
// written first, so int(1) and int64(1) stay apart.
func (e Exact[T]) Key(h *Hasher) {
	if reflect.TypeFor[T]().Kind() == reflect.Interface {
		h.WriteString(fmt.Sprintf("%T", e.Value))
	}
	hashValue(h, e.Value)
}

func (Exact[T]) Matches(Unit) bool { return true }

var _ Trackable[Unit] = Ignore[int]{}

// Ignore carries a value the memoized function needs at hand but whose
// content never affects the output. It adds nothing to the key and always
// matches.
type Ignore[T any] struct {
	Value T
}

// Ignored wraps v so that it is passed along but never keyed.
func Ignored[T any](v T) Ignore[T] {
	return Ignore[T]{Value: v}
}

func (Ignore[T]) Key(*Hasher) {}

func (Ignore[T]) Matches(Unit) bool { return true }

// hashValue writes a structural representation of v.
// Scalars, strings and byte slices are written directly and Keyer
// implementations speak for themselves. Anything else, Stringers included, is
// rendered with %#v, so pointers inside such values hash by address.
func hashValue(h *Hasher, v any) {
	switch v := v.(type) {
	case nil:
		h.WriteUint64(0)
	case Keyer:
		v.HashKey(h)
	case string:
		h.WriteString(v)
	case []byte:
		h.WriteBytes(v)
	case bool:
		h.WriteBool(v)
	case int:
		h.WriteInt(v)
	case int8:
		h.WriteInt64(int64(v))
	case int16:
		h.WriteInt64(int64(v))
	case int32:
		h.WriteInt64(int64(v))
	case int64:
		h.WriteInt64(v)
	case uint:
		h.WriteUint64(uint64(v))
	case uint8:
		h.WriteUint64(uint64(v))
	case uint16:
		h.WriteUint64(uint64(v))
	case uint32:
		h.WriteUint64(uint64(v))
	case uint64:
		h.WriteUint64(v)
	case uintptr:
		h.WriteUint64(uint64(v))
	case float32:
		h.WriteFloat64(float64(v))
	case float64:
		h.WriteFloat64(v)
	default:
		h.WriteString(fmt.Sprintf("%#v", v))
	}
}

package memo

import (
	"reflect"

	"github.com/on-the-ground/memo_ive_go/internal/helper"
)

// payload is what an entry stores: the output together with the constraint
// that was returned for the input that produced it.
type payload[O, C any] struct {
	output     O
	constraint C
}

// Cloner is implemented by outputs whose plain Go copy would alias the cached
// value (slices, maps, pointers). Memoized returns Clone() of such outputs.
type Cloner[O any] interface {
	Clone() O
}

// Memoized calls f through the cache c.
//
// On a hit (same digest, same output and constraint types, and
// input.Matches(stored constraint)) the cached output is returned and f is not
// called. Otherwise f runs and its result replaces whatever the digest held.
//
// f is identified by its code pointer, so it must be a top-level function or
// a closure without captured state. Method values share the code pointer of
// their method: a.Method and b.Method would read each other's entries. Wrap
// closures and method values with NewFunc instead.
func Memoized[I Trackable[C], C, O any](c *Cache, input I, f func(I) (O, C)) O {
	return memoize(c, codeIdentity(f), input, f, copyOf[O])
}

// MemoizedRef is Memoized without the copy: g observes the cached or freshly
// computed output through a pointer and its result is returned. g runs exactly
// once per call and must not retain or modify the pointee.
func MemoizedRef[I Trackable[C], C, O, R any](c *Cache, input I, f func(I) (O, C), g func(*O) R) R {
	return memoize(c, codeIdentity(f), input, f, g)
}

func copyOf[O any](o *O) O {
	if cl, ok := any(*o).(Cloner[O]); ok {
		return cl.Clone()
	}
	return *o
}

// identity seeds the digest with which function is being memoized.
type identity func(h *Hasher)

const (
	identityCode byte = iota + 1
	identityUUID
)

func codeIdentity(f any) identity {
	ptr := uint64(reflect.ValueOf(f).Pointer())
	return func(h *Hasher) {
		_, _ = h.Write([]byte{identityCode})
		h.WriteUint64(ptr)
	}
}

func digestOf[C any](id identity, input Trackable[C]) uint64 {
	h := newHasher()
	id(h)
	input.Key(h)
	return h.Sum64()
}

func memoize[I Trackable[C], C, O, R any](
	c *Cache,
	id identity,
	input I,
	f func(I) (O, C),
	g func(*O) R,
) R {
	digest := digestOf[C](id, input)

	if e, ok := c.get(digest); ok {
		if p, ok := helper.TypedValueOf[*payload[O, C]](e.data); ok && input.Matches(p.constraint) {
			c.hit(e)
			return g(&p.output)
		}
		c.mismatch(digest)
	}

	c.stats.Misses++
	output, constraint := f(input)
	p := &payload[O, C]{output: output, constraint: constraint}
	c.insert(digest, p)
	return g(&p.output)
}

package memo

import (
	"github.com/google/uuid"
)

// Func is a memoizable function with its own identity.
//
// Every NewFunc call gets a fresh UUID, so two closures built from the same
// function literal never share cache entries. Create a Func once, next to the
// state it captures, and reuse it.
type Func[I Trackable[C], C, O any] struct {
	id uuid.UUID
	fn func(I) (O, C)
}

func NewFunc[I Trackable[C], C, O any](fn func(I) (O, C)) *Func[I, C, O] {
	return &Func[I, C, O]{id: uuid.New(), fn: fn}
}

func (f *Func[I, C, O]) ID() uuid.UUID { return f.id }

// Call is Memoized for f.
func (f *Func[I, C, O]) Call(c *Cache, input I) O {
	return memoize(c, f.identity(), input, f.fn, copyOf[O])
}

// CallRef is MemoizedRef for a Func.
func CallRef[I Trackable[C], C, O, R any](c *Cache, f *Func[I, C, O], input I, g func(*O) R) R {
	return memoize(c, f.identity(), input, f.fn, g)
}

func (f *Func[I, C, O]) identity() identity {
	id := f.id
	return func(h *Hasher) {
		_, _ = h.Write([]byte{identityUUID})
		_, _ = h.Write(id[:])
	}
}

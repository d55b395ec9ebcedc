package memo

var _ Trackable[Unit] = Tuple0{}

// Tuple0 is the empty input. Its digest is constant, so a function memoized
// on it is computed at most once per cache.
type Tuple0 struct{}

func (Tuple0) Key(*Hasher) {}

func (Tuple0) Matches(Unit) bool { return true }

// Tuple2 is a product of two trackable inputs.
type Tuple2[A Trackable[CA], B Trackable[CB], CA, CB any] struct {
	V1 A
	V2 B
}

// Constraint2 is the constraint of a Tuple2: one constraint per field.
type Constraint2[CA, CB any] struct {
	C1 CA
	C2 CB
}

// Tuple2Of builds a Tuple2, inferring the constraint types from the fields.
func Tuple2Of[A Trackable[CA], B Trackable[CB], CA, CB any](a A, b B) Tuple2[A, B, CA, CB] {
	return Tuple2[A, B, CA, CB]{V1: a, V2: b}
}

// Constraint2Of builds the constraint a Tuple2 input is matched against.
func Constraint2Of[CA, CB any](c1 CA, c2 CB) Constraint2[CA, CB] {
	return Constraint2[CA, CB]{C1: c1, C2: c2}
}

func (t Tuple2[A, B, CA, CB]) Key(h *Hasher) {
	t.V1.Key(h)
	t.V2.Key(h)
}

func (t Tuple2[A, B, CA, CB]) Matches(c Constraint2[CA, CB]) bool {
	return t.V1.Matches(c.C1) && t.V2.Matches(c.C2)
}

// Tuple3 is a product of three trackable inputs.
type Tuple3[A Trackable[CA], B Trackable[CB], D Trackable[CD], CA, CB, CD any] struct {
	V1 A
	V2 B
	V3 D
}

// Constraint3 is the constraint of a Tuple3.
type Constraint3[CA, CB, CD any] struct {
	C1 CA
	C2 CB
	C3 CD
}

// Tuple3Of builds a Tuple3, inferring the constraint types from the fields.
func Tuple3Of[A Trackable[CA], B Trackable[CB], D Trackable[CD], CA, CB, CD any](a A, b B, d D) Tuple3[A, B, D, CA, CB, CD] {
	return Tuple3[A, B, D, CA, CB, CD]{V1: a, V2: b, V3: d}
}

// Constraint3Of builds the constraint a Tuple3 input is matched against.
func Constraint3Of[CA, CB, CD any](c1 CA, c2 CB, c3 CD) Constraint3[CA, CB, CD] {
	return Constraint3[CA, CB, CD]{C1: c1, C2: c2, C3: c3}
}

func (t Tuple3[A, B, D, CA, CB, CD]) Key(h *Hasher) {
	t.V1.Key(h)
	t.V2.Key(h)
	t.V3.Key(h)
}

func (t Tuple3[A, B, D, CA, CB, CD]) Matches(c Constraint3[CA, CB, CD]) bool {
	return t.V1.Matches(c.C1) && t.V2.Matches(c.C2) && t.V3.Matches(c.C3)
}

// Tuple4 is a product of four trackable inputs.
type Tuple4[A Trackable[CA], B Trackable[CB], D Trackable[CD], E Trackable[CE], CA, CB, CD, CE any] struct {
	V1 A
	V2 B
	V3 D
	V4 E
}

// Constraint4 is the constraint of a Tuple4.
type Constraint4[CA, CB, CD, CE any] struct {
	C1 CA
	C2 CB
	C3 CD
	C4 CE
}

// Tuple4Of builds a Tuple4, inferring the constraint types from the fields.
func Tuple4Of[A Trackable[CA], B Trackable[CB], D Trackable[CD], E Trackable[CE], CA, CB, CD, CE any](a A, b B, d D, e E) Tuple4[A, B, D, E, CA, CB, CD, CE] {
	return Tuple4[A, B, D, E, CA, CB, CD, CE]{V1: a, V2: b, V3: d, V4: e}
}

// Constraint4Of builds the constraint a Tuple4 input is matched against.
func Constraint4Of[CA, CB, CD, CE any](c1 CA, c2 CB, c3 CD, c4 CE) Constraint4[CA, CB, CD, CE] {
	return Constraint4[CA, CB, CD, CE]{C1: c1, C2: c2, C3: c3, C4: c4}
}

func (t Tuple4[A, B, D, E, CA, CB, CD, CE]) Key(h *Hasher) {
	t.V1.Key(h)
	t.V2.Key(h)
	t.V3.Key(h)
	t.V4.Key(h)
}

func (t Tuple4[A, B, D, E, CA, CB, CD, CE]) Matches(c Constraint4[CA, CB, CD, CE]) bool {
	return t.V1.Matches(c.C1) && t.V2.Matches(c.C2) && t.V3.Matches(c.C3) && t.V4.Matches(c.C4)
}

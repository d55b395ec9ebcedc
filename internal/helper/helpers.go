package helper

// TypedValueOf asserts a type-erased value to T.
// A nil value or a value of any other dynamic type yields ok == false.
func TypedValueOf[T any](raw any) (res T, ok bool) {
	res, ok = raw.(T)
	return
}

// GetTypedValueOf2 runs the getter and asserts its result to T.
// It fails closed: a missing value and a mismatched type both report ok == false.
func GetTypedValueOf2[T any](getFn func() (any, bool)) (res T, ok bool) {
	var raw any
	if raw, ok = getFn(); ok {
		res, ok = raw.(T)
	}
	return
}

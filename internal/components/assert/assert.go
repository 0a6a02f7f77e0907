package assert

// NotNil panics if `value` is nil, it is meant for collaborators passed into
// constructors where a nil value is a programming error.
func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
}

func NotEmptyStr(str string) {
	if str == "" {
		panic("expected string to be non-empty")
	}
}

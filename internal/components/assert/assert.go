package assert

// NotNil panics when value is nil, it is used on constructor arguments that
// can only be nil through a programming mistake.
func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
}

// NotEmptyStr panics when str is empty.
func NotEmptyStr(str string) {
	if str == "" {
		panic("expected string to be non-empty")
	}
}

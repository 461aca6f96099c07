package gamut

type (
	// OptionalInt is an int that may be absent, e.g. the octave of a note that
	// has not been pinned to a specific register.
	OptionalInt struct {
		value  int
		exists bool
	}
)

func NewOptionalInt(value int, exists bool) OptionalInt {
	return OptionalInt{value, exists}
}

func NewOptionalIntOf(value int) OptionalInt {
	return OptionalInt{
		value:  value,
		exists: true,
	}
}

func NewEmptyOptionalInt() OptionalInt {
	return OptionalInt{
		exists: false,
	}
}

func (i OptionalInt) Unpack() (int, bool) {
	return i.value, i.exists
}

func (i OptionalInt) Value() int {
	if !i.exists {
		panic("Access value of empty OptionalInt")
	}
	return i.value
}

func (i OptionalInt) Empty() bool {
	return !i.exists
}

func (i OptionalInt) Equals(value int) bool {
	return i.exists && i.value == value
}

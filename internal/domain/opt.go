package domain

// Opt is a value that is either present or absent. The zero Opt is absent.
type Opt[T any] struct {
	val T
	ok  bool
}

// Some returns a present Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{val: v, ok: true}
}

// None returns an absent Opt.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Get returns the held value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.val, o.ok
}

// Present reports whether the value is present.
func (o Opt[T]) Present() bool {
	return o.ok
}

// OrElse returns the held value, or def when absent.
func (o Opt[T]) OrElse(def T) T {
	if o.ok {
		return o.val
	}
	return def
}

// Cell is one table value: present text or absent.
type Cell = Opt[string]

// Text returns a present cell.
func Text(s string) Cell {
	return Some(s)
}

// Absent returns an absent cell.
func Absent() Cell {
	return Cell{}
}

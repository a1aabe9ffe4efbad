package domain

import "strconv"

// Kind is the storage type of a column.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTimestamp:
		return "timestamp"
	default:
		return "text"
	}
}

// InferKind picks the narrowest kind every present cell is canonical text for.
// Columns with no present values, or with any value whose canonical rendering
// differs from its text, are KindText; storing such a column typed would not
// round-trip byte for byte.
func InferKind(cells []Cell) Kind {
	candidates := []Kind{KindBool, KindInt, KindFloat, KindTimestamp}
	seen := false
	for _, c := range cells {
		s, ok := c.Get()
		if !ok {
			continue
		}
		seen = true
		kept := candidates[:0]
		for _, k := range candidates {
			if isCanonical(k, s) {
				kept = append(kept, k)
			}
		}
		candidates = kept
		if len(candidates) == 0 {
			return KindText
		}
	}
	if !seen {
		return KindText
	}
	return candidates[0]
}

func isCanonical(k Kind, s string) bool {
	switch k {
	case KindBool:
		return s == "true" || s == "false"
	case KindInt:
		v, err := strconv.ParseInt(s, 10, 64)
		return err == nil && FormatInt(v) == s
	case KindFloat:
		v, ok := ParseFloat(Text(s)).Get()
		return ok && FormatFloat(v) == s
	case KindTimestamp:
		// Only UTC, second-precision values survive millisecond storage.
		t, ok := ParseDate(Text(s)).Get()
		if !ok {
			return false
		}
		_, off := t.Zone()
		return off == 0 && FormatDate(t) == s
	}
	return false
}

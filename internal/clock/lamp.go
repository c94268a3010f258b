package clock

import "strings"

// Color is the state of a single lamp.
type Color int

const (
	Off Color = iota
	Red
	Yellow
)

// Row lengths.
const (
	FiveHourLamps   = 4
	OneHourLamps    = 4
	FiveMinuteLamps = 11
	OneMinuteLamps  = 4
)

// String returns the single character code of the lamp: "O", "R" or "Y".
func (c Color) String() string {
	switch c {
	case Red:
		return "R"
	case Yellow:
		return "Y"
	default:
		return "O"
	}
}

// Lit returns true if the lamp is on.
func (c Color) Lit() bool {
	return c == Red || c == Yellow
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Row is an ordered sequence of lamps.
type Row []Color

// newRow returns a row of n lamps where the first lit lamps show color.
func newRow(n, lit int, color Color) Row {
	r := make(Row, n)
	for i := 0; i < lit && i < n; i++ {
		r[i] = color
	}
	return r
}

// Lit returns the number of lamps that are on.
func (r Row) Lit() int {
	n := 0
	for _, c := range r {
		if c.Lit() {
			n++
		}
	}
	return n
}

// String renders the row as one character per lamp.
func (r Row) String() string {
	var b strings.Builder
	b.Grow(len(r))
	for _, c := range r {
		b.WriteString(c.String())
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (r Row) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

package color

import "fmt"

// NamedColor is one of the three primaries. Values outside Red..Blue are
// invalid and rejected by Named.
type NamedColor uint8

const (
	Red NamedColor = iota
	Green
	Blue
)

var namedNames = [...]string{Red: "red", Green: "green", Blue: "blue"}

func (n NamedColor) Valid() bool { return n <= Blue }

// Encode returns the single-byte discriminant of n.
func (n NamedColor) Encode() byte { return byte(n) }

func (n NamedColor) String() string {
	if !n.Valid() {
		return fmt.Sprintf("NamedColor(%d)", uint8(n))
	}
	return namedNames[n]
}

// DecodeNamed is the inverse of NamedColor.Encode.
func DecodeNamed(b byte) (NamedColor, error) {
	n := NamedColor(b)
	if !n.Valid() {
		return Red, errAt(ErrUnknownDiscriminant, 0, b)
	}
	return n, nil
}

func parseNamed(s string) (NamedColor, bool) {
	for i, name := range namedNames {
		if s == name {
			return NamedColor(i), true
		}
	}
	return Red, false
}

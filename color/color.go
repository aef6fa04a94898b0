// Package color implements a fixed-width binary encoding for a small
// tagged union of colors.
//
// Every Color encodes to exactly Size bytes:
//
//	byte 0: discriminant (0=Named, 1=Rgb, 2=Cymk)
//	byte 1: NamedColor code | r | c
//	byte 2: 0               | g | y
//	byte 3: 0               | b | m
//	byte 4: 0               | 0 | k
//
// Decode is strict: it accepts only canonical encodings, so for every
// input b that decodes to c, c.Encode() equals b. Unused payload slots
// must be zero.
package color

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is the length in bytes of every encoded Color.
const Size = 5

// Kind is the discriminant of a Color.
type Kind uint8

// Kinds double as the first byte of an encoded Color.
const (
	KindNamed Kind = iota // payload: NamedColor, then three zero bytes
	KindRGB               // payload: r, g, b, then one zero byte
	KindCYMK              // payload: c, y, m, k
)

func (k Kind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindRGB:
		return "rgb"
	case KindCYMK:
		return "cymk"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Color is a closed union over a NamedColor, an RGB triple and a CYMK
// quadruple. Build one with Named, RGB or CYMK; inspect it with Kind and
// the As* accessors. The zero Color is Named(Red).
//
// Colors are comparable with ==.
type Color struct {
	kind Kind
	p    [Size - 1]byte // payload slots; unused ones stay zero
}

// Named returns the Named variant. Panics if n is not a valid NamedColor.
func Named(n NamedColor) Color {
	if !n.Valid() {
		panic(fmt.Sprintf("color: invalid NamedColor %d", uint8(n)))
	}
	return Color{kind: KindNamed, p: [4]byte{byte(n)}}
}

// RGB returns the Rgb variant.
func RGB(r, g, b uint8) Color {
	return Color{kind: KindRGB, p: [4]byte{r, g, b}}
}

// CYMK returns the Cymk variant. Arguments follow the wire order c, y, m, k.
func CYMK(c, y, m, k uint8) Color {
	return Color{kind: KindCYMK, p: [4]byte{c, y, m, k}}
}

// Kind reports which variant c holds.
func (c Color) Kind() Kind { return c.kind }

// AsNamed returns the NamedColor and true if c is the Named variant.
func (c Color) AsNamed() (NamedColor, bool) {
	if c.kind != KindNamed {
		return Red, false
	}
	return NamedColor(c.p[0]), true
}

// AsRGB returns the components and true if c is the Rgb variant.
func (c Color) AsRGB() (r, g, b uint8, ok bool) {
	if c.kind != KindRGB {
		return 0, 0, 0, false
	}
	return c.p[0], c.p[1], c.p[2], true
}

// AsCYMK returns the components in wire order and true if c is the Cymk variant.
func (c Color) AsCYMK() (cy, y, m, k uint8, ok bool) {
	if c.kind != KindCYMK {
		return 0, 0, 0, 0, false
	}
	return c.p[0], c.p[1], c.p[2], c.p[3], true
}

// Encode returns the canonical Size-byte encoding of c.
func (c Color) Encode() [Size]byte {
	return [Size]byte{byte(c.kind), c.p[0], c.p[1], c.p[2], c.p[3]}
}

// AppendEncode appends the canonical encoding of c to dst.
func (c Color) AppendEncode(dst []byte) []byte {
	return append(dst, byte(c.kind), c.p[0], c.p[1], c.p[2], c.p[3])
}

// Decode parses a canonical encoding. On failure it returns the zero
// Color and a *DecodeError whose Err is one of the Err* classes.
func Decode(b []byte) (Color, error) {
	if len(b) != Size {
		return Color{}, &DecodeError{Err: ErrWrongLength, Offset: -1, Got: len(b)}
	}
	switch Kind(b[0]) {
	case KindNamed:
		for i := 2; i < Size; i++ {
			if b[i] != 0 {
				return Color{}, errAt(ErrMalformedPadding, i, b[i])
			}
		}
		n, err := DecodeNamed(b[1])
		if err != nil {
			return Color{}, errAt(ErrInvalidNamedColor, 1, b[1])
		}
		return Named(n), nil
	case KindRGB:
		if b[4] != 0 {
			return Color{}, errAt(ErrMalformedPadding, 4, b[4])
		}
		return RGB(b[1], b[2], b[3]), nil
	case KindCYMK:
		return CYMK(b[1], b[2], b[3], b[4]), nil
	default:
		return Color{}, errAt(ErrUnknownDiscriminant, 0, b[0])
	}
}

// String renders c as "red", "rgb(10,20,30)" or "cymk(1,2,3,4)".
func (c Color) String() string {
	switch c.kind {
	case KindNamed:
		return NamedColor(c.p[0]).String()
	case KindRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.p[0], c.p[1], c.p[2])
	default:
		return fmt.Sprintf("cymk(%d,%d,%d,%d)", c.p[0], c.p[1], c.p[2], c.p[3])
	}
}

// ParseColor is the inverse of Color.String.
func ParseColor(s string) (Color, error) {
	if n, ok := parseNamed(s); ok {
		return Named(n), nil
	}
	if args, ok := callArgs(s, "rgb", 3); ok {
		return RGB(args[0], args[1], args[2]), nil
	}
	if args, ok := callArgs(s, "cymk", 4); ok {
		return CYMK(args[0], args[1], args[2], args[3]), nil
	}
	return Color{}, fmt.Errorf("color: cannot parse %q", s)
}

// callArgs matches name(a,b,...) with exactly n decimal byte arguments.
func callArgs(s, name string, n int) ([]uint8, bool) {
	body, ok := strings.CutPrefix(s, name+"(")
	if !ok {
		return nil, false
	}
	body, ok = strings.CutSuffix(body, ")")
	if !ok {
		return nil, false
	}
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return nil, false
	}
	out := make([]uint8, n)
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return nil, false
		}
		out[i] = uint8(v)
	}
	return out, true
}

func (c Color) MarshalBinary() ([]byte, error) {
	return c.AppendEncode(make([]byte, 0, Size)), nil
}

func (c *Color) UnmarshalBinary(b []byte) error {
	v, err := Decode(b)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

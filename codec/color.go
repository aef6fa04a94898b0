package codec

import "github.com/unkn0wn-root/colorwire/color"

// Color is the canonical 5-byte codec for color.Color. Decode is strict
// and returns a *color.DecodeError for any non-canonical input.
// The zero value is ready to use.
type Color struct{}

var _ Codec[color.Color] = Color{}

func (Color) Encode(c color.Color) ([]byte, error) {
	return c.AppendEncode(make([]byte, 0, color.Size)), nil
}

func (Color) Decode(b []byte) (color.Color, error) { return color.Decode(b) }

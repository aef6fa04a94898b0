package codec

import (
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/unkn0wn-root/colorwire/color"
)

var bytesValue = NewProtobuf(func() *wrapperspb.BytesValue { return new(wrapperspb.BytesValue) })

// ColorProto stores a color as a google.protobuf.BytesValue holding its
// canonical 5-byte form, so protobuf consumers sharing the provider can
// read records without this package. The zero value is ready to use.
type ColorProto struct{}

var _ Codec[color.Color] = ColorProto{}

func (ColorProto) Encode(c color.Color) ([]byte, error) {
	e := c.Encode()
	return bytesValue.Encode(wrapperspb.Bytes(e[:]))
}

func (ColorProto) Decode(b []byte) (color.Color, error) {
	m, err := bytesValue.Decode(b)
	if err != nil {
		return color.Color{}, err
	}
	return color.Decode(m.GetValue())
}

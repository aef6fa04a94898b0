package color

import (
	"math/rand"
	"reflect"

	"github.com/unkn0wn-root/colorwire/arbitrary"
)

// ArbitraryNamed yields Red, Green or Blue uniformly.
func ArbitraryNamed() arbitrary.Gen[NamedColor] {
	return arbitrary.OneOf(
		arbitrary.Just(Red),
		arbitrary.Just(Green),
		arbitrary.Just(Blue),
	)
}

// Arbitrary picks a variant uniformly, then fills its payload.
func Arbitrary() arbitrary.Gen[Color] {
	u8 := arbitrary.Uint8()
	return arbitrary.OneOf(
		arbitrary.Map(ArbitraryNamed(), Named),
		func(r *rand.Rand) Color { return RGB(u8(r), u8(r), u8(r)) },
		func(r *rand.Rand) Color { return CYMK(u8(r), u8(r), u8(r), u8(r)) },
	)
}

// Generate implements quick.Generator.
func (NamedColor) Generate(r *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(ArbitraryNamed()(r))
}

// Generate implements quick.Generator.
func (Color) Generate(r *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(Arbitrary()(r))
}

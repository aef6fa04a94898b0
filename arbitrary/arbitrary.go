// Package arbitrary builds random values for property tests.
//
// A Gen is a plain function from a random source to a value. Composite
// generators are built by composing smaller ones: pick a variant with
// OneOf, then generate its fields.
//
// Gens take a *math/rand.Rand so they plug straight into testing/quick:
//
//	func (Thing) Generate(r *rand.Rand, _ int) reflect.Value {
//	    return reflect.ValueOf(thingGen(r))
//	}
package arbitrary

import (
	"math/rand"
	"unicode/utf8"
)

// Gen produces a value of type T from r.
type Gen[T any] func(r *rand.Rand) T

// Just always returns v.
func Just[T any](v T) Gen[T] {
	return func(*rand.Rand) T { return v }
}

// OneOf picks one of gens uniformly and delegates to it.
// Panics if gens is empty.
func OneOf[T any](gens ...Gen[T]) Gen[T] {
	if len(gens) == 0 {
		panic("arbitrary: OneOf needs at least one generator")
	}
	return func(r *rand.Rand) T {
		return gens[r.Intn(len(gens))](r)
	}
}

// Map transforms the output of g with f.
func Map[T, U any](g Gen[T], f func(T) U) Gen[U] {
	return func(r *rand.Rand) U { return f(g(r)) }
}

// Uint8 yields any byte value.
func Uint8() Gen[uint8] {
	return func(r *rand.Rand) uint8 { return uint8(r.Intn(256)) }
}

// IntRange yields an int in [lo, hi]. Panics if hi < lo.
func IntRange(lo, hi int) Gen[int] {
	if hi < lo {
		panic("arbitrary: IntRange with hi < lo")
	}
	return func(r *rand.Rand) int { return lo + r.Intn(hi-lo+1) }
}

// Bytes yields a byte slice whose length is in [minLen, maxLen].
func Bytes(minLen, maxLen int) Gen[[]byte] {
	n := IntRange(minLen, maxLen)
	return func(r *rand.Rand) []byte {
		b := make([]byte, n(r))
		for i := range b {
			b[i] = byte(r.Intn(256))
		}
		return b
	}
}

// String yields a valid UTF-8 string of at most maxRunes runes.
// Surrogate halves are never produced, so the output survives any
// serializer that validates or normalizes UTF-8.
func String(maxRunes int) Gen[string] {
	n := IntRange(0, maxRunes)
	return func(r *rand.Rand) string {
		buf := make([]byte, 0, maxRunes)
		for i, l := 0, n(r); i < l; i++ {
			buf = utf8.AppendRune(buf, runeOf(r))
		}
		return string(buf)
	}
}

// runeOf mostly yields ASCII, with a tail over the rest of the scalar range.
func runeOf(r *rand.Rand) rune {
	switch r.Intn(4) {
	case 0, 1:
		return rune(r.Intn(0x80))
	case 2:
		return rune(0x80 + r.Intn(0xD800-0x80))
	default:
		return rune(0xE000 + r.Intn(utf8.MaxRune-0xE000+1))
	}
}

// SliceOf yields a slice of elem values with length in [minLen, maxLen].
// The result is never nil.
func SliceOf[T any](elem Gen[T], minLen, maxLen int) Gen[[]T] {
	n := IntRange(minLen, maxLen)
	return func(r *rand.Rand) []T {
		out := make([]T, n(r))
		for i := range out {
			out[i] = elem(r)
		}
		return out
	}
}

// MapOf yields a map with up to maxLen entries. Duplicate keys collapse,
// so the map may hold fewer entries than drawn.
func MapOf[K comparable, V any](key Gen[K], val Gen[V], maxLen int) Gen[map[K]V] {
	n := IntRange(0, maxLen)
	return func(r *rand.Rand) map[K]V {
		l := n(r)
		out := make(map[K]V, l)
		for i := 0; i < l; i++ {
			out[key(r)] = val(r)
		}
		return out
	}
}

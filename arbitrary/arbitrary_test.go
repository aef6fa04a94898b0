package arbitrary

import (
	"math/rand"
	"testing"
	"unicode/utf8"
)

func newRand() *rand.Rand { return rand.New(rand.NewSource(1)) }

func TestBytesLengthBounds(t *testing.T) {
	r := newRand()
	g := Bytes(2, 6)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		b := g(r)
		if len(b) < 2 || len(b) > 6 {
			t.Fatalf("len out of bounds: %d", len(b))
		}
		seen[len(b)] = true
	}
	for n := 2; n <= 6; n++ {
		if !seen[n] {
			t.Fatalf("length %d never produced", n)
		}
	}
}

func TestStringIsValidUTF8(t *testing.T) {
	r := newRand()
	g := String(32)
	for i := 0; i < 2000; i++ {
		s := g(r)
		if !utf8.ValidString(s) {
			t.Fatalf("invalid utf-8: %q", s)
		}
		if n := utf8.RuneCountInString(s); n > 32 {
			t.Fatalf("too many runes: %d", n)
		}
	}
}

func TestOneOfCoversAllVariants(t *testing.T) {
	r := newRand()
	g := OneOf(Just("a"), Just("b"), Just("c"))
	seen := map[string]int{}
	for i := 0; i < 300; i++ {
		seen[g(r)]++
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 variants, got %v", seen)
	}
}

func TestOneOfPanicsWhenEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	OneOf[int]()
}

func TestSliceOfNeverNil(t *testing.T) {
	r := newRand()
	g := SliceOf(Uint8(), 0, 0)
	if s := g(r); s == nil || len(s) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", s)
	}
}

func TestMapOfBounded(t *testing.T) {
	r := newRand()
	g := MapOf(String(4), IntRange(0, 9), 5)
	for i := 0; i < 200; i++ {
		m := g(r)
		if len(m) > 5 {
			t.Fatalf("map too large: %d", len(m))
		}
		for _, v := range m {
			if v < 0 || v > 9 {
				t.Fatalf("value out of range: %d", v)
			}
		}
	}
}

func TestMapTransforms(t *testing.T) {
	g := Map(Just(21), func(v int) int { return v * 2 })
	if got := g(newRand()); got != 42 {
		t.Fatalf("got %d want 42", got)
	}
}

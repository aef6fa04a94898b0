package roster

import (
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/unkn0wn-root/colorwire/codec"
)

func serializers() map[string]codec.Codec[StudentMap] {
	return map[string]codec.Codec[StudentMap]{
		"json":     codec.JSON[StudentMap]{},
		"cbor":     codec.MustCBOR[StudentMap](false),
		"cbor_det": codec.MustCBOR[StudentMap](true),
		"msgpack":  codec.Msgpack[StudentMap]{},
	}
}

func TestMapRoundTrip(t *testing.T) {
	for name, s := range serializers() {
		t.Run(name, func(t *testing.T) {
			cfg := &quick.Config{MaxCount: 200, Rand: rand.New(rand.NewSource(3))}
			f := func(m StudentMap) bool {
				b, err := s.Encode(m)
				if err != nil {
					t.Logf("Encode: %v", err)
					return false
				}
				got, err := s.Decode(b)
				if err != nil {
					t.Logf("Decode: %v", err)
					return false
				}
				return m.Equal(got)
			}
			if err := quick.Check(f, cfg); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestEmptyMapRoundTrip(t *testing.T) {
	for name, s := range serializers() {
		b, err := s.Encode(StudentMap{})
		if err != nil {
			t.Fatalf("%s Encode: %v", name, err)
		}
		got, err := s.Decode(b)
		if err != nil {
			t.Fatalf("%s Decode: %v", name, err)
		}
		if len(got) != 0 {
			t.Fatalf("%s: expected empty map, got %v", name, got)
		}
	}
}

func TestStudentEqual(t *testing.T) {
	a := Student{Name: "ada", Address: "x"}
	b := Student{Name: "ada", Interests: []string{}, Address: "x"}
	if !a.Equal(b) {
		t.Fatalf("nil and empty interests should compare equal")
	}
	b.Interests = append(b.Interests, "chess")
	if a.Equal(b) {
		t.Fatalf("different interests should not compare equal")
	}
	if (StudentMap{"k": a}).Equal(StudentMap{"j": a}) {
		t.Fatalf("different keys should not compare equal")
	}
}

func TestArbitraryStudentBounds(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	g := ArbitraryStudent()
	for i := 0; i < 100; i++ {
		if s := g(r); len(s.Interests) > MaxInterests || s.Interests == nil {
			t.Fatalf("interests out of bounds: %d", len(s.Interests))
		}
	}
}

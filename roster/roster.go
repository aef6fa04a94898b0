// Package roster holds the Student record used to check that the
// general-purpose serializers in codec reproduce a nested value exactly.
package roster

import (
	"maps"
	"math/rand"
	"reflect"
	"slices"

	"github.com/unkn0wn-root/colorwire/arbitrary"
)

type Student struct {
	Name      string   `json:"name" cbor:"name" msgpack:"name"`
	Interests []string `json:"interests" cbor:"interests" msgpack:"interests"`
	Address   string   `json:"address" cbor:"address" msgpack:"address"`
}

// Equal compares field-wise. A nil and an empty Interests are equal,
// since serializers are free to decode one as the other.
func (s Student) Equal(o Student) bool {
	return s.Name == o.Name &&
		s.Address == o.Address &&
		slices.Equal(s.Interests, o.Interests)
}

// StudentMap indexes students by an arbitrary string key.
type StudentMap map[string]Student

func (m StudentMap) Equal(o StudentMap) bool {
	return maps.EqualFunc(m, o, Student.Equal)
}

// Bounds for generated values.
const (
	MaxStringRunes = 24
	MaxInterests   = 100
	MaxStudents    = 16
)

func ArbitraryStudent() arbitrary.Gen[Student] {
	str := arbitrary.String(MaxStringRunes)
	interests := arbitrary.SliceOf(str, 0, MaxInterests)
	return func(r *rand.Rand) Student {
		return Student{Name: str(r), Interests: interests(r), Address: str(r)}
	}
}

func ArbitraryStudentMap() arbitrary.Gen[StudentMap] {
	return arbitrary.Map(
		arbitrary.MapOf(arbitrary.String(MaxStringRunes), ArbitraryStudent(), MaxStudents),
		func(m map[string]Student) StudentMap { return StudentMap(m) },
	)
}

// Generate implements quick.Generator.
func (StudentMap) Generate(r *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(ArbitraryStudentMap()(r))
}

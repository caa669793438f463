package value

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_FieldRoundTrip checks that decoding the field form with the
// value's own type yields the original value for every primitive type.
func TestProperty_FieldRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	roundTrips := func(v Value) bool {
		got, err := DecodeField(v.MarshalField(), v.Type())
		return err == nil && got.Type() == v.Type() && got.Equal(v)
	}

	properties.Property("String round-trips", prop.ForAll(
		func(s string) bool { return roundTrips(String(s)) },
		gen.AnyString(),
	))

	properties.Property("I64 round-trips", prop.ForAll(
		func(i int64) bool { return roundTrips(I64(i)) },
		gen.Int64(),
	))

	properties.Property("U64 round-trips", prop.ForAll(
		func(u uint64) bool { return roundTrips(U64(u)) },
		gen.UInt64(),
	))

	properties.Property("F64 round-trips", prop.ForAll(
		func(f float64) bool { return roundTrips(F64(f)) },
		gen.Float64().SuchThat(func(f float64) bool { return !math.IsNaN(f) }),
	))

	properties.Property("Bool round-trips", prop.ForAll(
		func(b bool) bool { return roundTrips(Bool(b)) },
		gen.Bool(),
	))

	properties.Property("Json numbers keep their integer subtype", prop.ForAll(
		func(i int64, u uint64, s string) bool {
			doc := DocObject(
				Member{Key: "i", Value: DocInt(i)},
				Member{Key: "u", Value: DocUint(u)},
				Member{Key: "s", Value: DocString(s)},
			)
			return roundTrips(JSON(doc))
		},
		gen.Int64(),
		gen.UInt64(),
		gen.AnyString(),
	))

	properties.Property("tagged form round-trips", prop.ForAll(
		func(i int64) bool {
			v := I64(i)
			b, err := v.MarshalBinary()
			if err != nil {
				return false
			}
			var got Value
			return got.UnmarshalBinary(b) == nil && got.Equal(v)
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// TestProperty_Conversions checks that conversions out succeed exactly for
// the matching tag.
func TestProperty_Conversions(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Into[int64] inverts From for int64 only", prop.ForAll(
		func(i int64) bool {
			got, err := Into[int64](From(i))
			if err != nil || got != i {
				return false
			}
			_, errU := Into[uint64](From(i))
			_, errF := Into[float64](From(i))
			return errU != nil && errF != nil
		},
		gen.Int64(),
	))

	properties.Property("Into[uint64] inverts From for uint64 only", prop.ForAll(
		func(u uint64) bool {
			got, err := Into[uint64](From(u))
			if err != nil || got != u {
				return false
			}
			_, errI := Into[int64](From(u))
			_, errB := Into[bool](From(u))
			return errI != nil && errB != nil
		},
		gen.UInt64(),
	))

	properties.Property("int32 widens to I64", prop.ForAll(
		func(i int32) bool {
			v := From(i)
			got, err := Into[int32](v)
			return v.Type() == TypeI64 && err == nil && got == i
		},
		gen.Int32(),
	))

	properties.Property("uint32 widens to U64", prop.ForAll(
		func(u uint32) bool {
			v := From(u)
			got, err := Into[uint32](v)
			return v.Type() == TypeU64 && err == nil && got == u
		},
		gen.UInt32(),
	))

	properties.Property("Into[string] inverts From for strings only", prop.ForAll(
		func(s string) bool {
			got, err := Into[string](From(s))
			_, errI := Into[int64](From(s))
			return err == nil && got == s && errI != nil
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

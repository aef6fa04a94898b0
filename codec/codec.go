// Package codec converts values to and from bytes.
//
// Any Codec[color.Color] can back a palette: Color (the default, fixed
// 5 bytes), ColorProto, or JSON, CBOR and Msgpack instantiated at
// color.Color. Wrap any of them in Limit to cap payload size on read.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

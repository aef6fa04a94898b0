// Package wire frames palette records for storage in a provider. Payloads
// are opaque here; the palette's codec turns them into colors.
//
// Single: magic(4) | ver(1) | kind(1=single) | gen(u64 be) | vlen(u32 be) | payload(vlen)
//
// Bulk:
//
//	magic(4) | ver(1) | kind(1=bulk) | n(u32 be)
//	keyLen(u16 be) | key(keyLen) | gen(u64 be) | vlen(u32 be) | payload(vlen) * n
//
// Decoders are strict: trailing bytes and truncation yield ErrCorrupt.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	version    byte = 1
	kindSingle byte = 1
	kindBulk   byte = 2

	headerLen = 4 + 1 + 1
	singleHdr = headerLen + 8 + 4
	bulkHdr   = headerLen + 4
	// smallest possible bulk item: 1-byte key, empty payload
	minItemLen = 2 + 1 + 8 + 4

	MaxKeyLen = 0xFFFF
)

var (
	ErrCorrupt = errors.New("colorwire: corrupt record")
	magic4     = [...]byte{'C', 'L', 'R', 'W'}
)

// ValidKey reports whether k can be framed in a bulk record.
func ValidKey(k string) bool { return len(k) > 0 && len(k) <= MaxKeyLen }

func hasHeader(b []byte, kind byte) bool {
	return len(b) >= headerLen && bytes.Equal(b[:4], magic4[:]) && b[4] == version && b[5] == kind
}

func appendHeader(dst []byte, kind byte) []byte {
	dst = append(dst, magic4[:]...)
	return append(dst, version, kind)
}

func appendPayload(dst, payload []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	return append(dst, payload...)
}

// readPayload returns the vlen-prefixed payload at off and the offset past it.
func readPayload(b []byte, off int) ([]byte, int, bool) {
	if len(b)-off < 4 {
		return nil, 0, false
	}
	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen > len(b)-off {
		return nil, 0, false
	}
	return b[off : off+vlen], off + vlen, true
}

func EncodeSingle(gen uint64, payload []byte) []byte {
	b := make([]byte, 0, singleHdr+len(payload))
	b = appendHeader(b, kindSingle)
	b = binary.BigEndian.AppendUint64(b, gen)
	return appendPayload(b, payload)
}

// DecodeSingle returns a payload that aliases b.
func DecodeSingle(b []byte) (gen uint64, payload []byte, err error) {
	if len(b) < singleHdr || !hasHeader(b, kindSingle) {
		return 0, nil, ErrCorrupt
	}
	gen = binary.BigEndian.Uint64(b[headerLen : headerLen+8])
	payload, end, ok := readPayload(b, headerLen+8)
	if !ok || end != len(b) {
		return 0, nil, ErrCorrupt
	}
	return gen, payload, nil
}

type BulkItem struct {
	Key     string
	Gen     uint64
	Payload []byte
}

func EncodeBulk(items []BulkItem) ([]byte, error) {
	total := bulkHdr
	for _, it := range items {
		if !ValidKey(it.Key) {
			return nil, fmt.Errorf("colorwire: invalid key length %d in bulk", len(it.Key))
		}
		if uint64(len(it.Payload)) > math.MaxUint32 {
			return nil, fmt.Errorf("colorwire: payload too large for %q", it.Key)
		}
		total += 2 + len(it.Key) + 8 + 4 + len(it.Payload)
	}

	b := make([]byte, 0, total)
	b = appendHeader(b, kindBulk)
	b = binary.BigEndian.AppendUint32(b, uint32(len(items)))
	for _, it := range items {
		b = binary.BigEndian.AppendUint16(b, uint16(len(it.Key)))
		b = append(b, it.Key...)
		b = binary.BigEndian.AppendUint64(b, it.Gen)
		b = appendPayload(b, it.Payload)
	}
	return b, nil
}

// DecodeBulk returns payloads that alias b.
func DecodeBulk(b []byte) ([]BulkItem, error) {
	if len(b) < bulkHdr || !hasHeader(b, kindBulk) {
		return nil, ErrCorrupt
	}
	off := headerLen

	n := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	// don't trust n for preallocation beyond what the buffer could hold
	if n > (len(b)-off)/minItemLen {
		return nil, ErrCorrupt
	}

	items := make([]BulkItem, 0, n)
	for i := 0; i < n; i++ {
		if len(b)-off < 2 {
			return nil, ErrCorrupt
		}
		klen := int(binary.BigEndian.Uint16(b[off : off+2]))
		off += 2
		if klen == 0 || klen+8 > len(b)-off {
			return nil, ErrCorrupt
		}
		key := string(b[off : off+klen])
		off += klen

		gen := binary.BigEndian.Uint64(b[off : off+8])
		off += 8

		payload, next, ok := readPayload(b, off)
		if !ok {
			return nil, ErrCorrupt
		}
		off = next

		items = append(items, BulkItem{Key: key, Gen: gen, Payload: payload})
	}
	if off != len(b) {
		return nil, ErrCorrupt
	}
	return items, nil
}

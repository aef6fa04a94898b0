package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/unkn0wn-root/colorwire/color"
)

func mustDecodeSingle(t *testing.T, b []byte) (uint64, []byte) {
	t.Helper()
	gen, p, err := DecodeSingle(b)
	if err != nil {
		t.Fatalf("DecodeSingle error: %v", err)
	}
	return gen, p
}

func mustEncodeBulk(t *testing.T, items []BulkItem) []byte {
	t.Helper()
	b, err := EncodeBulk(items)
	if err != nil {
		t.Fatalf("EncodeBulk error: %v", err)
	}
	return b
}

func enc(c color.Color) []byte {
	e := c.Encode()
	return e[:]
}

func TestSingleRoundTrip(t *testing.T) {
	cases := []struct {
		gen     uint64
		payload []byte
	}{
		{0, enc(color.Named(color.Red))},
		{42, enc(color.RGB(10, 20, 30))},
		{math.MaxUint64, enc(color.CYMK(1, 2, 3, 4))},
		{7, []byte(`"rgb(1,2,3)"`)},
		{9, nil},
	}
	for _, tc := range cases {
		rec := EncodeSingle(tc.gen, tc.payload)
		if len(rec) != singleHdr+len(tc.payload) {
			t.Fatalf("len = %d want %d", len(rec), singleHdr+len(tc.payload))
		}
		gen, p := mustDecodeSingle(t, rec)
		if gen != tc.gen || !bytes.Equal(p, tc.payload) {
			t.Fatalf("got gen=%d p=%v want gen=%d p=%v", gen, p, tc.gen, tc.payload)
		}
	}
}

func TestSingleLayout(t *testing.T) {
	rec := EncodeSingle(0x0102030405060708, enc(color.CYMK(9, 8, 7, 6)))
	want := []byte{'C', 'L', 'R', 'W', 1, 1, 1, 2, 3, 4, 5, 6, 7, 8, 0, 0, 0, 5, 2, 9, 8, 7, 6}
	if !bytes.Equal(rec, want) {
		t.Fatalf("layout = %v want %v", rec, want)
	}
}

func TestSingleRejectsTrailingBytes(t *testing.T) {
	rec := EncodeSingle(7, enc(color.RGB(1, 2, 3)))
	rec = append(rec, 0xDE, 0xAD)
	if _, _, err := DecodeSingle(rec); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on trailing bytes, got %v", err)
	}
}

func TestSingleCorruptHeaders(t *testing.T) {
	rec := EncodeSingle(1, enc(color.Named(color.Green)))

	mutate := func(i int, v byte) []byte {
		b := append([]byte(nil), rec...)
		b[i] = v
		return b
	}

	cases := map[string][]byte{
		"bad_magic":   mutate(0, 'X'),
		"bad_version": mutate(4, version+1),
		"bad_kind":    mutate(5, kindBulk),
		"vlen_beyond": mutate(singleHdr-1, 6),
		"truncated":   rec[:len(rec)-1],
		"header_only": rec[:singleHdr-1],
		"empty":       nil,
	}
	for name, b := range cases {
		if _, _, err := DecodeSingle(b); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("%s: expected ErrCorrupt, got %v", name, err)
		}
	}
}

func TestBulkRoundTrip(t *testing.T) {
	cases := [][]BulkItem{
		nil,
		{{Key: "a", Gen: 1, Payload: enc(color.RGB(1, 1, 1))}},
		{
			{Key: "a", Gen: 1, Payload: enc(color.Named(color.Blue))},
			{Key: "b", Gen: 2, Payload: []byte{}},
			{Key: "c", Gen: 3, Payload: []byte(`"cymk(9,8,7,6)"`)},
		},
		// duplicates allowed. decoder preserves both
		{
			{Key: "dup", Gen: 1, Payload: enc(color.Named(color.Red))},
			{Key: "dup", Gen: 2, Payload: enc(color.Named(color.Green))},
		},
	}
	for _, items := range cases {
		got, err := DecodeBulk(mustEncodeBulk(t, items))
		if err != nil {
			t.Fatalf("DecodeBulk: %v", err)
		}
		if len(got) != len(items) {
			t.Fatalf("len mismatch: got %d want %d", len(got), len(items))
		}
		for i := range items {
			if got[i].Key != items[i].Key || got[i].Gen != items[i].Gen || !bytes.Equal(got[i].Payload, items[i].Payload) {
				t.Fatalf("item %d mismatch: got=%+v want=%+v", i, got[i], items[i])
			}
		}
	}
}

func TestBulkRejectsTrailingBytes(t *testing.T) {
	rec := mustEncodeBulk(t, []BulkItem{{Key: "k", Gen: 1, Payload: enc(color.RGB(1, 2, 3))}})
	rec = append(rec, 0xBE, 0xEF)
	if _, err := DecodeBulk(rec); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on trailing bytes, got %v", err)
	}
}

func TestBulkBogusCount(t *testing.T) {
	b := appendHeader(nil, kindBulk)
	b = binary.BigEndian.AppendUint32(b, ^uint32(0))
	if _, err := DecodeBulk(b); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on bogus n, got %v", err)
	}

	// n=1 but no item body
	b = appendHeader(nil, kindBulk)
	b = binary.BigEndian.AppendUint32(b, 1)
	if _, err := DecodeBulk(b); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on truncated list, got %v", err)
	}
}

func TestBulkKeyLengthValidation(t *testing.T) {
	if _, err := EncodeBulk([]BulkItem{{Key: ""}}); err == nil {
		t.Fatalf("expected error on empty key")
	}
	if _, err := EncodeBulk([]BulkItem{{Key: strings.Repeat("a", MaxKeyLen+1)}}); err == nil {
		t.Fatalf("expected error on key length > 0xFFFF")
	}
	if _, err := EncodeBulk([]BulkItem{{Key: strings.Repeat("b", MaxKeyLen)}}); err != nil {
		t.Fatalf("boundary key length should succeed: %v", err)
	}
	if ValidKey("") || ValidKey(strings.Repeat("c", MaxKeyLen+1)) || !ValidKey("c") {
		t.Fatalf("ValidKey disagrees with EncodeBulk")
	}
}

func TestBulkCorruptFields(t *testing.T) {
	rec := mustEncodeBulk(t, []BulkItem{{Key: "k", Gen: 9, Payload: enc(color.RGB(1, 2, 3))}})

	badMagic := append([]byte(nil), rec...)
	badMagic[0] = 'X'
	if _, err := DecodeBulk(badMagic); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected error on bad magic")
	}

	badKind := append([]byte(nil), rec...)
	badKind[5] = kindSingle
	if _, err := DecodeBulk(badKind); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected error on bad kind")
	}

	// klen announces more than available
	badKlen := append([]byte(nil), rec...)
	binary.BigEndian.PutUint16(badKlen[bulkHdr:bulkHdr+2], 500)
	if _, err := DecodeBulk(badKlen); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected error on klen beyond buffer")
	}

	// vlen announces more than available
	badVlen := append([]byte(nil), rec...)
	vlenAt := bulkHdr + 2 + 1 + 8
	binary.BigEndian.PutUint32(badVlen[vlenAt:vlenAt+4], 6)
	if _, err := DecodeBulk(badVlen); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected error on vlen beyond buffer")
	}
}

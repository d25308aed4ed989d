package binary

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReaderReadByte(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(data, 0)

	for i, want := range data {
		if r.Position() != i {
			t.Errorf("position before read %d: got %d, want %d", i, r.Position(), i)
		}
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte %d: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadByte %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	if !r.AtEnd() {
		t.Error("expected reader at end")
	}

	_, err := r.ReadByte()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReaderReadBytes(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	r := NewReader(data, 0)

	got, err := r.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("ReadBytes: got %v, want [1 2 3]", got)
	}

	if r.Position() != 3 {
		t.Errorf("position: got %d, want 3", r.Position())
	}

	if _, err := r.ReadBytes(10); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF reading past end, got %v", err)
	}
	if r.Position() != 3 {
		t.Errorf("failed read moved the cursor to %d", r.Position())
	}

	if _, err := r.ReadBytes(-1); err == nil {
		t.Error("expected error for negative length")
	}
}

func TestReaderSubUsesAbsolutePositions(t *testing.T) {
	r := NewReader([]byte{0xAA, 0xBB, 0x01, 0x02, 0x03, 0xCC}, 100)
	if _, err := r.ReadBytes(2); err != nil {
		t.Fatal(err)
	}

	sub, err := r.Sub(3)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if sub.Position() != 102 {
		t.Errorf("sub start: got %d, want 102", sub.Position())
	}
	if sub.Len() != 3 {
		t.Errorf("sub len: got %d, want 3", sub.Len())
	}
	if r.Position() != 105 {
		t.Errorf("parent position: got %d, want 105", r.Position())
	}

	rest := sub.Remaining()
	if !bytes.Equal(rest, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("Remaining: got %v", rest)
	}
	if !sub.AtEnd() {
		t.Error("sub should be exhausted after Remaining")
	}

	if _, err := r.Sub(5); err == nil {
		t.Error("expected error for oversized Sub")
	}
}

func TestReaderReadU32(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    uint32
		wantErr error
	}{
		{"zero", []byte{0x00}, 0, nil},
		{"one byte", []byte{0x7F}, 127, nil},
		{"two bytes", []byte{0x80, 0x01}, 128, nil},
		{"624485", []byte{0xE5, 0x8E, 0x26}, 624485, nil},
		{"max", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}, 0xFFFFFFFF, nil},
		{"unused bits set", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x1F}, 0, ErrOverflow},
		{"too long", []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, 0, ErrOverflow},
		{"truncated", []byte{0x80, 0x80}, 0, io.ErrUnexpectedEOF},
		{"empty", nil, 0, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewReader(tt.data, 0).ReadU32()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got err %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadU32: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReaderReadU64(t *testing.T) {
	got, err := NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}, 0).ReadU64()
	if err != nil {
		t.Fatalf("ReadU64: %v", err)
	}
	if got != ^uint64(0) {
		t.Errorf("got %d, want max uint64", got)
	}

	_, err = NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x02}, 0).ReadU64()
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("expected overflow, got %v", err)
	}
}

func TestReaderReadS64(t *testing.T) {
	tests := []struct {
		data []byte
		want int64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7F}, -1},
		{[]byte{0x70}, -16},
		{[]byte{0x80, 0x7F}, -128},
		{[]byte{0x3F}, 63},
	}
	for _, tt := range tests {
		got, err := NewReader(tt.data, 0).ReadS64()
		if err != nil {
			t.Fatalf("ReadS64(%x): %v", tt.data, err)
		}
		if got != tt.want {
			t.Errorf("ReadS64(%x): got %d, want %d", tt.data, got, tt.want)
		}
	}
}

func TestReaderReadName(t *testing.T) {
	r := NewReader([]byte{0x03, 'e', 'n', 'v', 0x02, 0xFF, 0xFE, 0x01}, 0)

	name, err := r.ReadName()
	if err != nil {
		t.Fatalf("ReadName: %v", err)
	}
	if name != "env" {
		t.Errorf("got %q, want env", name)
	}

	_, err = r.ReadName()
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if r.Position() != 7 {
		t.Errorf("cursor should skip the invalid name, got position %d", r.Position())
	}

	if _, err := NewReader([]byte{0x05, 'a'}, 0).ReadName(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected truncation error, got %v", err)
	}
}

func TestReaderFixedWidth(t *testing.T) {
	r := NewReader([]byte{0x01, 0x00, 0x0D, 0x00, 0x00, 0x61, 0x73, 0x6D}, 0)
	v16, err := r.ReadU16LE()
	if err != nil || v16 != 1 {
		t.Fatalf("ReadU16LE: %d, %v", v16, err)
	}
	v16, err = r.ReadU16LE()
	if err != nil || v16 != 0x0D {
		t.Fatalf("ReadU16LE: %d, %v", v16, err)
	}
	v32, err := r.ReadU32LE()
	if err != nil || v32 != 0x6D736100 {
		t.Fatalf("ReadU32LE: %#x, %v", v32, err)
	}
	if _, err := r.ReadU16LE(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected truncation, got %v", err)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU32(624485)
	w.WriteU64(1 << 40)
	w.WriteS64(-16)
	w.WriteName("massa")
	w.WriteU16LE(0x0D)
	w.WriteU32LE(0x6D736100)
	w.Byte(0x7F)

	r := NewReader(w.Bytes(), 0)
	if v, _ := r.ReadU32(); v != 624485 {
		t.Errorf("u32: got %d", v)
	}
	if v, _ := r.ReadU64(); v != 1<<40 {
		t.Errorf("u64: got %d", v)
	}
	if v, _ := r.ReadS64(); v != -16 {
		t.Errorf("s64: got %d", v)
	}
	if v, _ := r.ReadName(); v != "massa" {
		t.Errorf("name: got %q", v)
	}
	if v, _ := r.ReadU16LE(); v != 0x0D {
		t.Errorf("u16: got %d", v)
	}
	if v, _ := r.ReadU32LE(); v != 0x6D736100 {
		t.Errorf("u32le: got %#x", v)
	}
	if b, _ := r.ReadByte(); b != 0x7F {
		t.Errorf("byte: got %#x", b)
	}
	if !r.AtEnd() {
		t.Errorf("expected end, %d bytes left", r.Len())
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02}, 10)
	_, _ = r.ReadByte()
	err := r.WrapError("section size", io.ErrUnexpectedEOF)

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Position != 11 {
		t.Errorf("position: got %d, want 11", pe.Position)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("ParseError should unwrap to its cause")
	}
	want := "wasm: section size at position 11: unexpected EOF"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

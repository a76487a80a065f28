package decimal

import (
	"fmt"
	"io"

	"github.com/calebcase/decarith/dectype"
)

// ByteOrder selects the layout of encoded values.
type ByteOrder int

const (
	// LittleEndian writes full 16 byte IPC values.
	LittleEndian ByteOrder = iota

	// BigEndian writes the MinBytes(precision) low order bytes of each
	// value, as fixed length interchange formats do.
	BigEndian
)

// Schema represents a configured decimal column.
type Schema struct {
	Type  dectype.Type
	Order ByteOrder
}

// Width returns the number of bytes per value.
func (s Schema) Width() int {
	if s.Order == BigEndian {
		return MinBytes(s.Type.Precision)
	}

	return Size
}

// Encoder is an encoder.
type Encoder struct {
	schema Schema
	w      io.Writer
}

// NewEncoder returns a new encoder.
func NewEncoder(schema Schema, w io.Writer) *Encoder {
	return &Encoder{
		schema: schema,
		w:      w,
	}
}

// Encode writes v to the writer. Values outside the schema precision are
// rejected.
func (e *Encoder) Encode(v Value) (err error) {
	defer Error.WrapP(&err)

	if !v.FitsInPrecision(e.schema.Type.Precision) {
		return fmt.Errorf("%w: %s does not fit %s", ErrOverflow, v.ToString(e.schema.Type.Scale), e.schema.Type)
	}

	var b [Size]byte

	switch e.schema.Order {
	case LittleEndian:
		b = v.LittleEndian()
		_, err = e.w.Write(b[:])
	case BigEndian:
		b = v.BigEndian()
		_, err = e.w.Write(b[Size-e.schema.Width():])
	default:
		return Error.New("unknown byte order %d", e.schema.Order)
	}

	return err
}

// Decoder is a decoder.
type Decoder struct {
	schema Schema
	r      io.Reader
	buf    [Size]byte
}

// NewDecoder returns a new decoder.
func NewDecoder(schema Schema, r io.Reader) *Decoder {
	return &Decoder{
		schema: schema,
		r:      r,
	}
}

// Decode reads the next value. It returns io.EOF, unwrapped, when the reader
// ends on a value boundary.
func (d *Decoder) Decode(v *Value) (err error) {
	width := d.schema.Width()

	_, err = io.ReadFull(d.r, d.buf[:width])
	if err == io.EOF {
		return io.EOF
	}
	if err != nil {
		return Error.Wrap(err)
	}

	switch d.schema.Order {
	case LittleEndian:
		*v, err = FromLittleEndian(d.buf[:width])
	case BigEndian:
		*v, err = FromBigEndian(d.buf[:width], width)
	default:
		err = Error.New("unknown byte order %d", d.schema.Order)
	}
	if err != nil {
		return err
	}

	if !v.FitsInPrecision(d.schema.Type.Precision) {
		return Error.Wrap(fmt.Errorf("%w: %s does not fit %s", ErrOverflow, v.ToString(d.schema.Type.Scale), d.schema.Type))
	}

	return nil
}

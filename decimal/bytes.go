package decimal

import (
	"encoding/binary"
	"fmt"

	"github.com/apache/arrow/go/v11/arrow/decimal128"
)

// Size is the number of bytes in an encoded value.
const Size = 16

// FromBigEndian reads a big-endian two's complement value of length bytes
// from the front of b, sign extending it to 128 bits.
func FromBigEndian(b []byte, length int) (Value, error) {
	if length < 1 || length > Size {
		return Zero, fmt.Errorf("%w: length %d outside [1,%d]", ErrInvalidLength, length, Size)
	}

	if len(b) < length {
		return Zero, fmt.Errorf("%w: need %d bytes, have %d", ErrInvalidLength, length, len(b))
	}

	var buf [Size]byte
	if b[0]&0x80 != 0 {
		for i := range buf[:Size-length] {
			buf[i] = 0xFF
		}
	}

	copy(buf[Size-length:], b[:length])

	return Value{n: decimal128.New(
		int64(binary.BigEndian.Uint64(buf[:8])),
		binary.BigEndian.Uint64(buf[8:]),
	)}, nil
}

// FromLittleEndian reads a 16 byte little-endian two's complement value.
func FromLittleEndian(b []byte) (Value, error) {
	if len(b) != Size {
		return Zero, fmt.Errorf("%w: need %d bytes, have %d", ErrInvalidLength, Size, len(b))
	}

	return Value{n: decimal128.New(
		int64(binary.LittleEndian.Uint64(b[8:])),
		binary.LittleEndian.Uint64(b[:8]),
	)}, nil
}

// LittleEndian returns the IPC layout of v.
func (v Value) LittleEndian() (b [Size]byte) {
	binary.LittleEndian.PutUint64(b[:8], v.n.LowBits())
	binary.LittleEndian.PutUint64(b[8:], uint64(v.n.HighBits()))

	return b
}

// BigEndian returns the interchange layout of v.
func (v Value) BigEndian() (b [Size]byte) {
	binary.BigEndian.PutUint64(b[:8], uint64(v.n.HighBits()))
	binary.BigEndian.PutUint64(b[8:], v.n.LowBits())

	return b
}

// MinBytes returns the smallest big-endian width able to hold every value of
// the given precision.
func MinBytes(precision int32) int {
	for n := 1; n < Size; n++ {
		// Largest magnitude of an n byte value is 2^(8n-1) - 1.
		if float64(precision) <= float64(8*n-1)*log10of2 {
			return n
		}
	}

	return Size
}

const log10of2 = 0.30102999566398119521

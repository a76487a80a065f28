package decimal_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/calebcase/oops"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/decarith/decimal"
	"github.com/calebcase/decarith/dectype"
)

func TestFromBigEndian(t *testing.T) {
	type TC struct {
		Input  []byte
		Length int
		Output string
		Err    error
		Mark   error
	}

	tcs := []TC{
		{Input: []byte{0xFF, 0xFF, 0xFE}, Length: 3, Output: "-2", Mark: oops.New("unexpected")},
		{Input: []byte{0x00, 0x80}, Length: 2, Output: "128", Mark: oops.New("unexpected")},
		{Input: []byte{0x80}, Length: 1, Output: "-128", Mark: oops.New("unexpected")},
		{Input: []byte{0x7F, 0xAA}, Length: 1, Output: "127", Mark: oops.New("unexpected")},
		{
			Input:  []byte{0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			Length: 16,
			Output: "-170141183460469231731687303715884105728",
			Mark:   oops.New("unexpected"),
		},
		{Input: []byte{0x01}, Length: 0, Err: decimal.ErrInvalidLength, Mark: oops.New("unexpected")},
		{Input: make([]byte, 17), Length: 17, Err: decimal.ErrInvalidLength, Mark: oops.New("unexpected")},
		{Input: []byte{0x01}, Length: 2, Err: decimal.ErrInvalidLength, Mark: oops.New("unexpected")},
	}

	for i, tc := range tcs {
		t.Logf("%d: %s\n", i, spew.Sdump(tc))

		v, err := decimal.FromBigEndian(tc.Input, tc.Length)
		if tc.Err != nil {
			require.True(t, errors.Is(err, tc.Err), tc.Mark)
			continue
		}

		require.NoError(t, err, tc.Mark)
		require.Equal(t, tc.Output, v.String(), tc.Mark)
	}
}

func TestByteLayouts(t *testing.T) {
	values := []string{
		"0",
		"-2",
		"1",
		"18446744073709551616",
		"-99999999999999999999999999999999999999",
		"99999999999999999999999999999999999999",
	}

	for _, text := range values {
		v := decimal.MustFromString(text)

		le := v.LittleEndian()
		back, err := decimal.FromLittleEndian(le[:])
		require.NoError(t, err, text)
		require.Equal(t, v, back, text)

		be := v.BigEndian()
		back, err = decimal.FromBigEndian(be[:], decimal.Size)
		require.NoError(t, err, text)
		require.Equal(t, v, back, text)

		for i := range le {
			require.Equal(t, le[i], be[decimal.Size-1-i], text)
		}
	}

	le := decimal.FromInt64(-2).LittleEndian()
	require.Equal(t, byte(0xFE), le[0])
	require.Equal(t, byte(0xFF), le[15])

	_, err := decimal.FromLittleEndian(make([]byte, 15))
	require.ErrorIs(t, err, decimal.ErrInvalidLength)
}

func TestMinBytes(t *testing.T) {
	type TC struct {
		Precision int32
		Bytes     int
	}

	tcs := []TC{
		{1, 1},
		{2, 1},
		{3, 2},
		{9, 4},
		{10, 5},
		{18, 8},
		{19, 9},
		{38, 16},
	}

	for _, tc := range tcs {
		require.Equal(t, tc.Bytes, decimal.MinBytes(tc.Precision), "precision %d", tc.Precision)
	}
}

func TestRoundtrip(t *testing.T) {
	type TC struct {
		Schema decimal.Schema
		Values []string
		Mark   error
	}

	tcs := []TC{
		{
			Schema: decimal.Schema{
				Type:  dectype.Type{Precision: 10, Scale: 2},
				Order: decimal.BigEndian,
			},
			Values: []string{"0", "-1", "9999999999", "-9999999999", "12345"},
			Mark:   oops.New("unexpected"),
		},
		{
			Schema: decimal.Schema{
				Type:  dectype.Type{Precision: 38, Scale: 6},
				Order: decimal.LittleEndian,
			},
			Values: []string{"0", "-99999999999999999999999999999999999999", "42"},
			Mark:   oops.New("unexpected"),
		},
		{
			Schema: decimal.Schema{
				Type:  dectype.Type{Precision: 38, Scale: 0},
				Order: decimal.BigEndian,
			},
			Values: []string{"99999999999999999999999999999999999999", "-7"},
			Mark:   oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Logf("%d: %s\n", i, spew.Sdump(tc))

		buf := &bytes.Buffer{}
		enc := decimal.NewEncoder(tc.Schema, buf)

		for _, text := range tc.Values {
			require.NoError(t, enc.Encode(decimal.MustFromString(text)), tc.Mark)
		}

		require.Equal(t, len(tc.Values)*tc.Schema.Width(), buf.Len(), tc.Mark)

		dec := decimal.NewDecoder(tc.Schema, buf)

		for _, text := range tc.Values {
			var v decimal.Value
			require.NoError(t, dec.Decode(&v), tc.Mark)
			require.Equal(t, text, v.String(), tc.Mark)
		}

		var v decimal.Value
		require.Equal(t, io.EOF, dec.Decode(&v), tc.Mark)
	}

	t.Run("overflow", func(t *testing.T) {
		schema := decimal.Schema{Type: dectype.Type{Precision: 3, Scale: 1}}

		err := decimal.NewEncoder(schema, io.Discard).Encode(decimal.FromInt64(1000))
		require.ErrorIs(t, err, decimal.ErrOverflow)
		require.True(t, decimal.Error.Has(err))

		buf := &bytes.Buffer{}
		wide := decimal.Schema{Type: dectype.Type{Precision: 38, Scale: 1}}
		require.NoError(t, decimal.NewEncoder(wide, buf).Encode(decimal.FromInt64(1000)))

		var v decimal.Value
		err = decimal.NewDecoder(schema, buf).Decode(&v)
		require.ErrorIs(t, err, decimal.ErrOverflow)
	})

	t.Run("truncated", func(t *testing.T) {
		schema := decimal.Schema{Type: dectype.Type{Precision: 38, Scale: 0}}

		var v decimal.Value
		err := decimal.NewDecoder(schema, bytes.NewReader([]byte{1, 2, 3})).Decode(&v)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		require.NotEqual(t, io.EOF, err)
	})
}

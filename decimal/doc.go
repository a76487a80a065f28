// Package decimal provides a 128 bit fixed point base 10 number.
//
// The equation for a decimal number is:
//
//  number = value * 10 ^ -scale
//
// Where value is a 128 bit two's complement integer and scale is carried by
// the caller (usually in a dectype.Type). For example:
//
//  1.23 = 123 * 10^-2
//
// Value may be up to ±(10^38 - 1) for a valid decimal(38,s). Raw arithmetic
// on the underlying integer wraps silently; the helpers in this package check
// and report ErrOverflow.
//
// Text
//
// FromString accepts an optional sign, digits, an optional fraction and an
// optional exponent. The scale is the number of fractional digits after the
// exponent is applied, so trailing fractional zeros are significant:
//
//  | Text     | Value  | Precision | Scale |
//  |----------|--------|-----------|-------|
//  | 1.50     | 150    | 3         | 2     |
//  | -0.001   | -1     | 3         | 3     |
//  | 12e2     | 1200   | 4         | 0     |
//  | 1.5e-3   | 15     | 4         | 4     |
//  |----------|--------|-----------|-------|
//
// Encoding
//
// Values are laid out as 16 bytes of two's complement. IPC buffers use
// little-endian, interchange (for example Parquet or Avro fixed) uses
// big-endian and may be truncated to the width implied by the precision:
//
//  -2 little-endian
//
//  | 0  | 1  | 2  | ... | 14 | 15 |
//  |----|----|----|-----|----|----|
//  | FE | FF | FF | ... | FF | FF |
//  |----|----|----|-----|----|----|
//
//  -2 big-endian, 3 bytes
//
//  | 0  | 1  | 2  |
//  |----|----|----|
//  | FF | FF | FE |
//  |----|----|----|
//
// Truncated big-endian input is sign extended from its first byte.
package decimal

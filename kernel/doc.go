// Package kernel provides scaled integer arithmetic for fixed point decimals.
//
// A decimal number is stored as an unscaled two's complement integer and a
// scale carried next to it:
//
//  number = value * 10 ^ -scale
//
// For example:
//
//  1.23 = 123 * 10^-2
//
// Tiers
//
// The same set of operations is provided for every integer width (tier). A
// decimal column is evaluated in the narrowest tier that can hold its
// declared precision:
//
//  | Tier    | Go type        | Max Precision | Max Scale Multiplier |
//  |---------|----------------|---------------|----------------------|
//  | Int32   | int32          |  9            | 10^9                 |
//  | Int64   | int64          | 18            | 10^18                |
//  | Int128  | decimal128.Num | 38            | 10^38                |
//  | Int256  | decimal256.Num | (internal)    | 10^76                |
//  |---------|----------------|---------------|----------------------|
//
// Int256 is never a storage tier. It only holds intermediate results when a
// 128 bit computation would wrap.
//
// Overflow
//
// The raw operations of Ops wrap silently. The checked variants
// (AddChecked, MulChecked, IncreaseScale, ...) report overflow with a boolean
// so that callers on a hot path do not allocate. SafeMultiply reports
// overflow as ErrOverflow.
//
// Scale Multipliers
//
// Each tier owns a table of powers of ten generated once when the package is
// initialized. Lookups beyond the table return the sentinel -1.
//
// Rounding
//
// ScaleDownAndRound rounds half away from zero. Truncating division moves
// toward zero, so the correction for a dropped half is the sign of the
// dividend:
//
//  | value | delta | truncated | rounded |
//  |-------|-------|-----------|---------|
//  |    14 | 1     |  1        |  1      |
//  |    15 | 1     |  1        |  2      |
//  |   -15 | 1     | -1        | -2      |
//  |-------|-------|-----------|---------|
//
package kernel

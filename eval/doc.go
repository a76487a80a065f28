// Package eval evaluates decimal arithmetic.
//
// Every operator follows the same shape: raise the operands to a common
// scale, combine the integers, then move the result to the output scale.
//
//  add(x, y):
//
//    higher = max(x.scale, y.scale)
//    sum    = x * 10^(higher - x.scale) + y * 10^(higher - y.scale)
//    out    = round(sum / 10^(higher - out.scale))
//
// Paths
//
//  | Path   | When                                                        |
//  |--------|-------------------------------------------------------------|
//  | fast   | out.scale equals the combined scale and out.precision is    |
//  |        | below the tier threshold (10, 19 or 38)                     |
//  | reduce | the combined result is rescaled, rounding half away from 0  |
//  | wide   | a 32 or 64 bit operation ran in the 128 bit tier            |
//  | large  | a 128 bit operation overflowed and ran in 256 bits          |
//  |--------|-------------------------------------------------------------|
//
// Overflow
//
// With OverflowError every step is checked and a result outside
// out.precision digits is ErrOverflow. With OverflowWrap the integers wrap
// silently in every tier.
//
// Plans
//
// A Plan binds an operator to its operand types once, so per row evaluation
// does no type inference or dispatch. Plans evaluate single rows, slices of
// values and arrow Decimal128 columns.
package eval

// Package installment converts a recurring price into a fixed number of
// equal monthly charges.
//
// All arithmetic happens on integer amounts in the smallest currency unit
// (cents for USD) to avoid fractional drift. Splitting uses ceiling
// division, so the sum of installments can exceed the original total by a
// rounding residue but never undercharges.
//
// The package also carries the table of per-currency minimum chargeable
// amounts enforced by the billing provider. The table is a heuristic: for
// currencies it does not know it falls back to a conservative default, and
// the provider's own validation remains the final authority.
package installment

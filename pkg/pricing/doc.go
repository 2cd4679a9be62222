// Package pricing computes the mock's business values: printing cost,
// shipping cost, totals and slicer quotes.
//
// Printing cost models unknown part geometry with a complexity factor drawn
// uniformly from a small fixed set, so callers must only assert membership,
// never an exact figure. Shipping cost is deterministic: a base rate scaled
// by a ZIP-prefix regional modifier plus a residential surcharge, floored at
// MinShippingCost.
//
// All arithmetic runs on decimal values and is rounded to cents with
// banker's rounding, so 5.62 x 1.25 yields 7.02.
package pricing

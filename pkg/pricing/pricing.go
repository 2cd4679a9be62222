package pricing

import (
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
)

// Pricing constants.
var (
	BasePrintPrice       = decimal.RequireFromString("2.50")
	BaseShippingCost     = decimal.RequireFromString("5.62")
	MinShippingCost      = decimal.RequireFromString("3.99")
	ResidentialSurcharge = decimal.RequireFromString("0.05")
)

// ComplexityFactors is the set ComplexityFactor draws from.
var ComplexityFactors = []float64{0.8, 1.0, 1.3, 1.8, 2.5}

// intN is replaced in tests.
var intN = rand.IntN

// regionalModifiers maps a two-digit ZIP prefix to its shipping modifier.
var regionalModifiers = func() map[string]float64 {
	m := make(map[string]float64)
	set := func(mod float64, prefixes ...string) {
		for _, p := range prefixes {
			m[p] = mod
		}
	}
	set(1.2, "90", "91", "92", "93", "94", "95", "96", "97", "98", "89")
	set(1.0, "10", "11", "06", "07", "08", "09", "02", "03", "04", "05")
	set(0.9, "60", "61", "46", "47", "43", "44", "48", "49")
	set(1.0, "77", "78", "79", "33", "34", "32", "30", "31")
	set(1.15, "80", "81", "82", "83", "84", "85", "86", "87", "88")
	return m
}()

// Quote is the priced result of one order item.
type Quote struct {
	PrintingCost float64 `json:"printingCost"`
	ShippingCost float64 `json:"shippingCost"`
	TotalPrice   float64 `json:"totalPrice"`
}

// ComplexityFactor returns a uniformly random member of ComplexityFactors.
func ComplexityFactor() float64 {
	return ComplexityFactors[intN(len(ComplexityFactors))]
}

// PrintingCost returns round2(2.50 x ComplexityFactor() x quantity).
// quantity is a whole number of any size.
func PrintingCost(quantity decimal.Decimal) float64 {
	return PrintingCostWithFactor(quantity, ComplexityFactor())
}

// PrintingCostWithFactor is PrintingCost with an explicit factor.
func PrintingCostWithFactor(quantity decimal.Decimal, factor float64) float64 {
	v := BasePrintPrice.Mul(decimal.NewFromFloat(factor)).Mul(quantity)
	return round(v)
}

// RegionalModifier returns the modifier for the first two characters of
// zip, or 1.0 when the prefix is not mapped.
func RegionalModifier(zip string) float64 {
	if len(zip) >= 2 {
		if m, ok := regionalModifiers[zip[:2]]; ok {
			return m
		}
	}
	return 1.0
}

// ShippingCost returns the shipping cost for zip. Only the exact string
// "true" counts as residential.
func ShippingCost(zip, residential string) float64 {
	mod := decimal.NewFromFloat(RegionalModifier(zip))
	if residential == "true" {
		mod = mod.Add(ResidentialSurcharge)
	}
	return shippingCost(mod)
}

func shippingCost(modifier decimal.Decimal) float64 {
	cost := BaseShippingCost.Mul(modifier).RoundBank(2)
	return decimal.Max(cost, MinShippingCost).InexactFloat64()
}

// TotalPrice returns round2(printing + shipping).
func TotalPrice(printing, shipping float64) float64 {
	return round(decimal.NewFromFloat(printing).Add(decimal.NewFromFloat(shipping)))
}

// Estimate prices a single order item.
func Estimate(quantity decimal.Decimal, zip, residential string) Quote {
	q := Quote{
		PrintingCost: PrintingCost(quantity),
		ShippingCost: ShippingCost(zip, residential),
	}
	q.TotalPrice = TotalPrice(q.PrintingCost, q.ShippingCost)
	return q
}

// SliceQuote returns round2(2.50 x ComplexityFactor()), the per-part price
// reported by the slicer.
func SliceQuote() float64 {
	return PrintingCostWithFactor(decimal.NewFromInt(1), ComplexityFactor())
}

// FormatUSD renders v as "$<2dp>".
func FormatUSD(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixedBank(2)
}

// Round2 rounds v to cents.
func Round2(v float64) float64 {
	return round(decimal.NewFromFloat(v))
}

// Delay returns a uniformly random duration in [minDelay, maxDelay] at
// millisecond granularity.
func Delay(minDelay, maxDelay time.Duration) time.Duration {
	if maxDelay <= minDelay {
		return minDelay
	}
	span := int((maxDelay - minDelay) / time.Millisecond)
	return minDelay + time.Duration(intN(span+1))*time.Millisecond
}

func round(v decimal.Decimal) float64 {
	return v.RoundBank(2).InexactFloat64()
}

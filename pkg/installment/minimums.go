package installment

import "strings"

// minimumAmounts maps lowercase ISO currency codes to the smallest amount
// the billing provider accepts for a single charge, in the smallest
// currency unit. Values follow the provider's published minimums:
// https://stripe.com/docs/currencies#minimum-and-maximum-charge-amounts
var minimumAmounts = map[string]int64{
	"usd": 50,   // $0.50
	"eur": 50,   // €0.50
	"gbp": 30,   // £0.30
	"cad": 50,   // C$0.50
	"aud": 50,   // A$0.50
	"jpy": 50,   // ¥50
	"mxn": 10,   // $10 MXN
	"brl": 50,   // R$0.50
	"ars": 50,   // $0.50 ARS
	"clp": 50,   // $50 CLP
	"cop": 2000, // $2,000 COP
	"pen": 200,  // S/2.00
}

// defaultMinimumAmount is used for currencies missing from the table.
// It is a guess, not a guarantee: the provider may still reject the
// amount, and its rejection is surfaced to the caller verbatim.
const defaultMinimumAmount int64 = 50

// MinimumAmount returns the smallest chargeable amount for the currency,
// in the smallest currency unit. The lookup is case-insensitive.
func MinimumAmount(currency string) int64 {
	if min, ok := minimumAmounts[strings.ToLower(currency)]; ok {
		return min
	}
	return defaultMinimumAmount
}

package order

const (
	// Flat delivery fee in cents, waived above the free-delivery threshold.
	DeliveryFeeFlatCents       int64 = 599
	FreeDeliveryThresholdCents int64 = 5000

	taxRatePercent int64 = 10
)

// Totals is the checkout arithmetic: total = subtotal + deliveryFee + tax.
// Subtotal and savings are taken verbatim from the validated cart.
type Totals struct {
	SubtotalCents    int64
	SavingsCents     int64
	DeliveryFeeCents int64
	TaxCents         int64
	TotalCents       int64
}

func ComputeTotals(subtotalCents, savingsCents int64, method FulfillmentMethod) Totals {
	fee := DeliveryFeeCents(method, subtotalCents)
	tax := TaxCents(subtotalCents + fee)
	return Totals{
		SubtotalCents:    subtotalCents,
		SavingsCents:     savingsCents,
		DeliveryFeeCents: fee,
		TaxCents:         tax,
		TotalCents:       subtotalCents + fee + tax,
	}
}

// DeliveryFeeCents is zero for pickup and for delivery orders at or above
// the free threshold, else the flat fee.
func DeliveryFeeCents(method FulfillmentMethod, subtotalCents int64) int64 {
	if method != MethodDelivery {
		return 0
	}
	if subtotalCents >= FreeDeliveryThresholdCents {
		return 0
	}
	return DeliveryFeeFlatCents
}

// TaxCents is 10% of the taxable base, rounded half up in integer cents.
func TaxCents(baseCents int64) int64 {
	return (baseCents*taxRatePercent + 50) / 100
}

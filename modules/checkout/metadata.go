package checkout

import "strconv"

// Metadata keys planted on the subscription at checkout creation and read
// back by the webhook reconciler. These names are part of the contract
// with already-issued checkout sessions, so they must never change.
const (
	metaCancelAtTimestamp = "cancel_at_timestamp"
	metaPaymentsCount     = "payments_count"
	metaOriginalPriceID   = "original_price_id"
	metaManualPrice       = "is_manual_price"
)

// manualPriceMarker is stored as the original price id when the operator
// supplied the amount by hand and no catalog price anchors the plan.
const manualPriceMarker = "manual"

// CancellationPlan is the cancellation intent carried through provider
// metadata between checkout creation and event reconciliation.
type CancellationPlan struct {
	CancelAt        int64  // absolute cutoff, UNIX seconds
	PaymentsCount   int    // number of charges before the cutoff
	OriginalPriceID string // catalog price id, or "manual"
	ManualPrice     bool
}

// Metadata encodes the plan as provider metadata key-value pairs.
func (p CancellationPlan) Metadata() map[string]string {
	md := map[string]string{
		metaCancelAtTimestamp: strconv.FormatInt(p.CancelAt, 10),
		metaPaymentsCount:     strconv.Itoa(p.PaymentsCount),
		metaOriginalPriceID:   p.OriginalPriceID,
	}
	if p.ManualPrice {
		md[metaManualPrice] = "true"
	}
	return md
}

// CancellationPlanFromMetadata decodes a plan from subscription metadata.
// It returns false when no usable cancellation timestamp is present, which
// marks the subscription as one this service did not create.
func CancellationPlanFromMetadata(md map[string]string) (CancellationPlan, bool) {
	raw, ok := md[metaCancelAtTimestamp]
	if !ok || raw == "" {
		return CancellationPlan{}, false
	}
	cancelAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || cancelAt <= 0 {
		return CancellationPlan{}, false
	}

	plan := CancellationPlan{
		CancelAt:        cancelAt,
		OriginalPriceID: md[metaOriginalPriceID],
		ManualPrice:     md[metaManualPrice] == "true",
	}
	if n, err := strconv.Atoi(md[metaPaymentsCount]); err == nil {
		plan.PaymentsCount = n
	}
	return plan, true
}

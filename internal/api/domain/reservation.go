package domain

import (
	"encoding/json"
	"strings"
)

// A payment reservation is persisted either as the raw unsigned artifact
// string or wrapped in a JSON object ({"payment_xdr": "..."}). The wrapped
// form is decoded once here so the rest of the code only ever sees the raw
// artifact.

type wrappedReservation struct {
	PaymentXDR string `json:"payment_xdr"`
}

// DecodeReservation normalizes a stored payment reservation to the raw
// artifact string. It returns false when the stored value is empty or the
// wrapper carries no artifact.
func DecodeReservation(stored string) (string, bool) {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return "", false
	}

	if strings.HasPrefix(stored, "{") {
		var w wrappedReservation
		if err := json.Unmarshal([]byte(stored), &w); err != nil {
			return "", false
		}
		if w.PaymentXDR == "" {
			return "", false
		}
		return w.PaymentXDR, true
	}

	return stored, true
}

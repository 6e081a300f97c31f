package models

// Actor carries the opaque audit metadata supplied by the identity layer
// with every mutating call. The ledger engine never authorizes on it.
type Actor struct {
	UserID    string
	IPAddress string
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, ch := range code {
		if (ch < 'A' || ch > 'Z') && (ch < 'a' || ch > 'z') {
			return false
		}
	}
	return true
}

package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/api-sage/core-banking/internal/adapter/repository/repo_interfaces"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const numberGenerationAttempts = 5

// generateTransactionReference produces a TXN-<timestamp>-<random> reference
// unique within the current unit of work. The collision re-check is a bounded
// transparent retry; the unique index on reference_id is the backstop.
func generateTransactionReference(ctx context.Context, transactions repo_interfaces.TransactionRepository) (string, error) {
	for attempt := 0; attempt < numberGenerationAttempts; attempt++ {
		reference := fmt.Sprintf("TXN-%s-%s", time.Now().UTC().Format("20060102150405"), randomString(referenceAlphabet, 8))

		exists, err := transactions.ReferenceIDExists(ctx, reference)
		if err != nil {
			return "", err
		}
		if !exists {
			return reference, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique transaction reference after %d attempts", numberGenerationAttempts)
}

// generateAccountNumber produces an 18-digit account number: the creation
// date followed by ten random digits.
func generateAccountNumber(ctx context.Context, accounts repo_interfaces.AccountRepository) (string, error) {
	for attempt := 0; attempt < numberGenerationAttempts; attempt++ {
		number := time.Now().UTC().Format("20060102") + randomString("0123456789", 10)

		exists, err := accounts.AccountNumberExists(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique account number after %d attempts", numberGenerationAttempts)
}

func randomString(alphabet string, length int) string {
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(out)
}

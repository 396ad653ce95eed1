package pagination

import (
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	date := time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(date, "txn-42")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.True(t, date.Equal(decodedDate), "Date should match after decode")
	assert.Equal(t, "txn-42", decodedID)

	// zero dates come from undecodable records and must still round-trip
	zeroToken := EncodeToken(time.Time{}, "bad")
	decodedZero, _, err := DecodeToken(zeroToken)
	assert.NoError(t, err)
	assert.True(t, decodedZero.IsZero())
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	invalidToken := "MjAyMy0wNS0xNVQwMDowMDowMFo=" // "2023-05-15T00:00:00Z" without separator
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	invalidDateToken := "bm90YWRhdGV8aWQ=" // "notadate|id"
	_, _, err = DecodeToken(invalidDateToken)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")
}

func TestPageTransactions(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var txns []domain.Transaction
	for i := 0; i < 5; i++ {
		txns = append(txns, domain.Transaction{ID: fmt.Sprintf("t%d", i), Date: base.AddDate(0, 0, i)})
	}
	// same date as t4, ordered after it by id
	txns = append(txns, domain.Transaction{ID: "t5", Date: base.AddDate(0, 0, 4)})

	page, next, err := PageTransactions(txns, 2, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"t4", "t5"}, ids(page))
	require.NotEmpty(t, next)

	page, next, err = PageTransactions(txns, 2, next)
	require.NoError(t, err)
	assert.Equal(t, []string{"t3", "t2"}, ids(page))

	page, next, err = PageTransactions(txns, 2, next)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t0"}, ids(page))
	assert.Empty(t, next)

	_, _, err = PageTransactions(txns, 2, "garbage!")
	assert.Error(t, err)
}

func ids(txns []domain.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

package pagination

import (
	"encoding/base64"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates a base64 token pointing after the transaction with the given
// date and id.
func EncodeToken(date time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", date.Format(timeFormat), id)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token created by EncodeToken.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return date, parts[1], nil
}

// compareNewestFirst orders transactions by date descending, then id ascending.
func compareNewestFirst(aDate time.Time, aID string, bDate time.Time, bID string) int {
	if c := bDate.Compare(aDate); c != 0 {
		return c
	}
	return strings.Compare(aID, bID)
}

// PageTransactions sorts txns newest first and returns at most limit of them after
// the position encoded in token (empty for the first page). The returned token is
// empty on the last page.
func PageTransactions(txns []domain.Transaction, limit int, token string) ([]domain.Transaction, string, error) {
	sorted := slices.Clone(txns)
	slices.SortFunc(sorted, func(a, b domain.Transaction) int {
		return compareNewestFirst(a.Date, a.ID, b.Date, b.ID)
	})

	start := 0
	if token != "" {
		date, id, err := DecodeToken(token)
		if err != nil {
			return nil, "", err
		}
		start, _ = slices.BinarySearchFunc(sorted, struct{}{}, func(t domain.Transaction, _ struct{}) int {
			if compareNewestFirst(t.Date, t.ID, date, id) <= 0 {
				return -1
			}
			return 1
		})
	}
	if limit <= 0 {
		limit = len(sorted)
	}
	end := min(start+limit, len(sorted))
	page := sorted[start:end]

	next := ""
	if end < len(sorted) && len(page) > 0 {
		last := page[len(page)-1]
		next = EncodeToken(last.Date, last.ID)
	}
	return page, next, nil
}

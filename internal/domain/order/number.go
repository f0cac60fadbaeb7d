package order

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"grocery-api/internal/pkg/errs"
)

// Order numbers are human-readable, lexically sortable identifiers of the
// form ORD-YYYYMMDD-#### with a 4-digit daily sequence starting at 1.

const numberDateLayout = "20060102"

var numberPattern = regexp.MustCompile(`^ORD-(\d{8})-(\d{4})$`)

var ErrMalformedNumber = errs.New("malformed order number")

// FormatNumber renders the order number for the given day and sequence.
func FormatNumber(day time.Time, seq int) string {
	return fmt.Sprintf("ORD-%s-%04d", day.Format(numberDateLayout), seq)
}

// ParseNumber splits an order number back into its day and sequence.
// The day is returned at midnight UTC.
func ParseNumber(number string) (time.Time, int, error) {
	m := numberPattern.FindStringSubmatch(number)
	if m == nil {
		return time.Time{}, 0, ErrMalformedNumber
	}
	day, err := time.Parse(numberDateLayout, m[1])
	if err != nil {
		return time.Time{}, 0, ErrMalformedNumber
	}
	seq, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, 0, ErrMalformedNumber
	}
	return day, seq, nil
}

// ValidNumber reports whether the string matches the fixed format.
func ValidNumber(number string) bool {
	return numberPattern.MatchString(number)
}

// CounterKey is the daily counter document key for the given instant,
// e.g. "orders-20251106". The date is taken from the instant's location;
// a transaction straddling midnight keeps the key captured at entry.
func CounterKey(now time.Time) string {
	return "orders-" + now.Format(numberDateLayout)
}

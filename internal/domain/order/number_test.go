//go:build unit

package order_test

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-api/internal/domain/order"
)

func TestFormatNumber(t *testing.T) {
	day := time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "ORD-20260315-0001", order.FormatNumber(day, 1))
	assert.Equal(t, "ORD-20260315-0042", order.FormatNumber(day, 42))
	assert.Equal(t, "ORD-20260315-9999", order.FormatNumber(day, 9999))
}

func TestParseNumber_Malformed(t *testing.T) {
	for _, input := range []string{
		"",
		"ORD-20260315",
		"ORD-20260315-1",
		"ORD-2026031-0001",
		"ord-20260315-0001",
		"ORD-20260315-00001",
		"ORD-20269999-0001",
		"XYZ-20260315-0001",
	} {
		t.Run(input, func(t *testing.T) {
			_, _, err := order.ParseNumber(input)
			assert.ErrorIs(t, err, order.ErrMalformedNumber)
			assert.False(t, order.ValidNumber(input))
		})
	}
}

func TestNumberRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("format then parse returns the day and sequence", prop.ForAll(
		func(daysSinceEpoch int, seq int) bool {
			day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, daysSinceEpoch)
			number := order.FormatNumber(day, seq)

			parsedDay, parsedSeq, err := order.ParseNumber(number)
			if err != nil {
				return false
			}
			return parsedDay.Equal(day) && parsedSeq == seq && order.ValidNumber(number)
		},
		gen.IntRange(0, 3650),
		gen.IntRange(1, 9999),
	))

	properties.TestingRun(t)
}

func TestCounterKey(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	require.Equal(t, "orders-20260315", order.CounterKey(now))
}

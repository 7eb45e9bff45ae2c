package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		email, err := NewEmail("  Jane@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", email)
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, raw := range []string{"", "plainaddress", "@example.com", "jane@", "jane@nodot"} {
			_, err := NewEmail(raw)
			assert.ErrorIs(t, err, ErrInvalidEmail, "input %q", raw)
		}
	})
}

func TestNewName(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		name, err := NewName("  Bench Press  ")
		require.NoError(t, err)
		assert.Equal(t, "Bench Press", name)
	})

	t.Run("rejects empty and oversized names", func(t *testing.T) {
		_, err := NewName("   ")
		assert.ErrorIs(t, err, ErrInvalidName)

		_, err = NewName(strings.Repeat("a", 121))
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("accepts a name at the length limit", func(t *testing.T) {
		_, err := NewName(strings.Repeat("a", 120))
		assert.NoError(t, err)
	})
}

func TestNewOrderValue(t *testing.T) {
	order, err := NewOrderValue(0)
	require.NoError(t, err)
	assert.Equal(t, 0, order)

	_, err = NewOrderValue(-1)
	assert.ErrorIs(t, err, ErrInvalidOrderValue)
}

func TestNewSetReps(t *testing.T) {
	reps, err := NewSetReps(12)
	require.NoError(t, err)
	assert.Equal(t, 12, reps)

	for _, raw := range []int{0, -3} {
		_, err := NewSetReps(raw)
		assert.ErrorIs(t, err, ErrInvalidSetReps, "input %d", raw)
	}
}

func TestNewSetWeight(t *testing.T) {
	t.Run("zero allowed for bodyweight movements", func(t *testing.T) {
		weight, err := NewSetWeight(0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, weight)
	})

	t.Run("rejects negative weight", func(t *testing.T) {
		_, err := NewSetWeight(-0.5)
		assert.ErrorIs(t, err, ErrInvalidSetWeight)
	})
}

func TestNewPagination(t *testing.T) {
	t.Run("applies default page size", func(t *testing.T) {
		skip, take, err := NewPagination(0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), skip)
		assert.Equal(t, int64(20), take)
	})

	t.Run("passes a valid window through", func(t *testing.T) {
		skip, take, err := NewPagination(40, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(40), skip)
		assert.Equal(t, int64(100), take)
	})

	t.Run("rejects out-of-range windows", func(t *testing.T) {
		cases := [][2]int64{{-1, 10}, {0, -5}, {0, 101}}
		for _, c := range cases {
			_, _, err := NewPagination(c[0], c[1])
			assert.ErrorIs(t, err, ErrInvalidPagination, "skip=%d take=%d", c[0], c[1])
		}
	})
}

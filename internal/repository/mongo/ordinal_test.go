package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestNextOrdinal(t *testing.T) {
	tests := []struct {
		name       string
		requested  *int
		maxInScope *int
		want       int
	}{
		{"empty scope starts at zero", nil, nil, 0},
		{"appends after the highest sibling", nil, intPtr(2), 3},
		{"single sibling at zero", nil, intPtr(0), 1},
		{"explicit value wins over empty scope", intPtr(5), nil, 5},
		{"explicit value wins over siblings", intPtr(1), intPtr(9), 1},
		{"explicit zero is preserved", intPtr(0), intPtr(4), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextOrdinal(tt.requested, tt.maxInScope))
		})
	}
}

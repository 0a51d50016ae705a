package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDayAssignment(t *testing.T) {
	tests := []struct {
		name    string
		batch   []int
		taken   []int
		wantErr string
	}{
		{"empty batch", nil, nil, ""},
		{"full fresh calendar", seq(1, 24), nil, ""},
		{"fills remaining day", []int{24}, seq(1, 23), ""},
		{"day zero", []int{0}, nil, "out of range"},
		{"day 25", []int{25}, nil, "out of range"},
		{"in-batch duplicate", []int{1, 2, 2, 3}, nil, "appears twice"},
		{"pre-existing conflict", []int{5}, []int{5}, "already has a picture"},
		{"would exceed 24", []int{22, 23, 24}, seq(1, 22), "exceed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDayAssignment(tt.batch, tt.taken)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidatePublish(t *testing.T) {
	assert.NoError(t, ValidatePublish(24))

	err := ValidatePublish(23)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	// Exactly 24, not at-least-24.
	assert.Error(t, ValidatePublish(25))
	assert.Error(t, ValidatePublish(0))
}

func TestValidateYearUnique(t *testing.T) {
	assert.NoError(t, ValidateYearUnique(2023, false))

	err := ValidateYearUnique(2023, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDisplay(t *testing.T) {
	june2025 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("prefers the active year", func(t *testing.T) {
		cands := []Calendar{
			{ID: 3, Year: 2025},
			{ID: 2, Year: 2024},
			{ID: 1, Year: 2023},
		}
		got := ResolveDisplay(cands, june2025)
		require.NotNil(t, got)
		assert.Equal(t, uint(3), got.ID)
	})

	t.Run("falls back to the most recent year", func(t *testing.T) {
		cands := []Calendar{
			{ID: 2, Year: 2023},
			{ID: 1, Year: 2021},
		}
		got := ResolveDisplay(cands, june2025)
		require.NotNil(t, got)
		assert.Equal(t, 2023, got.Year)
	})

	t.Run("nothing to show", func(t *testing.T) {
		assert.Nil(t, ResolveDisplay(nil, june2025))
	})
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPaginationParams(t *testing.T) {
	p := GetPaginationParams(0, -5)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 0, p.Limit)

	p = GetPaginationParams(3, 25)
	require.Equal(t, 3, p.Page)
	require.Equal(t, 25, p.Limit)
}

func TestCalculateOffset(t *testing.T) {
	require.Equal(t, 0, PaginationParams{Page: 1, Limit: 20}.CalculateOffset())
	require.Equal(t, 40, PaginationParams{Page: 3, Limit: 20}.CalculateOffset())
	require.Equal(t, 0, PaginationParams{Page: 5, Limit: 0}.CalculateOffset())
}

func TestCalculateMeta(t *testing.T) {
	meta := CalculateMeta(45, 2, 20)
	require.Equal(t, 2, meta.Page)
	require.Equal(t, 20, meta.Limit)
	require.Equal(t, int64(45), meta.TotalCount)
	require.Equal(t, 3, meta.TotalPages)

	// Exact multiple does not add a trailing empty page.
	require.Equal(t, 2, CalculateMeta(40, 1, 20).TotalPages)

	// Unpaginated: everything is one page.
	meta = CalculateMeta(7, 4, 0)
	require.Equal(t, 1, meta.Page)
	require.Equal(t, 7, meta.Limit)
	require.Equal(t, 1, meta.TotalPages)

	require.Equal(t, 0, CalculateMeta(0, 1, 20).TotalPages)
}

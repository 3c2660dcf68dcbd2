package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    uint
	Value string
}

func TestMapSlice(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, MapSlice[int, string](nil, strconv.Itoa))
	})

	t.Run("maps in order", func(t *testing.T) {
		assert.Equal(t, []string{"1", "2", "3"}, MapSlice([]int{1, 2, 3}, strconv.Itoa))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		got := MapSlice([]int{}, strconv.Itoa)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestMapRows(t *testing.T) {
	parse := func(r *row) (int, error) { return strconv.Atoi(r.Value) }
	id := func(r *row) uint { return r.ID }

	t.Run("skips nil rows", func(t *testing.T) {
		got, err := MapRows([]*row{{ID: 1, Value: "10"}, nil, {ID: 2, Value: "20"}}, parse, id)
		require.NoError(t, err)
		assert.Equal(t, []int{10, 20}, got)
	})

	t.Run("names the failing row", func(t *testing.T) {
		_, err := MapRows([]*row{{ID: 1, Value: "10"}, {ID: 7, Value: "x"}}, parse, id)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 7")

		var numErr *strconv.NumError
		assert.True(t, errors.As(err, &numErr))
	})

	t.Run("nil input gives empty result", func(t *testing.T) {
		got, err := MapRows[row, int, uint](nil, parse, id)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

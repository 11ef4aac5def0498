// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tt_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ttcore/tensor"
	"github.com/born-ml/ttcore/tt"
)

func TestPublicAPI_RoundTrip(t *testing.T) {
	x, err := tt.Random(tensor.Shape{6, 5, 6, 5}, tt.RandomConfig{RanksTT: []int{4}, RanksTucker: []int{3}, Seed: 1})
	require.NoError(t, err)

	y, err := tt.Add(x, x)
	require.NoError(t, err)
	require.NoError(t, y.Round(tt.RoundConfig{Eps: 1e-10, Algorithm: tt.SVD}))
	assert.LessOrEqual(t, y.RanksTT()[1], 4)

	half := tt.Scale(y, 0.5)
	e, err := tt.RelativeError(x, half)
	require.NoError(t, err)
	assert.Less(t, e, 1e-8)

	path := filepath.Join(t.TempDir(), "half.safetensors")
	require.NoError(t, tt.Save(path, half, map[string]string{"note": "x"}))
	z, meta, err := tt.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "x", meta["note"])

	d, err := tt.Distance(half, z)
	require.NoError(t, err)
	assert.Less(t, d, 1e-12*tt.Norm(half))
}

func TestPublicAPI_Errors(t *testing.T) {
	x, err := tt.Random(tensor.Shape{3, 3}, tt.RandomConfig{Seed: 2})
	require.NoError(t, err)

	err = x.Orthogonalize(5)
	var de *tt.DimensionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 5, de.Index)
	assert.True(t, errors.Is(err, tt.ErrDimension))

	_, err = x.RoundTucker(tt.TuckerConfig{Rank: 4})
	assert.True(t, errors.Is(err, tt.ErrShape))

	_, err = tt.ParseAlgorithm("lu")
	assert.True(t, errors.Is(err, tt.ErrInvalidArgument))
}

func TestPublicAPI_Automata(t *testing.T) {
	x, err := tt.WeightMask(5, 2, 2)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, tt.Sum(x), 1e-12)

	idx := tt.AcceptedInputs(x)
	require.Len(t, idx, 10)
	assert.Equal(t, []int{0, 0, 0, 1, 1}, idx[0])

	v, err := x.At(1, 0, 1, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-12)
}

// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package accel

import (
	"math"
	"slices"
	"testing"

	"github.com/haneulab/accelkit/testutil"
)

func TestNormal(t *testing.T) {
	t.Parallel()

	a := Normal(4, 3, 42)
	testutil.AssertEqual(t, a.Rows, 4)
	testutil.AssertEqual(t, a.Cols, 3)
	testutil.AssertEqual(t, len(a.Data), 12)

	// Same seed, same matrix.
	testutil.AssertEqual(t, Normal(4, 3, 42), a)

	b := Normal(4, 3, 7)
	if slices.Equal(a.Data, b.Data) {
		t.Fatal("different seeds produced the same matrix")
	}
}

func TestNormalDistribution(t *testing.T) {
	t.Parallel()

	m := Normal(100, 100, 42)

	var sum, sumSq float64
	for _, v := range m.Data {
		sum += float64(v)
		sumSq += float64(v) * float64(v)
	}
	n := float64(len(m.Data))
	mean := sum / n
	variance := sumSq/n - mean*mean

	if math.Abs(mean) > 0.05 {
		t.Errorf("mean = %v, want around 0", mean)
	}
	if math.Abs(variance-1) > 0.1 {
		t.Errorf("variance = %v, want around 1", variance)
	}
}

func TestRow(t *testing.T) {
	t.Parallel()

	m := Matrix{Rows: 2, Cols: 3, Data: []float32{1, 2, 3, 4, 5, 6}}
	testutil.AssertEqual(t, m.Row(0), []float32{1, 2, 3})
	testutil.AssertEqual(t, m.Row(1), []float32{4, 5, 6})
}

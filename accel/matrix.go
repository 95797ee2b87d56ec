// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package accel

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Matrix is a dense, row-major matrix of 32-bit floats.
type Matrix struct {
	Rows, Cols int
	Data       []float32
}

// Row returns the i-th row of m. The returned slice shares m's backing
// store.
func (m Matrix) Row(i int) []float32 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Normal returns a rows×cols matrix drawn from the standard normal
// distribution. The same seed always yields the same matrix.
func Normal(rows, cols int, seed uint64) Matrix {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
		Src:   rand.NewSource(seed),
	}
	data := make([]float32, rows*cols)
	for i := range data {
		data[i] = float32(dist.Rand())
	}
	return Matrix{Rows: rows, Cols: cols, Data: data}
}

// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package accel

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

func init() { Register(100, cpuDetector{}) }

// cpuDetector reports the host processor. It is always available and
// serves as the fallback platform.
type cpuDetector struct{}

func (cpuDetector) Platform() string                   { return "cpu" }
func (cpuDetector) Available(ctx context.Context) bool { return true }

func (cpuDetector) Devices(ctx context.Context) ([]Device, error) {
	return []Device{{Kind: "cpu", ID: 0}}, nil
}

// CPU returns the host processor backend.
func CPU() Backend { return cpuBackend{} }

type cpuBackend struct{}

func (cpuBackend) Name() string { return "cpu" }

func (cpuBackend) MatMul(a, b Matrix) Result {
	r := &cpuResult{done: make(chan struct{})}
	go func() {
		defer close(r.done)
		m, err := multiply(a, b)
		if err != nil {
			r.err = &ComputeError{Backend: "cpu", Err: err}
			return
		}
		r.m = m
	}()
	return r
}

type cpuResult struct {
	done chan struct{}
	m    Matrix
	err  error
}

func (r *cpuResult) Wait(ctx context.Context) (Matrix, error) {
	select {
	case <-r.done:
		return r.m, r.err
	case <-ctx.Done():
		return Matrix{}, ctx.Err()
	}
}

func multiply(a, b Matrix) (Matrix, error) {
	if a.Cols != b.Rows {
		return Matrix{}, fmt.Errorf("dimension mismatch: %dx%d by %dx%d", a.Rows, a.Cols, b.Rows, b.Cols)
	}
	c := Matrix{Rows: a.Rows, Cols: b.Cols, Data: make([]float32, a.Rows*b.Cols)}
	if a.Rows == 0 || a.Cols == 0 || b.Cols == 0 {
		return c, nil
	}
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas32.General{Rows: a.Rows, Cols: a.Cols, Stride: a.Cols, Data: a.Data},
		blas32.General{Rows: b.Rows, Cols: b.Cols, Stride: b.Cols, Data: b.Data},
		0,
		blas32.General{Rows: c.Rows, Cols: c.Cols, Stride: c.Cols, Data: c.Data})
	return c, nil
}

// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package accel probes the machine for compute accelerator platforms and
// runs matrix computations on a backend.
//
// Platforms are discovered through registered [Detector] implementations,
// ordered by priority. The device list reported by [Devices] is always
// that of the preferred available platform, mirroring how accelerator
// runtimes expose devices: a machine with a GPU reports its GPU devices,
// everything else falls back to the host CPU.
package accel

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/haneulab/accelkit/syncx"
)

// Device describes one compute device of a platform: a kind label and a
// platform-local identifier.
type Device struct {
	Kind string
	ID   int
}

// Detector probes for one accelerator platform.
type Detector interface {
	// Platform returns the platform name, like "cuda" or "cpu".
	Platform() string
	// Available cheaply reports whether the platform is present on this
	// machine. It never fails: an inconclusive probe is "not available".
	Available(ctx context.Context) bool
	// Devices enumerates the platform's devices. Unlike Available, it
	// performs a real query and may fail even when Available returned
	// true, for example when a management tool is present but broken.
	Devices(ctx context.Context) ([]Device, error)
}

// Backend multiplies matrices on some compute substrate.
type Backend interface {
	// Name returns the backend name, like "cpu".
	Name() string
	// MatMul dispatches the computation of the product a×b and returns
	// immediately. The product is obtained from the Result.
	MatMul(a, b Matrix) Result
}

// Result is an asynchronously completing computation.
type Result interface {
	// Wait blocks until the dispatched computation finishes and returns
	// its result, or until ctx is done.
	Wait(ctx context.Context) (Matrix, error)
}

// EnumerationError reports a failure to enumerate the devices of a
// platform.
type EnumerationError struct {
	Platform string
	Err      error
}

func (e *EnumerationError) Error() string {
	if e.Platform == "" {
		return fmt.Sprintf("enumerating devices: %v", e.Err)
	}
	return fmt.Sprintf("enumerating %s devices: %v", e.Platform, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// ComputeError reports a failure of a dispatched computation.
type ComputeError struct {
	Backend string
	Err     error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("%s matmul: %v", e.Backend, e.Err)
}

func (e *ComputeError) Unwrap() error { return e.Err }

// Registry holds platform detectors ordered by priority.
// The zero value is an empty registry ready to use.
type Registry struct {
	detectors syncx.Map[string, registration]
}

type registration struct {
	priority int
	det      Detector
}

// Register makes d available for platform selection. Detectors with a
// lower priority are preferred. Register panics if a detector for the
// same platform is already registered.
func (r *Registry) Register(priority int, d Detector) {
	if _, loaded := r.detectors.LoadOrStore(d.Platform(), registration{priority, d}); loaded {
		panic("accel: duplicate detector registration for platform " + d.Platform())
	}
}

// preferred returns the highest-priority available detector, or nil if
// none is available.
func (r *Registry) preferred(ctx context.Context) Detector {
	var regs []registration
	r.detectors.Range(func(_ string, reg registration) bool {
		regs = append(regs, reg)
		return true
	})
	slices.SortFunc(regs, func(a, b registration) int {
		if c := cmp.Compare(a.priority, b.priority); c != 0 {
			return c
		}
		return cmp.Compare(a.det.Platform(), b.det.Platform())
	})
	for _, reg := range regs {
		if reg.det.Available(ctx) {
			return reg.det
		}
	}
	return nil
}

// DefaultPlatform returns the name of the preferred available platform,
// or an empty string if the registry has no available platform.
func (r *Registry) DefaultPlatform(ctx context.Context) string {
	if d := r.preferred(ctx); d != nil {
		return d.Platform()
	}
	return ""
}

// Devices enumerates the devices of the preferred available platform.
// Failures are reported as an [*EnumerationError].
func (r *Registry) Devices(ctx context.Context) ([]Device, error) {
	d := r.preferred(ctx)
	if d == nil {
		return nil, &EnumerationError{Err: errors.New("no platform available")}
	}
	devices, err := d.Devices(ctx)
	if err != nil {
		return nil, &EnumerationError{Platform: d.Platform(), Err: err}
	}
	return devices, nil
}

// DefaultRegistry is the registry used by the package-level functions.
// Detectors for the cuda, metal and cpu platforms register themselves
// here at init time.
var DefaultRegistry = new(Registry)

// Register makes d available for platform selection in the
// [DefaultRegistry]. Detectors with a lower priority are preferred.
func Register(priority int, d Detector) { DefaultRegistry.Register(priority, d) }

// DefaultPlatform returns the name of the preferred available platform.
// The cpu platform is always available, so it never returns an empty
// string.
func DefaultPlatform(ctx context.Context) string { return DefaultRegistry.DefaultPlatform(ctx) }

// Devices enumerates the devices of the preferred available platform.
func Devices(ctx context.Context) ([]Device, error) { return DefaultRegistry.Devices(ctx) }

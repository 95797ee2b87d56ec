// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package accel

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"
)

func init() {
	Register(10, cudaDetector{})
	Register(20, metalDetector{})
}

// probeTimeout bounds the external tools that device probes shell out
// to. A wedged nvidia-smi must not hang enumeration forever.
const probeTimeout = 5 * time.Second

// cudaDetector probes for NVIDIA GPUs. It prefers asking nvidia-smi and
// falls back to the /dev/nvidia* device nodes when the tool is missing.
type cudaDetector struct{}

func (cudaDetector) Platform() string { return "cuda" }

func (cudaDetector) Available(ctx context.Context) bool {
	if _, err := exec.LookPath("nvidia-smi"); err == nil {
		return true
	}
	return len(devNodes()) > 0
}

func (cudaDetector) Devices(ctx context.Context) ([]Device, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if smi, err := exec.LookPath("nvidia-smi"); err == nil {
		out, err := exec.CommandContext(ctx, smi, "--query-gpu=index,name", "--format=csv,noheader").Output()
		if err != nil {
			return nil, fmt.Errorf("running nvidia-smi: %w", err)
		}
		return parseSMIDevices(string(out))
	}

	nodes := devNodes()
	if len(nodes) == 0 {
		return nil, errors.New("no NVIDIA device nodes")
	}
	return nodeDevices(nodes), nil
}

// parseSMIDevices parses the "index, name" lines printed by
// "nvidia-smi --query-gpu=index,name --format=csv,noheader".
func parseSMIDevices(out string) ([]Device, error) {
	var devices []Device
	for line := range strings.Lines(out) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx, name, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("malformed nvidia-smi line %q", line)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil {
			return nil, fmt.Errorf("malformed nvidia-smi line %q: %v", line, err)
		}
		devices = append(devices, Device{Kind: strings.TrimSpace(name), ID: id})
	}
	if len(devices) == 0 {
		return nil, errors.New("nvidia-smi reported no devices")
	}
	return devices, nil
}

// devNodes returns the NVIDIA GPU device nodes, like /dev/nvidia0.
// Control nodes (nvidiactl, nvidia-uvm) don't match the pattern.
func devNodes() []string {
	nodes, _ := filepath.Glob("/dev/nvidia[0-9]*")
	return nodes
}

// nodeDevices derives devices from GPU device nodes, ordered by ID.
// Node names carry no model information, so the kind is generic.
func nodeDevices(nodes []string) []Device {
	var devices []Device
	for _, node := range nodes {
		id, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(node), "nvidia"))
		if err != nil {
			continue
		}
		devices = append(devices, Device{Kind: "NVIDIA GPU", ID: id})
	}
	slices.SortFunc(devices, func(a, b Device) int { return cmp.Compare(a.ID, b.ID) })
	return devices
}

// metalDetector probes for an Apple silicon GPU.
type metalDetector struct{}

func (metalDetector) Platform() string { return "metal" }

func (metalDetector) Available(ctx context.Context) bool {
	return runtime.GOOS == "darwin" && runtime.GOARCH == "arm64"
}

func (metalDetector) Devices(ctx context.Context) ([]Device, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "sysctl", "-n", "machdep.cpu.brand_string").Output()
	if err != nil {
		return nil, fmt.Errorf("running sysctl: %w", err)
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return nil, errors.New("sysctl reported no chip name")
	}
	return []Device{{Kind: name, ID: 0}}, nil
}

// Package sysmon describes the host the calculator runs on: Go runtime,
// processor count and the CPU features relevant to 64-bit modular
// multiplication.
package sysmon

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Stats holds a single snapshot of the execution environment.
type Stats struct {
	GoVersion  string
	OS         string
	Arch       string
	NumCPU     int
	GOMAXPROCS int
	// Features lists the detected CPU extensions, in a fixed order.
	Features []string
}

// Sample collects the current environment.
func Sample() Stats {
	return Stats{
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Features:   cpuFeatures(),
	}
}

func cpuFeatures() []string {
	var feats []string
	add := func(ok bool, name string) {
		if ok {
			feats = append(feats, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasADX, "adx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasSVE, "sve")
	}
	return feats
}

// FeatureString returns the features joined by commas, or "none".
func (s Stats) FeatureString() string {
	if len(s.Features) == 0 {
		return "none"
	}
	return strings.Join(s.Features, ",")
}

// String renders the snapshot on one line.
func (s Stats) String() string {
	return fmt.Sprintf("%s %s/%s, %d CPUs (GOMAXPROCS %d), features: %s",
		s.GoVersion, s.OS, s.Arch, s.NumCPU, s.GOMAXPROCS, s.FeatureString())
}

package format

import "fmt"

// MemorySplit describes how a model's memory is divided between system RAM
// and VRAM, with sizes and percentages already formatted for display.
type MemorySplit struct {
	CPUSize    string
	CPUPercent int
	GPUSize    string
	GPUPercent int
	Display    string
}

// SplitMemory computes the CPU/GPU split for a model of total bytes with
// vram bytes resident on the GPU. A reported vram larger than the total is
// clamped; a zero total renders as "N/A".
func SplitMemory(total, vram int64) MemorySplit {
	if total == 0 {
		return MemorySplit{
			CPUSize: "0 B",
			GPUSize: "0 B",
			Display: "N/A",
		}
	}

	if vram < 0 {
		vram = 0
	}
	if vram > total {
		vram = total
	}

	cpuBytes := total - vram
	split := MemorySplit{
		CPUSize:    Size(cpuBytes),
		CPUPercent: roundPercent(cpuBytes, total),
		GPUSize:    Size(vram),
		GPUPercent: roundPercent(vram, total),
	}

	switch {
	case split.CPUPercent == 0:
		split.Display = fmt.Sprintf("%s (100%% GPU)", split.GPUSize)
	case split.GPUPercent == 0:
		split.Display = fmt.Sprintf("%s (100%% CPU)", split.CPUSize)
	default:
		split.Display = fmt.Sprintf("%s (%d%%) / %s (%d%%)",
			split.CPUSize, split.CPUPercent, split.GPUSize, split.GPUPercent)
	}

	return split
}

func roundPercent(part, total int64) int {
	return int((float64(part)/float64(total))*100 + 0.5)
}

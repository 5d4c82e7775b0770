package chart

import "fmt"

var byteUnits = []string{"B", "KB", "MB", "GB"}

// FormatByteSize renders n with binary units and one decimal place, using the
// largest unit whose scaled value is at least 1. Zero and negative sizes
// return "0 B".
//
//	FormatByteSize(1536)    // "1.5 KB"
//	FormatByteSize(1 << 30) // "1.0 GB"
func FormatByteSize(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	v := float64(n)
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", v, byteUnits[unit])
}

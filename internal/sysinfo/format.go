package sysinfo

import (
	"math"
	"strconv"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders n with a binary unit and at most two decimals, e.g.
// "1.5 KB".
func FormatBytes(n uint64) string {
	if n == 0 {
		return "0 B"
	}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + " " + byteUnits[i]
}

// Band is a severity bucket used to colour a gauge.
type Band int

const (
	BandOK Band = iota
	BandWarn
	BandCritical
)

// LoadBand buckets a usage percentage: above 70 is critical, above 50 a
// warning.
func LoadBand(pct int) Band {
	switch {
	case pct > 70:
		return BandCritical
	case pct > 50:
		return BandWarn
	default:
		return BandOK
	}
}

// BatteryBand buckets a charge level: above 50 is fine, above 20 a warning.
func BatteryBand(level int) Band {
	switch {
	case level > 50:
		return BandOK
	case level > 20:
		return BandWarn
	default:
		return BandCritical
	}
}

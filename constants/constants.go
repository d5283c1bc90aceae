package constants

import (
	"os"
	"strconv"
)

func GetHTTPAddr() string {
	if addr := os.Getenv("ADAPTUNE_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}

// GetBendRange is the number of semitones a full pitch-bend deflection
// covers on the receiving synth. ±2 is the common hardware default.
func GetBendRange() float64 {
	if v := os.Getenv("ADAPTUNE_BEND_RANGE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return 2
}

package engine

import (
	"fmt"
	"strconv"
)

type InvalidMeanModeError struct {
	Value string
}

func (e InvalidMeanModeError) Error() string {
	return fmt.Sprintf("invalid mean mode flag: %q (want a boolean)", e.Value)
}

// ParseMeanMode maps loose boolean text from the transports onto the
// mean-centering flag. Anything strconv.ParseBool rejects is an
// InvalidMeanModeError and the caller keeps the prior mode.
func ParseMeanMode(v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, InvalidMeanModeError{Value: v}
	}
	return b, nil
}

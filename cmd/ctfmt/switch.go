package main

import (
	"fmt"
	"strings"
)

// switchValue is the value of an auto|on|off flag (--color, --ui).
type switchValue int8

const (
	switchAuto switchValue = iota
	switchOn
	switchOff
)

func parseSwitch(flag, value string) (switchValue, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on", "always", "true":
		return switchOn, nil
	case "off", "never", "false":
		return switchOff, nil
	}
	return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// enabled decides auto with detect, which is only called for auto.
func (v switchValue) enabled(detect func() bool) bool {
	switch v {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return detect()
}

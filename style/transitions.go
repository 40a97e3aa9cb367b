package style

import (
	"strconv"
	"strings"
)

// RefreshRateSeconds is the assumed frame interval used to convert a CSS
// transition's duration into a frame count, matching css_parser.py's
// REFRESH_RATE_SEC.
const RefreshRateSeconds = 0.033

// Transition describes a single property's animated change between two
// renders, as produced by DiffStyles.
type Transition struct {
	OldValue  float64
	NewValue  float64
	NumFrames int
}

// parseTransitionSpec parses a "transition" declaration value, a comma-
// separated list of "<property> <seconds>s" items, into a map of property
// name to frame count. Matches css_parser.py's parse_transition.
func parseTransitionSpec(value string) map[string]int {
	out := map[string]int{}
	if value == "" {
		return out
	}
	for _, item := range strings.Split(value, ",") {
		fields := strings.Fields(strings.TrimSpace(item))
		if len(fields) != 2 {
			continue
		}
		property := fields[0]
		duration := fields[1]
		if !strings.HasSuffix(duration, "s") {
			continue
		}
		seconds, err := strconv.ParseFloat(strings.TrimSuffix(duration, "s"), 64)
		if err != nil {
			continue
		}
		out[property] = int(seconds / RefreshRateSeconds)
	}
	return out
}

// DiffStyles compares oldStyle and newStyle against newStyle's "transition"
// declaration and returns one Transition per property that is both listed
// as transitioning and actually changed value, matching css_parser.py's
// diff_styles.
func DiffStyles(oldStyle, newStyle map[string]string) map[string]Transition {
	out := map[string]Transition{}
	for property, numFrames := range parseTransitionSpec(newStyle["transition"]) {
		oldRaw, hasOld := oldStyle[property]
		newRaw, hasNew := newStyle[property]
		if !hasOld || !hasNew || oldRaw == newRaw {
			continue
		}
		oldValue, err1 := strconv.ParseFloat(oldRaw, 64)
		newValue, err2 := strconv.ParseFloat(newRaw, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out[property] = Transition{OldValue: oldValue, NewValue: newValue, NumFrames: numFrames}
	}
	return out
}

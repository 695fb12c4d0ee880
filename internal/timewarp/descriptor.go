package timewarp

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"time-warp/internal/models"
)

// Parse and nesting errors. All are terminal user-input failures; nothing in
// this package retries.
var (
	ErrInvalidMode    = errors.New("invalid travel mode: expected \"to\" or \"by\"")
	ErrInvalidTarget  = errors.New("invalid travel target: not a recognizable date/time")
	ErrInvalidDelta   = errors.New("invalid travel delta: not a recognizable duration")
	ErrNestedRelative = errors.New("cannot nest a relative travel inside another relative travel")
)

// Absolute targets are accepted in any of these layouts, interpreted in UTC.
var targetLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDescriptor builds an OverrideDescriptor from command tokens. The mode
// token must be "to" (absolute) or "by" (relative), case-insensitive. A
// descriptor is never constructed from tokens that failed to parse.
func ParseDescriptor(modeToken, paramToken string) (models.OverrideDescriptor, error) {
	switch strings.ToLower(modeToken) {
	case "to":
		at, err := ParseTarget(paramToken)
		if err != nil {
			return models.OverrideDescriptor{}, err
		}
		return models.OverrideDescriptor{Mode: models.ModeAbsolute, Param: at.UnixMilli()}, nil
	case "by":
		delta, err := ParseDelta(paramToken)
		if err != nil {
			return models.OverrideDescriptor{}, err
		}
		return models.OverrideDescriptor{Mode: models.ModeRelative, Param: delta.Milliseconds()}, nil
	default:
		return models.OverrideDescriptor{}, fmt.Errorf("%w, got %q", ErrInvalidMode, modeToken)
	}
}

// ParseTarget parses an absolute travel target. Calendar forms are read in
// UTC; a bare integer is taken as epoch milliseconds.
func ParseTarget(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty target", ErrInvalidTarget)
	}

	if millis, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(millis).UTC(), nil
	}

	for _, layout := range targetLayouts {
		if at, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return at, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTarget, value)
}

var deltaSegmentRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)(ms|s|m|h|d|w)`)

// ParseDelta parses a signed duration expression such as "1h", "-90m",
// "1d2h30m" or "2w". Days and weeks are fixed 24h and 168h spans so a delta
// always reduces to a millisecond count.
func ParseDelta(value string) (time.Duration, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, fmt.Errorf("%w: empty delta", ErrInvalidDelta)
	}

	negative := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		negative = true
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDelta, value)
	}

	var total time.Duration
	for len(s) > 0 {
		m := deltaSegmentRe.FindStringSubmatch(s)
		if m == nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDelta, value)
		}
		amount, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDelta, value)
		}
		var unit time.Duration
		switch m[2] {
		case "ms":
			unit = time.Millisecond
		case "s":
			unit = time.Second
		case "m":
			unit = time.Minute
		case "h":
			unit = time.Hour
		case "d":
			unit = 24 * time.Hour
		case "w":
			unit = 7 * 24 * time.Hour
		}
		total += time.Duration(amount * float64(unit))
		s = s[len(m[0]):]
	}

	if negative {
		total = -total
	}
	return total, nil
}

// Combine merges a newly requested override with the one already active in
// the enclosing scope:
//
//	no outer            -> inner unchanged
//	relative + relative -> rejected (ErrNestedRelative)
//	absolute + relative -> absolute, params summed
//	any + absolute      -> inner unchanged (a nested absolute fully overrides)
func Combine(outer *models.OverrideDescriptor, inner models.OverrideDescriptor) (models.OverrideDescriptor, error) {
	if outer == nil {
		return inner, nil
	}
	if inner.Mode == models.ModeAbsolute {
		return inner, nil
	}
	if outer.Mode == models.ModeRelative {
		return models.OverrideDescriptor{}, ErrNestedRelative
	}
	return models.OverrideDescriptor{
		Mode:  models.ModeAbsolute,
		Param: outer.Param + inner.Param,
	}, nil
}

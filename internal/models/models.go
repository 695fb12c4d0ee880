package models

import "time"

// OverrideMode selects how an override alters the current time.
type OverrideMode int

const (
	// ModeAbsolute pins "now" to a fixed instant (epoch milliseconds).
	ModeAbsolute OverrideMode = iota
	// ModeRelative shifts "now" by a fixed delta (signed milliseconds).
	ModeRelative
)

// String returns the human-readable mode name.
func (m OverrideMode) String() string {
	switch m {
	case ModeAbsolute:
		return "absolute"
	case ModeRelative:
		return "relative"
	default:
		return "unknown"
	}
}

// Token returns the command token that selects this mode ("to" / "by").
func (m OverrideMode) Token() string {
	if m == ModeAbsolute {
		return "to"
	}
	return "by"
}

// OverrideDescriptor describes how "now" should be altered while it is active.
// Param is an epoch-millisecond instant for ModeAbsolute and a signed
// millisecond delta for ModeRelative. Descriptors are only built by parsing,
// so Param is always a valid finite value.
type OverrideDescriptor struct {
	Mode  OverrideMode `json:"mode"`
	Param int64        `json:"param_ms"`
}

// Target returns the pinned instant of an absolute descriptor in UTC.
func (d OverrideDescriptor) Target() time.Time {
	return time.UnixMilli(d.Param).UTC()
}

// Delta returns the offset of a relative descriptor.
func (d OverrideDescriptor) Delta() time.Duration {
	return time.Duration(d.Param) * time.Millisecond
}

// WarpPoint is a named, persisted OverrideDescriptor reusable by reference.
type WarpPoint struct {
	ID          string             `json:"id"`
	Descriptor  OverrideDescriptor `json:"descriptor"`
	Description string             `json:"description,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

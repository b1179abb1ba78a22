package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// FailureKind groups provider failures by how the importer reacts to them
type FailureKind int

const (
	FailureOther FailureKind = iota
	// FailurePlanRestricted: the account tier does not cover the request
	FailurePlanRestricted
	// FailureUnavailable: the date is invalid, in the future or outside coverage
	FailureUnavailable
)

func (k FailureKind) String() string {
	switch k {
	case FailurePlanRestricted:
		return "plan_restricted"
	case FailureUnavailable:
		return "unavailable"
	default:
		return "other"
	}
}

// ProviderError is a non-success status or an error result body
type ProviderError struct {
	StatusCode int
	Reason     string
}

func (e *ProviderError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("provider returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("provider returned HTTP %d: %s", e.StatusCode, e.Reason)
}

// Kind classifies the provider's error reason
func (e *ProviderError) Kind() FailureKind {
	reason := strings.ToLower(e.Reason)
	switch {
	case strings.Contains(reason, "plan"), strings.Contains(reason, "upgrade"):
		return FailurePlanRestricted
	case strings.Contains(reason, "date"),
		strings.Contains(reason, "future"),
		strings.Contains(reason, "not-available"),
		strings.Contains(reason, "not available"),
		strings.Contains(reason, "no-data"):
		return FailureUnavailable
	default:
		return FailureOther
	}
}

// IsTimeout reports whether err is a transport timeout
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

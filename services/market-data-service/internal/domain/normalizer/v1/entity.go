package normalizerv1

import (
	"fmt"
	"strings"

	"github.com/muhammadchandra19/marketdepth/pkg/errors"
)

// PaddingPolicy decides what happens when the provider sends fewer levels than configured.
type PaddingPolicy string

const (
	// PolicyPad zero-fills the missing levels.
	PolicyPad PaddingPolicy = "pad"
	// PolicyTruncate downgrades the tick to depth 1.
	PolicyTruncate PaddingPolicy = "truncate"
	// PolicyReject drops the tick as malformed.
	PolicyReject PaddingPolicy = "reject"
)

// ParsePaddingPolicy parses a policy name, case-insensitively.
func ParsePaddingPolicy(s string) (PaddingPolicy, error) {
	switch p := PaddingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyPad, PolicyTruncate, PolicyReject:
		return p, nil
	case "":
		return PolicyPad, nil
	default:
		return "", errors.NewErrorDetails(fmt.Sprintf("unknown padding policy %q", s), errors.GeneralBadRequestError.String(), "padding_policy")
	}
}

// Outcome describes how a tick was shaped during normalization.
type Outcome struct {
	// ProvidedDepth is the shorter of the two provider sides, capped at the configured depth.
	ProvidedDepth   int
	ConfiguredDepth int
	Padded          bool
	Truncated       bool
}

package tickv1

import (
	"fmt"

	"github.com/muhammadchandra19/marketdepth/pkg/errors"
)

// ErrMalformedTick is returned when a payload cannot be normalized into a Tick.
func ErrMalformedTick(reason, field string) error {
	return errors.NewErrorDetails(reason, errors.MalformedTickError.String(), field)
}

// ErrInvalidDepthLevel is returned for depth levels other than 1 and 5.
func ErrInvalidDepthLevel(level int) error {
	return errors.NewErrorDetails(fmt.Sprintf("depth level %d is not supported, use 1 or 5", level), errors.InvalidDepthLevelError.String(), "depth_level")
}

// ErrNotFound is returned when an instrument has no stored ticks.
func ErrNotFound(instrumentID string) error {
	return errors.NewErrorDetails(fmt.Sprintf("no ticks for instrument %s", instrumentID), errors.NotFoundError.String(), "instrument_id")
}

// ErrStoreUnavailable is returned when the store backend fails or times out.
func ErrStoreUnavailable(op string, cause error) error {
	return errors.NewErrorDetails("tick store unavailable during "+op, errors.StoreUnavailableError.String(), op).WithCause(cause)
}

// IsNotFound reports whether err carries the not_found code.
func IsNotFound(err error) bool {
	return errors.ErrorCodeEquals(err, errors.NotFoundError)
}

// IsStoreUnavailable reports whether err carries the store_unavailable code.
func IsStoreUnavailable(err error) bool {
	return errors.ErrorCodeEquals(err, errors.StoreUnavailableError)
}

// IsMalformed reports whether err carries the malformed_tick code.
func IsMalformed(err error) bool {
	return errors.ErrorCodeEquals(err, errors.MalformedTickError)
}

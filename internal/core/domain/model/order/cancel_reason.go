package order

import (
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"
)

// CancelReason records who withdrew a cancelled order.
// Orders that never reached Cancelled carry CancelReasonNone.
type CancelReason int

const (
	// CancelReasonNone means the order is not cancelled.
	CancelReasonNone CancelReason = iota

	// CancelledByClient means the client withdrew the order themselves.
	CancelledByClient

	// CancelledByAdmin means a dispatcher cancelled the order.
	CancelledByAdmin
)

// getCancelReasonStrings returns a map of CancelReason values to their string tokens.
func getCancelReasonStrings() map[CancelReason]string {
	return map[CancelReason]string{
		CancelReasonNone:  "",
		CancelledByClient: "CANCELLED_BY_CLIENT",
		CancelledByAdmin:  "CANCELLED_BY_ADMIN",
	}
}

// CancelReasonFromString parses a cancel reason from its persisted string token.
// The empty string parses to CancelReasonNone.
func CancelReasonFromString(s string) (CancelReason, error) {
	for reason, str := range getCancelReasonStrings() {
		if str == s {
			return reason, nil
		}
	}
	return CancelReasonNone, errs.NewValueIsInvalidErrorWithCause(
		"cancel reason is invalid",
		fmt.Errorf("%q is not a valid cancel reason", s),
	)
}

// Validate checks if the CancelReason value is one of the defined constants.
func (r CancelReason) Validate() error {
	if _, ok := getCancelReasonStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"cancel reason is invalid",
			fmt.Errorf("%d is not a valid cancel reason", r),
		)
	}
	return nil
}

// String returns the persisted token of the reason, empty for CancelReasonNone.
func (r CancelReason) String() string {
	if str, ok := getCancelReasonStrings()[r]; ok {
		return str
	}
	return ""
}

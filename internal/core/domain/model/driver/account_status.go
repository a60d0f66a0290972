package driver

import (
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"
)

// AccountStatus represents the administrative state of a driver's account.
// Blocking is an administrative decision and is independent of whether the
// driver is currently on a trip.
type AccountStatus int

const (
	// AccountStatusUnknown represents an invalid or undefined status.
	AccountStatusUnknown AccountStatus = iota

	// Active means the driver may take orders.
	Active

	// Blocked means the driver is barred from taking new orders.
	// An in-progress trip is not interrupted by blocking.
	Blocked
)

// getAccountStatusStrings returns a map of AccountStatus values to their string tokens.
func getAccountStatusStrings() map[AccountStatus]string {
	return map[AccountStatus]string{
		Active:  "ACTIVE",
		Blocked: "BLOCKED",
	}
}

// AccountStatusFromString parses an account status from its persisted token
// ("ACTIVE" or "BLOCKED").
func AccountStatusFromString(s string) (AccountStatus, error) {
	for status, str := range getAccountStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return AccountStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"account status is invalid",
		fmt.Errorf("%q is not a valid account status", s),
	)
}

// Validate checks if the AccountStatus value is one of the defined constants.
func (s AccountStatus) Validate() error {
	if _, ok := getAccountStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"account status is invalid",
			fmt.Errorf("%d is not a valid account status", s),
		)
	}
	return nil
}

// String returns the canonical token of the status, "UNKNOWN" for invalid values.
func (s AccountStatus) String() string {
	if str, ok := getAccountStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

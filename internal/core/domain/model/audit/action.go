package audit

import (
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"
)

// Action identifies the kind of business event an audit entry records.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// OrderCreated is recorded when a client places a new order.
	OrderCreated

	// OrderBroadcast is recorded when an order offer reaches the drivers chat.
	OrderBroadcast

	// OrderAssigned is recorded when a driver takes an order.
	OrderAssigned

	// OrderCompleted is recorded when a trip finishes.
	OrderCompleted

	// OrderCancelled is recorded when an order is withdrawn.
	OrderCancelled

	// DriverRegistered is recorded when a driver's vehicle profile completes.
	DriverRegistered

	// DriverBlocked is recorded when an admin blocks a driver.
	DriverBlocked

	// DriverUnblocked is recorded when an admin unblocks a driver.
	DriverUnblocked
)

// getActionStrings returns a map of Action values to their persisted tokens.
func getActionStrings() map[Action]string {
	return map[Action]string{
		OrderCreated:     "ORDER_CREATED",
		OrderBroadcast:   "ORDER_BROADCAST",
		OrderAssigned:    "ORDER_ASSIGNED",
		OrderCompleted:   "ORDER_COMPLETED",
		OrderCancelled:   "ORDER_CANCELLED",
		DriverRegistered: "DRIVER_REGISTERED",
		DriverBlocked:    "DRIVER_BLOCKED",
		DriverUnblocked:  "DRIVER_UNBLOCKED",
	}
}

// ActionFromString parses an action from its persisted token.
func ActionFromString(s string) (Action, error) {
	for action, str := range getActionStrings() {
		if str == s {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause(
		"action is invalid",
		fmt.Errorf("%q is not a valid audit action", s),
	)
}

// Validate checks if the Action value is one of the defined constants.
func (a Action) Validate() error {
	if _, ok := getActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"action is invalid",
			fmt.Errorf("%d is not a valid audit action", a),
		)
	}
	return nil
}

// String returns the persisted token of the action, "UNKNOWN" for invalid values.
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "UNKNOWN"
}

package order

import (
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"
)

// Actor identifies who initiates a lifecycle transition on an order.
// The same operations (assign, cancel, complete) are reachable both by
// the participants themselves and by a dispatcher, and a few rules
// depend on who is acting: a client may only cancel before a driver is
// assigned, a dispatcher may cancel an assigned trip as well.
type Actor int

const (
	// ActorUnknown represents an invalid or undefined actor.
	ActorUnknown Actor = iota

	// ActorClient is the client who placed the order.
	ActorClient

	// ActorDriver is a driver accepting or finishing a trip.
	ActorDriver

	// ActorAdmin is a dispatcher operating on behalf of the service.
	ActorAdmin
)

// getActorStrings returns a map of Actor values to their string tokens.
func getActorStrings() map[Actor]string {
	return map[Actor]string{
		ActorClient: "CLIENT",
		ActorDriver: "DRIVER",
		ActorAdmin:  "ADMIN",
	}
}

// ActorFromString parses an actor from its request token ("CLIENT", "DRIVER", "ADMIN").
func ActorFromString(s string) (Actor, error) {
	for actor, str := range getActorStrings() {
		if str == s {
			return actor, nil
		}
	}
	return ActorUnknown, errs.NewValueIsInvalidErrorWithCause(
		"actor is invalid",
		fmt.Errorf("%q is not a valid actor", s),
	)
}

// Validate checks if the Actor value is one of the defined constants.
func (a Actor) Validate() error {
	if _, ok := getActorStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"actor is invalid",
			fmt.Errorf("%d is not a valid actor", a),
		)
	}
	return nil
}

// String returns the request token of the actor, "UNKNOWN" for invalid values.
func (a Actor) String() string {
	if str, ok := getActorStrings()[a]; ok {
		return str
	}
	return "UNKNOWN"
}

package ports

import (
	"context"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
)

// BroadcastGateway delivers order offers to the driver pool.
//
// The engine treats delivery as fire-and-confirm: a nil return means the
// offer reached the drivers chat and the order may advance to Broadcast;
// an error leaves the order in New for the retry job. Implementations must
// not be called inside a database transaction.
type BroadcastGateway interface {
	// Broadcast posts an offer for the given order to the drivers chat.
	Broadcast(ctx context.Context, orderID kernel.UUID, origin, destination, comment string) error
}

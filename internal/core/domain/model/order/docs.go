// Package order provides domain entities and business logic for ride order
// management in the dispatch service. It implements the Order aggregate root
// with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - CancelReason: Records who withdrew a cancelled order
//   - Actor: Identifies who initiates a lifecycle transition
//
// Key business rules:
//   - Orders must have a valid unique identifier, client, origin, and destination
//   - Order status follows a defined workflow: New -> Broadcast -> Assigned -> Completed,
//     with Cancelled reachable from every non-terminal status
//   - A driver is assigned exactly once; there is no reassignment
//   - Clients may cancel only before a driver is assigned; admins may also
//     cancel assigned trips
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order

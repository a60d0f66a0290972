// Package driver provides domain entities and business logic for driver
// management in the dispatch service. It implements the Driver aggregate root
// with identity, vehicle profile, and availability tracking.
//
// The package includes:
//   - Driver: The aggregate root managing identity, profile, and occupancy
//   - AccountStatus: The administrative ACTIVE/BLOCKED state machine
//
// Key business rules:
//   - Drivers are registered lazily on first contact with an incomplete profile
//   - Registration completes when all four vehicle fields are filled
//   - A driver is available when ACTIVE and not busy; the busy flag is held
//     by exactly one assigned order at a time
//   - Blocking bars new assignments without interrupting an in-progress trip
package driver

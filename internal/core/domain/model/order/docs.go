// Package order provides the Order aggregate of the travel agency: a flight
// booking placed by a customer and shepherded by an agent.
//
// The package includes:
//   - Order: the aggregate root holding the booking, its parties and its lifecycle
//   - Status: the lifecycle state machine
//   - Flight, Passenger, Party: value objects embedded in the order document
//   - Event: domain events recorded by lifecycle changes for the outbox
//
// Key business rules:
//   - New orders always start in WaitForAgent regardless of input
//   - An order has at least one passenger and a non-negative price
//   - Customer and agent are snapshots taken at write time, not live references
//   - Non-admin status changes follow the transition table; terminal orders are frozen
//   - Admins bypass lifecycle restrictions
//
// State transitions for non-admin callers:
//
//	WaitForAgent            -> InProgress, Cancelled
//	InProgress              -> WaitForAgent, PendingCustomerApproval, Cancelled
//	PendingCustomerApproval -> InProgress, Confirmed, Cancelled
//	Confirmed, Cancelled    -> (terminal)
package order

// Package ports defines the contracts between the application core and its
// adapters: repositories for users, orders and the order event outbox, the
// unit of work that binds them to one transaction, and the credential and
// messaging services the use cases depend on.
package ports

// Package services provides domain services that decide questions spanning a
// principal and an aggregate: who may see, change or delete which order or
// user record.
//
// The package includes:
//   - OrderAccessPolicy: role and ownership checks for every order operation
//   - UserAccessPolicy: role and identity checks for every user operation
//
// Policies are stateless. They never load anything; use case handlers fetch
// the aggregates and ask the policy before mutating them. Denials are
// errs.AccessDeniedError values.
package services

// Package user provides the User aggregate: a registered identity that can log
// in, place orders and, when granted the agent or admin flag, act as staff.
//
// The package includes:
//   - User: the aggregate root holding profile data, the password hash and role flags
//   - Name, Address, Passport: value objects embedded in the user document
//
// Key business rules:
//   - Email is stored trimmed and lower-cased; email and phone are unique across users
//   - The password is only ever held as a hash produced outside the domain
//   - Registration never grants roles; only SetRoles does
//   - Every persisted change bumps the version, which guards concurrent writers
package user

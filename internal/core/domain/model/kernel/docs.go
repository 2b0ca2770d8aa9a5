// Package kernel holds the value objects shared by the user and order
// aggregates: identifiers and ISO country codes.
//
// Values are immutable and have invalid zero values; they must be obtained
// through their constructors (NewUUID, UUIDFromString, NewCountryCode) and
// callers reconstructing them from storage should call Validate.
package kernel

// Package access models who is calling: a Principal is the verified identity
// behind a request together with the set of roles it holds.
//
// Roles replace the pair of independent isAgent/isAdmin flags carried by user
// records and tokens. Every principal holds Customer; Agent and Admin are added
// on top. When a decision depends on a single role the highest one wins:
//
//	Admin > Agent > Customer
package access

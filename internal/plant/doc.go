// Package plant holds the Plant entity, request validation and persistence.
//
// A Plant is the only resource the service manages. Handlers never touch SQL
// directly: they decode a request body with DecodeInput and hand the result
// to a Repository. The SQLite implementation issues exactly one statement per
// call, so each HTTP request costs one round trip to the store.
//
// Validation is deliberately narrow: name, image and price must be present,
// non-null and of the right JSON type. Names and images must be non-blank;
// any numeric price, including zero, is accepted.
package plant

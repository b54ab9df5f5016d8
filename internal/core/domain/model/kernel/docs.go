// Package kernel contains the shared building blocks of the domain model:
// the UUID identifier value object, the ConstructorGuard used to enforce
// factory-based construction of entities, and money rounding helpers.
//
// Types in this package are value objects: immutable, comparable, and safe
// for concurrent use. They carry no behavior specific to any single
// aggregate and may be used by every domain package.
package kernel

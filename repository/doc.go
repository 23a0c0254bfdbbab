// Package repository provides a generic repository abstraction built on Bun:
// identity-tracked CRUD, predicate queries, pagination, aggregates, and the
// transactional conditional-upsert protocols, plus typed facades for the
// catalog entities.
package repository

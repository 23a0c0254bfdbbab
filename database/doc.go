// Package database provides connection management, transactions, migrations,
// foreign key handling, SQL seeding, configuration types, error
// classification, logging, and health checks built on top of Bun.
package database

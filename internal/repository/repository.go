// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the callers.
//
// Every method takes a context and delegates to the shared pgx pool; the
// constraints the schema declares (unique email/username/slug, composite
// unique favorites, foreign keys, cascades) are enforced by Postgres, and
// every failed call is routed through sqlerr.HandleError so callers see
// typed application errors instead of SQLSTATEs.
package repository

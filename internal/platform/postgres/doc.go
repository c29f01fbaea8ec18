// Package postgres provides PostgreSQL implementations of the store
// interfaces. Courses are stored as a row per course with the module
// tree, learning outcomes and tags serialized to JSONB columns, which
// keeps reads and writes atomic without a fan-out over child tables.
package postgres

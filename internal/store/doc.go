// Package store defines the persistence interfaces the application
// depends on. Concrete implementations live under platform/postgres;
// services and handlers program against these interfaces so storage
// can be swapped or mocked without touching business logic.
package store

// Package service contains the application services that orchestrate
// domain logic, generation, and persistence. Services depend on store
// interfaces and on the generation port, never on concrete drivers, so
// they can be exercised with in-memory fakes.
package service

// Package mocks provides hand-written test doubles for the service and
// store interfaces. Each mock exposes per-method function fields so a
// test can override exactly the behavior it needs, with simple default
// values for everything else.
package mocks

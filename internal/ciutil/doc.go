// Package ciutil centralizes environment detection and database URL
// handling shared by tests and CI tooling. It standardizes credentials
// when running under CI so the same test suite works locally and in
// hosted runners.
package ciutil

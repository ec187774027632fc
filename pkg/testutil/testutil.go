// Package testutil contains common test utilities.
package testutil

import "os"

// Cleanuper wraps the Cleanup method. It is a subset of [testing.TB], thus
// satisfied by [*testing.T] and [*testing.B].
type Cleanuper interface {
	Cleanup(func())
}

// Setenv sets the value of an environment variable for the duration of a test.
// It returns value.
func Setenv(c Cleanuper, name, value string) string {
	oldValue, existed := os.LookupEnv(name)
	if existed {
		c.Cleanup(func() { os.Setenv(name, oldValue) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
	os.Setenv(name, value)
	return value
}

// Set overrides a package variable, such as ui.NoColor or a theme table,
// and restores it when the test finishes.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	c.Cleanup(func() { *p = old })
	*p = v
}

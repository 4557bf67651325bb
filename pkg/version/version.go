// Package version exposes the build version stamped at link time.
package version

// version is overridden via -ldflags "-X github.com/landmix/landmix/pkg/version.version=<tag>".
var version = "dev"

// GetVersion returns the build version string.
func GetVersion() string { return version }

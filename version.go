// version.go: build-time version metadata, overridable at build time via
// -ldflags "-X github.com/gxsoar/golox.Version=...".
package lox

var (
	Version   = "dev"
	BuildDate = "unknown"
)

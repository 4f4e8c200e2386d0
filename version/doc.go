// Package version reports build information for inspectctl.
//
// Values are injected at link time and fall back to the VCS data the Go
// toolchain embeds:
//
//	go build -ldflags "-X github.com/kbukum/inspectkit/version.Version=1.4.0" ./cmd/inspectctl
package version

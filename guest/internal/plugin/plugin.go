// Package plugin records which roles the registered plugin fills.
package plugin

import "github.com/otelwasm/msgwasm/guest/api"

// Capability is a set of flags reported to the host.
type Capability uint32

const (
	CapabilityProcess Capability = 1 << iota
	CapabilityTransform
)

var capabilities Capability

// MustSet records that p serves capability c. It panics on a nil plugin.
func MustSet(c Capability, p api.Plugin) {
	if p == nil {
		panic("nil plugin")
	}
	capabilities |= c
}

// Capabilities returns the flags of every registered role.
func Capabilities() Capability {
	return capabilities
}

// Has reports whether c is among the registered roles.
func Has(c Capability) bool {
	return capabilities&c == c
}

// Reset clears the registry. It exists for tests.
func Reset() {
	capabilities = 0
}

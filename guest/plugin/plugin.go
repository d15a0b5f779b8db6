// Package plugin registers a plugin for every entry point it can serve.
//
// A module wires its plugin from init, since a reactor module never runs
// main:
//
//	func init() {
//		plugin.Set(myPlugin{})
//	}
package plugin

import (
	"github.com/otelwasm/msgwasm/guest/api"
	"github.com/otelwasm/msgwasm/guest/bodytransformer"
	"github.com/otelwasm/msgwasm/guest/messageprocessor"
)

// Set routes p to each role it implements. It panics if p implements none.
func Set(p api.Plugin) {
	registered := false
	if mp, ok := p.(api.MessageProcessor); ok {
		messageprocessor.SetPlugin(mp)
		registered = true
	}
	if bt, ok := p.(api.BodyTransformer); ok {
		bodytransformer.SetPlugin(bt)
		registered = true
	}
	if !registered {
		panic("plugin implements neither MessageProcessor nor BodyTransformer")
	}
}

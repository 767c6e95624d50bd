// Package nodes holds the pieces every endpoint node shares: the credential
// name the host resolves for vendor calls and the return-mode field builder.
// The individual node implementations live in subpackages and register
// themselves with the adapter registry at init.
package nodes

import "github.com/flowkit-plugins/docintel/core/descriptor"

// Credential is the named credential every node declares. The host maps it
// to the vendor API key and base URL.
const Credential = "docintelApi"

// ParamReturnMode selects the output projection of a node.
const ParamReturnMode = "returnMode"

// ReturnModeFull is offered by every node: the raw response untouched.
const ReturnModeFull = "full"

// ReturnModeField builds the return-mode options field from a default value
// and the node's selectable projections.
func ReturnModeField(def string, options ...descriptor.Option) descriptor.Field {
	return descriptor.Field{
		Name:        ParamReturnMode,
		DisplayName: "Return Mode",
		Type:        descriptor.FieldOptions,
		Default:     def,
		Description: "How to shape the endpoint response in the output item",
		Options:     options,
	}
}

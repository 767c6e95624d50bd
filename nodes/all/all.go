// Package all registers every endpoint node with the adapter registry.
// Import it for side effects, driver-style:
//
//	import _ "github.com/flowkit-plugins/docintel/nodes/all"
package all

import (
	_ "github.com/flowkit-plugins/docintel/nodes/classify"
	_ "github.com/flowkit-plugins/docintel/nodes/digitize"
	_ "github.com/flowkit-plugins/docintel/nodes/extract"
	_ "github.com/flowkit-plugins/docintel/nodes/schemagen"
)

// Package all registers every built-in codec with the rwkit dispatcher.
//
//	import _ "github.com/grokify/rwkit/format/all"
package all

import (
	_ "github.com/grokify/rwkit/format/json"
	_ "github.com/grokify/rwkit/format/jsonl"
	_ "github.com/grokify/rwkit/format/text"
	_ "github.com/grokify/rwkit/format/yaml"
)

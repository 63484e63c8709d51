package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// evalFunctions is the function table available to pipeline expressions.
var evalFunctions = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"ceil":   stdlib.CeilFunc,
	"floor":  stdlib.FloorFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"concat": stdlib.ConcatFunc,
	"length": stdlib.LengthFunc,
	"lower":  stdlib.LowerFunc,
	"upper":  stdlib.UpperFunc,
}

// toCtyValue converts an arbitrary Go value (typically a decoded socket.io
// payload) into a cty value usable by derive expressions. Values that defy
// direct conversion are round-tripped through JSON, and as a last resort
// stringified.
func toCtyValue(v any) cty.Value {
	if v == nil {
		return cty.NullVal(cty.DynamicPseudoType)
	}
	if cv, ok := v.(cty.Value); ok {
		return cv
	}
	if typ, err := gocty.ImpliedType(v); err == nil {
		if cv, err := gocty.ToCtyValue(v, typ); err == nil {
			return cv
		}
	}
	if data, err := json.Marshal(v); err == nil {
		if typ, err := ctyjson.ImpliedType(data); err == nil {
			if cv, err := ctyjson.Unmarshal(data, typ); err == nil {
				return cv
			}
		}
	}
	return cty.StringVal(fmt.Sprint(v))
}

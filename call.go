package callmap

import (
	"fmt"
	"sort"
	"strings"
)

// Call is the resolved argument pair for the subfunction: the ordered
// positional values and the keyword mapping. Applying exactly this
// pair under the subfunction's own binding rules binds every required
// parameter to a defined value. Call never invokes anything itself.
type Call struct {
	positional []interface{}
	keyword    map[string]interface{}
}

// Positional returns the ordered positional values. The leading values
// line up with the subfunction's positional-or-keyword parameters in
// declared order; any var-positional splice follows them.
func (c *Call) Positional() []interface{} {
	return c.positional
}

// Keyword returns the keyword mapping: keyword-only parameters plus
// any merged var-keyword bag.
func (c *Call) Keyword() map[string]interface{} {
	return c.keyword
}

// Arg returns the i'th positional value (zero-indexed). This will
// panic if i >= Len so for safety all calls to Arg should check Len.
func (c *Call) Arg(i int) interface{} {
	return c.positional[i]
}

// Len returns the number of positional values.
func (c *Call) Len() int {
	return len(c.positional)
}

// String renders the call the way it would read at a call site, with
// keyword arguments in sorted name order for determinism.
func (c *Call) String() string {
	parts := make([]string, 0, len(c.positional)+len(c.keyword))
	for _, v := range c.positional {
		parts = append(parts, fmt.Sprintf("%v", v))
	}

	names := make([]string, 0, len(c.keyword))
	for n := range c.keyword {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", n, c.keyword[n]))
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

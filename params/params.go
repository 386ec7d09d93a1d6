// Package params implements the parameter codec used on plugin invocation
// URLs. A parameter set is decoded fresh for every dispatch and is split on
// read into two disjoint views: control parameters, reserved for framework
// use, and callback parameters, which are forwarded to route handlers.
package params

import "strings"

// Reserved control parameter keys used by the framework itself. Handlers
// must treat the whole _name_ namespace as off limits.
const (
	KeyUpdateListing = "_updatelisting_"
	KeyTitle         = "_title_"
)

// Params is a key-unique mapping of decoded invocation parameters.
type Params map[string]any

// IsControlKey reports whether key belongs to the reserved control
// namespace. A key is a control key iff it both starts and ends with an
// underscore. The rule is pure and convention-based, never configured
// per route.
func IsControlKey(key string) bool {
	return len(key) >= 2 && strings.HasPrefix(key, "_") && strings.HasSuffix(key, "_")
}

// Callback returns the view of p that is forwarded to route handlers:
// every key that is not a control key. The view is recomputed on each call.
func (p Params) Callback() Params {
	out := make(Params)
	for key, value := range p {
		if !IsControlKey(key) {
			out[key] = value
		}
	}
	return out
}

// Control returns the framework-reserved view of p: every key that both
// starts and ends with the sentinel underscore.
func (p Params) Control() Params {
	out := make(Params)
	for key, value := range p {
		if IsControlKey(key) {
			out[key] = value
		}
	}
	return out
}

// String returns the value for key as a string, or "" when the key is
// absent or holds a non-string value.
func (p Params) String(key string) string {
	if value, ok := p[key]; ok {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}

// Bool returns the value for key interpreted as a boolean. Absent keys and
// non-boolean values that are not the strings "true"/"false" report false.
func (p Params) Bool(key string) bool {
	switch value := p[key].(type) {
	case bool:
		return value
	case string:
		return value == "true" || value == "True"
	default:
		return false
	}
}

// Copy returns a shallow copy of p.
func (p Params) Copy() Params {
	out := make(Params, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

// Merge copies every entry of other into p, overwriting existing keys.
func (p Params) Merge(other Params) {
	for key, value := range other {
		p[key] = value
	}
}

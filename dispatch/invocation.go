package dispatch

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// InvocationScheme is the addressing scheme the host uses to invoke
// plugins. Argument vectors not using it are rejected outright.
const InvocationScheme = "plugin://"

// RootSelector is the canonical selector of the plugin's entry route. An
// empty or "/" selector normalizes to it.
const RootSelector = "root"

// Invocation is the decomposed host argument vector: the selector path
// identifying the route, the numeric host session handle and the raw query
// string. Selector stays settable so test harnesses can redirect a parsed
// invocation at an arbitrary route.
type Invocation struct {
	Selector string
	Handle   int
	Query    string
}

// ParseInvocation decomposes the host-provided argument vector. The vector
// is expected as (plugin URL, numeric handle, query string), the shape the
// host passes to every plugin process.
func ParseInvocation(argv []string) (*Invocation, error) {
	if len(argv) < 3 {
		return nil, &InvalidInvocationError{
			Reason: fmt.Sprintf("expected 3 arguments (url, handle, query), got %d", len(argv)),
		}
	}

	if !strings.HasPrefix(argv[0], InvocationScheme) {
		return nil, &InvalidInvocationError{
			Reason: fmt.Sprintf("only %s paths are supported: not '%s'", InvocationScheme, argv[0]),
		}
	}

	parsed, err := url.Parse(argv[0] + argv[2])
	if err != nil {
		return nil, &InvalidInvocationError{
			Reason: fmt.Sprintf("unparsable invocation url: %v", err),
		}
	}

	handle, err := strconv.Atoi(argv[1])
	if err != nil {
		return nil, &InvalidInvocationError{
			Reason: fmt.Sprintf("handle must be numeric: '%s'", argv[1]),
		}
	}

	selector := strings.TrimPrefix(parsed.Path, "/")
	if selector == "" {
		selector = RootSelector
	}

	return &Invocation{
		Selector: selector,
		Handle:   handle,
		Query:    parsed.RawQuery,
	}, nil
}

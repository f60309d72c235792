// Package tracing carries per-request identifiers through a request's
// context, so log lines and error messages across handler/helper/repo layers
// can be correlated back to one originating HTTP request.
package tracing

import "fmt"

// Context identifies one in-flight request.
type Context struct {
	RequestID     string
	RequestSource string
}

// String implements fmt.Stringer so a *Context/Context can be interpolated
// directly into a log or error message, as the handlers do throughout.
func (c Context) String() string {
	return fmt.Sprintf("request_id=%s source=%s", c.RequestID, c.RequestSource)
}

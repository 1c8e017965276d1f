// Package rbac implements the request authorization policy: small boolean
// rules over the authenticated principal, the requested action and the target
// record, composed in order so that the first denial wins.
package rbac

import (
	"net/http"

	"github.com/garage-admin/garage/internal/shared"
)

// Action is the kind of operation a request performs on a resource.
type Action string

const (
	ActionList          Action = "list"
	ActionCreate        Action = "create"
	ActionRetrieve      Action = "retrieve"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
)

// IsCollection reports whether the action addresses the collection rather
// than a single record.
func (a Action) IsCollection() bool {
	return a == ActionList || a == ActionCreate
}

// ActionFor maps an HTTP method to an action. hasID tells whether the route
// addresses a single record. Unknown methods yield the empty action.
func ActionFor(method string, hasID bool) Action {
	switch method {
	case http.MethodGet, http.MethodHead:
		if hasID {
			return ActionRetrieve
		}
		return ActionList
	case http.MethodPost:
		if hasID {
			return ""
		}
		return ActionCreate
	case http.MethodPut:
		return ActionUpdate
	case http.MethodPatch:
		return ActionPartialUpdate
	case http.MethodDelete:
		return ActionDestroy
	default:
		return ""
	}
}

// Request is everything a rule may look at.
type Request struct {
	Principal *shared.Principal
	Action    Action
	Resource  string
	// TargetID is nil for collection routes.
	TargetID *int64
}

// Decision is the outcome of a rule. Message is only meaningful on denial.
type Decision struct {
	Allowed bool
	Code    string
	Message string
}

// CodePermissionDenied is the error code attached to every denial.
const CodePermissionDenied = "permission_denied"

// Allow permits the request.
func Allow() Decision { return Decision{Allowed: true} }

// Deny refuses the request with message.
func Deny(message string) Decision {
	return Decision{Code: CodePermissionDenied, Message: message}
}

// Rule decides whether a request may proceed.
type Rule interface {
	Check(Request) Decision
}

// RuleFunc adapts a function to Rule.
type RuleFunc func(Request) Decision

// Check calls f.
func (f RuleFunc) Check(req Request) Decision { return f(req) }

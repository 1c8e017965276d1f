package rbac

import "github.com/garage-admin/garage/internal/shared"

// Denial messages.
const (
	MessageDefault       = "You do not have permission to perform this action."
	MessageDeleteByAdmin = "You haven't permission to delete this object."
)

// IsAdmin reports whether p carries the staff flag.
func IsAdmin(p *shared.Principal) bool {
	return p != nil && p.IsStaff
}

// IsSelf reports whether the request targets the principal's own record.
// Collection actions and requests without a target are not restricted.
func IsSelf(req Request) bool {
	if req.Action.IsCollection() || req.TargetID == nil {
		return true
	}
	return req.Principal != nil && *req.TargetID == req.Principal.ID
}

// Admin permits staff principals only.
var Admin Rule = RuleFunc(func(req Request) Decision {
	if IsAdmin(req.Principal) {
		return Allow()
	}
	return Deny(MessageDefault)
})

// Self permits requests addressing the principal's own record.
var Self Rule = RuleFunc(func(req Request) Decision {
	if IsSelf(req) {
		return Allow()
	}
	return Deny(MessageDefault)
})

// AdminOrSelf lets staff act on any record and everyone else on their own.
var AdminOrSelf = Any(Admin, Self)

// DeleteOnlyByAdmin refuses destroy actions to non-staff principals.
var DeleteOnlyByAdmin Rule = RuleFunc(func(req Request) Decision {
	if req.Action != ActionDestroy || IsAdmin(req.Principal) {
		return Allow()
	}
	return Deny(MessageDeleteByAdmin)
})

// Any permits the request when at least one rule does, evaluating rules left
// to right and stopping at the first permit. A denial carries the generic
// message regardless of which operand refused.
func Any(rules ...Rule) Rule {
	return RuleFunc(func(req Request) Decision {
		for _, rule := range rules {
			if rule.Check(req).Allowed {
				return Allow()
			}
		}
		return Deny(MessageDefault)
	})
}

// All permits the request only when every rule does and returns the first
// denial otherwise.
func All(rules ...Rule) Rule {
	return RuleFunc(func(req Request) Decision {
		return Evaluate(req, rules...)
	})
}

// Evaluate applies rules in order and returns the first denial. No rule at all
// permits the request.
func Evaluate(req Request, rules ...Rule) Decision {
	for _, rule := range rules {
		if d := rule.Check(req); !d.Allowed {
			if d.Code == "" {
				d.Code = CodePermissionDenied
			}
			if d.Message == "" {
				d.Message = MessageDefault
			}
			return d
		}
	}
	return Allow()
}

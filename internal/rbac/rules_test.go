package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/garage-admin/garage/internal/shared"
)

func id(v int64) *int64 { return &v }

func TestActionFor(t *testing.T) {
	cases := []struct {
		method string
		hasID  bool
		want   Action
	}{
		{"GET", false, ActionList},
		{"POST", false, ActionCreate},
		{"GET", true, ActionRetrieve},
		{"PUT", true, ActionUpdate},
		{"PATCH", true, ActionPartialUpdate},
		{"DELETE", true, ActionDestroy},
		{"POST", true, ""},
		{"TRACE", false, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ActionFor(tc.method, tc.hasID), "%s hasID=%v", tc.method, tc.hasID)
	}
}

func TestIsSelf(t *testing.T) {
	alice := &shared.Principal{ID: 7}

	assert.True(t, IsSelf(Request{Principal: alice, Action: ActionList}))
	assert.True(t, IsSelf(Request{Principal: alice, Action: ActionCreate}))
	assert.True(t, IsSelf(Request{Principal: alice, Action: ActionRetrieve}))
	assert.True(t, IsSelf(Request{Principal: alice, Action: ActionPartialUpdate, TargetID: id(7)}))
	assert.False(t, IsSelf(Request{Principal: alice, Action: ActionPartialUpdate, TargetID: id(8)}))
	assert.False(t, IsSelf(Request{Principal: alice, Action: ActionRetrieve, TargetID: id(8)}))
}

func TestAdminOrSelf(t *testing.T) {
	staff := &shared.Principal{ID: 1, IsStaff: true}
	member := &shared.Principal{ID: 2}

	cases := []struct {
		name    string
		req     Request
		allowed bool
	}{
		{"staff on other", Request{Principal: staff, Action: ActionUpdate, TargetID: id(2)}, true},
		{"member on self", Request{Principal: member, Action: ActionUpdate, TargetID: id(2)}, true},
		{"member on other", Request{Principal: member, Action: ActionUpdate, TargetID: id(1)}, false},
		{"member list", Request{Principal: member, Action: ActionList}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := AdminOrSelf.Check(tc.req)
			assert.Equal(t, tc.allowed, d.Allowed)
			if !tc.allowed {
				assert.Equal(t, MessageDefault, d.Message)
				assert.Equal(t, CodePermissionDenied, d.Code)
			}
		})
	}
}

func TestDeleteOnlyByAdmin(t *testing.T) {
	staff := &shared.Principal{ID: 1, IsStaff: true}
	member := &shared.Principal{ID: 2}

	assert.True(t, DeleteOnlyByAdmin.Check(Request{Principal: staff, Action: ActionDestroy, TargetID: id(2)}).Allowed)
	assert.True(t, DeleteOnlyByAdmin.Check(Request{Principal: member, Action: ActionUpdate, TargetID: id(2)}).Allowed)

	d := DeleteOnlyByAdmin.Check(Request{Principal: member, Action: ActionDestroy, TargetID: id(2)})
	assert.False(t, d.Allowed)
	assert.Equal(t, MessageDeleteByAdmin, d.Message)
}

func TestEvaluateFirstDenialWins(t *testing.T) {
	member := &shared.Principal{ID: 2}
	userRules := []Rule{AdminOrSelf, DeleteOnlyByAdmin}

	own := Evaluate(Request{Principal: member, Action: ActionDestroy, TargetID: id(2)}, userRules...)
	assert.False(t, own.Allowed)
	assert.Equal(t, MessageDeleteByAdmin, own.Message)

	other := Evaluate(Request{Principal: member, Action: ActionDestroy, TargetID: id(3)}, userRules...)
	assert.False(t, other.Allowed)
	assert.Equal(t, MessageDefault, other.Message)

	assert.True(t, Evaluate(Request{Principal: member, Action: ActionList}).Allowed)
}

func TestAnyShortCircuits(t *testing.T) {
	calls := 0
	counting := RuleFunc(func(Request) Decision {
		calls++
		return Deny("never")
	})

	d := Any(RuleFunc(func(Request) Decision { return Allow() }), counting).Check(Request{})
	assert.True(t, d.Allowed)
	assert.Zero(t, calls)
}

func TestAllReturnsFirstDenial(t *testing.T) {
	d := All(
		RuleFunc(func(Request) Decision { return Allow() }),
		RuleFunc(func(Request) Decision { return Deny("first") }),
		RuleFunc(func(Request) Decision { return Deny("second") }),
	).Check(Request{})
	assert.False(t, d.Allowed)
	assert.Equal(t, "first", d.Message)
}

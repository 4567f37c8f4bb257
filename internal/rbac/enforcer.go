package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// NewEnforcer builds the enforcer for the fixed {employee, admin} role set.
// Policies are code-defined; there is no permission-administration surface.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		// Self-service surface.
		{"employee", "attendance", "clock"},
		{"employee", "attendance", "read"},
		{"employee", "holiday", "read"},
		{"employee", "holiday", "create"},
		{"employee", "leave", "submit"},
		{"employee", "leave", "read"},
		{"employee", "payslip", "read"},

		// Administration surface.
		{"admin", "employee", "read"},
		{"admin", "employee", "create"},
		{"admin", "employee", "update"},
		{"admin", "leave", "decide"},
		{"admin", "leave", "read_all"},
		{"admin", "payslip", "issue"},
		{"admin", "payslip", "report"},
		{"admin", "bonus", "grant"},
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}

	// Admins inherit the employee role.
	if _, err := e.AddGroupingPolicy("admin", "employee"); err != nil {
		return nil, err
	}

	return e, nil
}

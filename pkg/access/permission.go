package access

import "strings"

// Permission is a set of permission bits.
type Permission uint8

const (
	Read Permission = 1 << iota
	Interact
	Append
	Update
	Delete
	Restore
	Destroy
)

// Composite grants.
const (
	// Creator is held by the entity that created a resource.
	Creator = Read | Interact | Append | Update | Delete | Restore
	// Admin adds destroying resources permanently.
	Admin = Creator | Destroy
	// Root holds every permission. It is the same set as Admin.
	Root = Admin
	// All masks every defined bit.
	All = Root
)

var permissionNames = [...]struct {
	p    Permission
	name string
}{
	{Read, "read"},
	{Interact, "interact"},
	{Append, "append"},
	{Update, "update"},
	{Delete, "delete"},
	{Restore, "restore"},
	{Destroy, "destroy"},
}

// Permissions returns the single-bit permissions in bit order.
func Permissions() []Permission {
	out := make([]Permission, len(permissionNames))
	for i, pn := range permissionNames {
		out[i] = pn.p
	}
	return out
}

// Has reports whether every bit of q is set in p.
func (p Permission) Has(q Permission) bool {
	return p&q == q
}

// String renders the set bits as "read|update", or "none".
func (p Permission) String() string {
	var names []string
	for _, pn := range permissionNames {
		if p&pn.p != 0 {
			names = append(names, pn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParsePermission parses a single permission name.
func ParsePermission(name string) (Permission, bool) {
	for _, pn := range permissionNames {
		if pn.name == name {
			return pn.p, true
		}
	}
	return 0, false
}

package access

// Map is the permission set of Entity on Resource. A nil Resource means the
// permissions apply to a class of resources rather than one.
type Map struct {
	Entity   Object
	Resource *Object

	perms Permission
}

// New returns a map granting perms, masked to All.
func New(entity Object, resource *Object, perms Permission) *Map {
	return &Map{Entity: entity, Resource: resource, perms: perms & All}
}

// DenyAll grants nothing.
func DenyAll(entity Object, resource *Object) *Map { return New(entity, resource, 0) }

// ReadOnly grants Read.
func ReadOnly(entity Object, resource *Object) *Map { return New(entity, resource, Read) }

// InteractOnly grants Read and Interact.
func InteractOnly(entity Object, resource *Object) *Map { return New(entity, resource, Read|Interact) }

// AppendOnly grants Read and Append.
func AppendOnly(entity Object, resource *Object) *Map { return New(entity, resource, Read|Append) }

// UpdateOnly grants Read and Update.
func UpdateOnly(entity Object, resource *Object) *Map { return New(entity, resource, Read|Update) }

// DeleteOnly grants Read and Delete.
func DeleteOnly(entity Object, resource *Object) *Map { return New(entity, resource, Read|Delete) }

// CreatorOf grants the Creator set.
func CreatorOf(entity Object, resource *Object) *Map { return New(entity, resource, Creator) }

// AdminOf grants the Admin set.
func AdminOf(entity Object, resource *Object) *Map { return New(entity, resource, Admin) }

// RootOf grants every permission.
func RootOf(entity Object, resource *Object) *Map { return New(entity, resource, Root) }

// With narrows m to the permissions also held by other and returns m.
func (m *Map) With(other *Map) *Map {
	if other == nil {
		m.perms = 0
		return m
	}
	m.perms &= other.perms
	return m
}

// Permissions returns the granted bits.
func (m *Map) Permissions() Permission {
	return m.perms
}

// Has reports whether every bit of p is granted.
func (m *Map) Has(p Permission) bool {
	return m.perms.Has(p)
}

func (m *Map) CanRead() bool     { return m.Has(Read) }
func (m *Map) CanInteract() bool { return m.Has(Interact) }
func (m *Map) CanAppend() bool   { return m.Has(Append) }
func (m *Map) CanUpdate() bool   { return m.Has(Update) }
func (m *Map) CanDelete() bool   { return m.Has(Delete) }
func (m *Map) CanRestore() bool  { return m.Has(Restore) }
func (m *Map) CanDestroy() bool  { return m.Has(Destroy) }

// IsCreator reports whether every creator permission is granted.
func (m *Map) IsCreator() bool {
	return m.Has(Creator)
}

// ResourceExists reports whether the map targets one resource.
func (m *Map) ResourceExists() bool {
	return m.Resource != nil
}

// String renders "entity -> resource: perms".
func (m *Map) String() string {
	target := "*"
	if m.Resource != nil {
		target = m.Resource.String()
	}
	return m.Entity.String() + " -> " + target + ": " + m.perms.String()
}

package access_test

import (
	"testing"

	"github.com/pthm/strata/pkg/access"
)

var (
	user = access.Object{Type: "user", ID: "7"}
	doc  = access.Object{Type: "record", ID: "42"}
)

func TestPresets(t *testing.T) {
	tests := []struct {
		name string
		m    *access.Map
		want access.Permission
	}{
		{"deny all", access.DenyAll(user, &doc), 0},
		{"read only", access.ReadOnly(user, &doc), access.Read},
		{"interact only", access.InteractOnly(user, &doc), access.Read | access.Interact},
		{"append only", access.AppendOnly(user, &doc), access.Read | access.Append},
		{"update only", access.UpdateOnly(user, &doc), access.Read | access.Update},
		{"delete only", access.DeleteOnly(user, &doc), access.Read | access.Delete},
		{"creator", access.CreatorOf(user, &doc), access.Read | access.Interact | access.Append | access.Update | access.Delete | access.Restore},
		{"admin", access.AdminOf(user, &doc), access.Creator | access.Destroy},
		{"root", access.RootOf(user, &doc), access.All},
		{"masked", access.New(user, &doc, 0xFF), access.All},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Permissions(); got != tt.want {
				t.Errorf("Permissions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMap_Can(t *testing.T) {
	m := access.New(user, &doc, access.Read|access.Update)

	checks := map[string]struct {
		got, want bool
	}{
		"read":     {m.CanRead(), true},
		"interact": {m.CanInteract(), false},
		"append":   {m.CanAppend(), false},
		"update":   {m.CanUpdate(), true},
		"delete":   {m.CanDelete(), false},
		"restore":  {m.CanRestore(), false},
		"destroy":  {m.CanDestroy(), false},
	}
	for name, c := range checks {
		if c.got != c.want {
			t.Errorf("Can %s = %v, want %v", name, c.got, c.want)
		}
	}

	for _, p := range access.Permissions() {
		want := p == access.Read || p == access.Update
		if got := m.Has(p); got != want {
			t.Errorf("Has(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestMap_With(t *testing.T) {
	t.Run("intersects and returns receiver", func(t *testing.T) {
		a := access.AdminOf(user, &doc)
		b := access.New(user, &doc, access.Read|access.Restore|access.Destroy)

		got := a.With(b)
		if got != a {
			t.Error("With() did not return the receiver")
		}
		if want := access.Read | access.Restore | access.Destroy; a.Permissions() != want {
			t.Errorf("Permissions() = %v, want %v", a.Permissions(), want)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		b := access.New(user, nil, access.Read|access.Update|access.Delete)
		for _, p := range []access.Permission{0, access.Read, access.Creator, access.All, access.Update | access.Destroy} {
			once := access.New(user, &doc, p).With(b).Permissions()
			twice := access.New(user, &doc, p).With(b).With(b).Permissions()
			if once != twice {
				t.Errorf("perm %v: With(b) = %v, With(b).With(b) = %v", p, once, twice)
			}
			self := access.New(user, &doc, p)
			if got := self.With(access.New(user, &doc, p)).Permissions(); got != p {
				t.Errorf("perm %v: With(self) = %v", p, got)
			}
		}
	})

	t.Run("nil narrows to nothing", func(t *testing.T) {
		m := access.RootOf(user, &doc).With(nil)
		if m.Permissions() != 0 {
			t.Errorf("Permissions() = %v, want 0", m.Permissions())
		}
	})
}

func TestMap_IsCreator(t *testing.T) {
	if !access.CreatorOf(user, &doc).IsCreator() {
		t.Error("CreatorOf().IsCreator() = false")
	}
	if !access.RootOf(user, &doc).IsCreator() {
		t.Error("RootOf().IsCreator() = false")
	}
	if access.ReadOnly(user, &doc).IsCreator() {
		t.Error("ReadOnly().IsCreator() = true")
	}
}

func TestComposites(t *testing.T) {
	if access.Admin != access.Root {
		t.Errorf("Admin = %v, want Root %v", access.Admin, access.Root)
	}
	creator := access.CreatorOf(user, &doc)
	if !creator.CanRestore() {
		t.Error("CreatorOf().CanRestore() = false")
	}
	if creator.CanDestroy() {
		t.Error("CreatorOf().CanDestroy() = true")
	}
	if !access.AdminOf(user, &doc).CanDestroy() {
		t.Error("AdminOf().CanDestroy() = false")
	}
	for name, m := range map[string]*access.Map{
		"interact": access.InteractOnly(user, &doc),
		"append":   access.AppendOnly(user, &doc),
		"update":   access.UpdateOnly(user, &doc),
		"delete":   access.DeleteOnly(user, &doc),
	} {
		if !m.CanRead() {
			t.Errorf("%s only: CanRead() = false", name)
		}
	}
}

func TestMap_ResourceExists(t *testing.T) {
	if !access.ReadOnly(user, &doc).ResourceExists() {
		t.Error("ResourceExists() = false with a resource")
	}
	if access.ReadOnly(user, nil).ResourceExists() {
		t.Error("ResourceExists() = true without a resource")
	}
}

func TestMap_String(t *testing.T) {
	if got, want := access.New(user, &doc, access.Read|access.Update).String(), "user:7 -> record:42: read|update"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := access.DenyAll(user, nil).String(), "user:7 -> *: none"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPermission(t *testing.T) {
	if got := len(access.Permissions()); got != 7 {
		t.Fatalf("len(Permissions()) = %d, want 7", got)
	}
	for _, p := range access.Permissions() {
		parsed, ok := access.ParsePermission(p.String())
		if !ok || parsed != p {
			t.Errorf("ParsePermission(%q) = %v, %v", p.String(), parsed, ok)
		}
	}
	if _, ok := access.ParsePermission("fly"); ok {
		t.Error("ParsePermission(fly) ok")
	}
}

func TestObjectOf(t *testing.T) {
	if access.ObjectOf(nil) != nil {
		t.Error("ObjectOf(nil) != nil")
	}
	if got := access.ObjectOf(doc); got == nil || *got != doc {
		t.Errorf("ObjectOf(doc) = %v", got)
	}
}

// Package access holds the permission bitmask that describes what one actor
// may do to one resource, or to a whole class of resources when the resource
// is absent.
//
// Maps are combined by intersection, which only ever narrows a grant:
//
//	role := access.UpdateOnly(user, nil)
//	grant := access.New(user, &doc, access.Read|access.Update|access.Delete)
//	m := grant.With(role) // read and update
//
// A Checker answers permission questions for a Map and supports explicit
// Allow/Deny overrides for admin tools and tests.
package access

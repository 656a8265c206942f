// Package resource provides the persisted-entity model and a generic CRUD
// helper bound to one table.
//
// # Resources
//
// A Resource exposes its primary key column, its key value and a data map:
// the ordered column/value projection used for writes. Base carries the
// attributes every resource shares (creator, creation/modification/activity
// timestamps and the soft-delete flag) and is meant to be embedded:
//
//	type Note struct {
//	    resource.Base
//	    NoteID sql.Null[int64]
//	    Body   string
//	}
//
// Record is the built-in resource keyed by record_id.
//
// # Helper
//
// Helper binds a table to a resource factory and implements create, fetch,
// count, update, soft delete, restore and destroy:
//
//	h, err := resource.NewHelper(session, "records", resource.NewRecord)
//	rec, ok := h.Create(ctx, &resource.Record{Base: resource.Base{CreatorID: sql.Null[int64]{V: 7, Valid: true}}})
//	res := h.Fetch(ctx, resource.ByKey(1), 0)
//	h.Delete(ctx, resource.ByKey(1))
//
// Fetch and Count skip soft-deleted rows unless IncludeDeleted is given and
// the table has a deleted column. Update, Delete and Restore match deleted
// rows too. Destroy removes rows permanently.
//
// The helper's methods log failures and return a zero result, so a query
// failure looks like "no match" to the caller. Strict returns a view of the
// same helper whose methods return the underlying error instead.
//
// # Validation
//
// ValidateStructure checks a list of Conditions before a create or update.
// The helper does not run validation itself.
package resource

package access

// ObjectType is the kind of an Object, such as "user" or "record".
type ObjectType string

func (ot ObjectType) String() string {
	return string(ot)
}

// Object identifies an actor or a resource. Objects are values and safe to
// copy.
type Object struct {
	Type ObjectType
	ID   string
}

// String returns "type:id".
func (o Object) String() string {
	return o.Type.String() + ":" + o.ID
}

// AccessObject returns o, implementing ObjectLike.
func (o Object) AccessObject() Object {
	return o
}

// ObjectLike is implemented by domain values that map to an Object.
//
//	func (u User) AccessObject() access.Object {
//	    return access.Object{Type: "user", ID: strconv.FormatInt(u.ID, 10)}
//	}
type ObjectLike interface {
	AccessObject() Object
}

// ObjectOf converts v, returning nil when v is nil.
func ObjectOf(v ObjectLike) *Object {
	if v == nil {
		return nil
	}
	o := v.AccessObject()
	return &o
}

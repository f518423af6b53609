package tracker

import "reflect"

// Getter reads the current value of a tracked target.
type Getter func() any

// Target identifies a value source. Two targets are the same when their keys
// match; the getter does not take part in identity.
type Target struct {
	Name  string
	get   Getter
	owner ownerKey
	key   string
}

type ownerKey struct {
	typ reflect.Type
	ptr uintptr
}

// Member tracks a named member of owner. Identity is the (owner, name) pair;
// pointer owners compare by address, a nil owner stands for a package-level
// value.
func Member(owner any, name string, get Getter) Target {
	return Target{Name: name, get: get, owner: keyOf(owner), key: name}
}

// Expr tracks an arbitrary expression identified by key. An empty name
// displays the key.
func Expr(key, name string, get Getter) Target {
	if name == "" {
		name = key
	}
	return Target{Name: name, get: get, key: "expr:" + key}
}

func keyOf(owner any) ownerKey {
	if owner == nil {
		return ownerKey{}
	}
	rv := reflect.ValueOf(owner)
	k := ownerKey{typ: rv.Type()}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Slice:
		if !rv.IsNil() {
			k.ptr = rv.Pointer()
		}
	}
	return k
}

// Equals reports whether t and o describe the same target.
func (t Target) Equals(o Target) bool {
	return t.key == o.key && t.owner == o.owner
}

// read evaluates the getter; a panic or a missing getter is returned as ok=false.
func (t Target) read() (v any, ok bool) {
	if t.get == nil {
		return nil, false
	}
	defer func() {
		if r := recover(); r != nil {
			v, ok = r, false
		}
	}()
	return t.get(), true
}

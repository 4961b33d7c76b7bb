package vector

import (
	"reflect"
	"unsafe"
)

// exposed returns a read-write view of an addressable value, including
// unexported struct fields that reflect would otherwise refuse to touch.
// WARNING: This bypasses Go's export rules and should be used with caution.
func exposed(v reflect.Value) reflect.Value {
	if v.CanSet() || !v.CanAddr() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

// addressable returns v itself when it is addressable, otherwise a fresh
// addressable copy of it.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}

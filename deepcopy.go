package vector

import (
	"fmt"
	"reflect"
)

type visitKey struct {
	ptr uintptr
	typ reflect.Type
}

// DeepCopy returns a copy of v that shares no pointers, slices or maps with
// it. Cycles and shared pointers are preserved in the copy. Non-nil channels,
// funcs and unsafe pointers cannot be copied and yield ErrUncopyable.
func DeepCopy[T any](v T) (T, error) {
	var out T
	src := reflect.ValueOf(&v).Elem()
	dst := reflect.ValueOf(&out).Elem()
	if err := deepCopy(src, dst, make(map[visitKey]reflect.Value)); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func deepCopy(src, dst reflect.Value, visited map[visitKey]reflect.Value) error {
	switch src.Kind() {
	case reflect.Ptr:
		if src.IsNil() {
			return nil
		}
		key := visitKey{ptr: src.Pointer(), typ: src.Type()}
		if exist, ok := visited[key]; ok {
			dst.Set(exist)
			return nil
		}
		p := reflect.New(src.Type().Elem())
		visited[key] = p
		dst.Set(p)
		return deepCopy(src.Elem(), p.Elem(), visited)

	case reflect.Array:
		for i := 0; i < src.Len(); i++ {
			if err := deepCopy(src.Index(i), dst.Index(i), visited); err != nil {
				return err
			}
		}

	case reflect.Slice:
		if src.IsNil() {
			return nil
		}
		s := reflect.MakeSlice(src.Type(), src.Len(), src.Cap())
		dst.Set(s)
		for i := 0; i < src.Len(); i++ {
			if err := deepCopy(src.Index(i), s.Index(i), visited); err != nil {
				return err
			}
		}

	case reflect.Map:
		if src.IsNil() {
			return nil
		}
		m := reflect.MakeMapWithSize(src.Type(), src.Len())
		dst.Set(m)
		keyType, elemType := src.Type().Key(), src.Type().Elem()
		iter := src.MapRange()
		for iter.Next() {
			k := reflect.New(keyType).Elem()
			if err := deepCopy(iter.Key(), k, visited); err != nil {
				return err
			}
			e := reflect.New(elemType).Elem()
			if err := deepCopy(iter.Value(), e, visited); err != nil {
				return err
			}
			m.SetMapIndex(k, e)
		}

	case reflect.Struct:
		src = addressable(src)
		for i := 0; i < src.NumField(); i++ {
			if err := deepCopy(exposed(src.Field(i)), exposed(dst.Field(i)), visited); err != nil {
				return err
			}
		}

	case reflect.Interface:
		if src.IsNil() {
			return nil
		}
		elem := src.Elem()
		e := reflect.New(elem.Type()).Elem()
		if err := deepCopy(elem, e, visited); err != nil {
			return err
		}
		dst.Set(e)

	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if src.IsNil() {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrUncopyable, src.Type())

	default:
		dst.Set(src)
	}
	return nil
}

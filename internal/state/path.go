package state

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ErrPathNotFound is returned by UpdateNested for a path that names no field.
var ErrPathNotFound = errors.New("state path not found")

// getPath walks a dot path through struct fields (by json name), pointers and
// slice indexes.
func getPath(snap Snapshot, path string) (any, bool) {
	v := reflect.ValueOf(snap)
	for _, seg := range strings.Split(path, ".") {
		var ok bool
		if v, ok = step(v, seg); !ok {
			return nil, false
		}
	}
	return v.Interface(), true
}

func step(v reflect.Value, seg string) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		idx, ok := fieldIndex(v.Type(), seg)
		if !ok {
			return reflect.Value{}, false
		}
		return v.Field(idx), true
	case reflect.Slice:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= v.Len() {
			return reflect.Value{}, false
		}
		return v.Index(i), true
	default:
		return reflect.Value{}, false
	}
}

// setPath assigns value to the leaf at path inside snap. A nil pointer on the
// way is replaced by a fresh zero value, the way spreading an absent object
// yields an empty one.
func setPath(snap *Snapshot, path string, value any) error {
	segs := strings.Split(path, ".")
	v := reflect.ValueOf(snap).Elem()
	for i, seg := range segs {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		var next reflect.Value
		switch v.Kind() {
		case reflect.Struct:
			idx, ok := fieldIndex(v.Type(), seg)
			if !ok {
				return fmt.Errorf("%w: %q", ErrPathNotFound, path)
			}
			next = v.Field(idx)
		case reflect.Slice:
			n, err := strconv.Atoi(seg)
			if err != nil || n < 0 || n >= v.Len() {
				return fmt.Errorf("%w: %q", ErrPathNotFound, path)
			}
			next = v.Index(n)
		default:
			return fmt.Errorf("%w: %q", ErrPathNotFound, path)
		}
		if i == len(segs)-1 {
			return assign(next, value, path)
		}
		v = next
	}
	return fmt.Errorf("%w: %q", ErrPathNotFound, path)
}

func assign(dst reflect.Value, value any, path string) error {
	if !dst.CanSet() {
		return fmt.Errorf("state path %q is not settable", path)
	}
	if value == nil {
		switch dst.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		return fmt.Errorf("state path %q cannot be nil", path)
	}
	src := reflect.ValueOf(value)
	switch {
	case src.Type().AssignableTo(dst.Type()):
		dst.Set(src)
	case isNumber(src.Kind()) && isNumber(dst.Kind()):
		converted, ok := convertNumber(src, dst.Type())
		if !ok {
			return fmt.Errorf("state path %q holds %s, got %T", path, dst.Type(), value)
		}
		dst.Set(converted)
	case dst.Kind() == reflect.Pointer && src.Type().AssignableTo(dst.Type().Elem()):
		p := reflect.New(dst.Type().Elem())
		p.Elem().Set(src)
		dst.Set(p)
	default:
		return fmt.Errorf("state path %q holds %s, got %T", path, dst.Type(), value)
	}
	return nil
}

// convertNumber converts src to t only when the value survives unchanged.
func convertNumber(src reflect.Value, t reflect.Type) (reflect.Value, bool) {
	out := reflect.New(t).Elem()
	switch {
	case src.CanInt():
		n := src.Int()
		switch {
		case out.CanInt():
			if out.OverflowInt(n) {
				return out, false
			}
		case out.CanUint():
			if n < 0 || out.OverflowUint(uint64(n)) {
				return out, false
			}
		default:
			if int64(float64(n)) != n {
				return out, false
			}
		}
	case src.CanUint():
		n := src.Uint()
		switch {
		case out.CanInt():
			if n > math.MaxInt64 || out.OverflowInt(int64(n)) {
				return out, false
			}
		case out.CanUint():
			if out.OverflowUint(n) {
				return out, false
			}
		default:
			if n > 1<<53 {
				return out, false
			}
		}
	default:
		f := src.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return out, false
		}
		switch {
		case out.CanFloat():
			if out.OverflowFloat(f) {
				return out, false
			}
		case f != math.Trunc(f):
			return out, false
		case out.CanInt():
			if f < math.MinInt64 || f >= math.MaxInt64 || out.OverflowInt(int64(f)) {
				return out, false
			}
		default:
			if f < 0 || f >= math.MaxUint64 || out.OverflowUint(uint64(f)) {
				return out, false
			}
		}
	}
	out.Set(src.Convert(t))
	return out, true
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func fieldIndex(t reflect.Type, name string) (int, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := strings.Split(f.Tag.Get("json"), ",")[0]
		if tag == "-" {
			continue
		}
		if tag == name || (tag == "" && f.Name == name) {
			return i, true
		}
	}
	return 0, false
}

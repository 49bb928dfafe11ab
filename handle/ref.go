package handle

import (
	"reflect"

	"github.com/wippyai/ownership"
)

// Referents are reference-shaped values: pointers, interfaces, maps,
// slices, channels, funcs. A handle treats the zero value of any of
// these as "no referent".

// RefNil reports whether v is a null referent: untyped nil, or a typed
// nil pointer/interface/map/slice/channel/func.
func RefNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// RefEqual reports whether a and b are the same referent. Reference-shaped
// values (pointers, maps, slices, channels, funcs) compare by address
// identity, so a *Circle held directly and the same *Circle held behind a
// Shape interface are equal, and two maps are equal only when they are the
// same map. Two null referents are equal regardless of static type;
// value-shaped referents compare by value, and uncomparable ones are
// never equal.
func RefEqual(a, b any) bool {
	an, bn := RefNil(a), RefNil(b)
	if an || bn {
		return an == bn
	}
	if aa, ba := refAddr(a), refAddr(b); aa != 0 && ba != 0 {
		return aa == ba
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}

// RefLess orders referents by address, matching the relational operators
// on raw pointers. It is defined for pointer-shaped referents (pointers,
// maps, channels, funcs, slices by their data pointer); null referents
// sort first. Value-shaped referents all map to address zero.
func RefLess(a, b any) bool {
	return refAddr(a) < refAddr(b)
}

// refAddr returns the address identifying a referent, or 0 for null and
// value-shaped referents.
func refAddr(v any) uintptr {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func,
		reflect.Slice, reflect.UnsafePointer:
		if rv.IsNil() {
			return 0
		}
		return rv.Pointer()
	}
	return 0
}

// dropRef invokes the referent's destructor when it implements
// ownership.Dropper. Null referents are ignored.
func dropRef(v any) {
	if RefNil(v) {
		return
	}
	if d, ok := v.(ownership.Dropper); ok {
		d.Drop()
	}
}

// typeName names v's dynamic type for error reporting.
func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}

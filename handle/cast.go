package handle

import (
	"reflect"

	"github.com/wippyai/ownership/errors"
)

// Cast helpers convert a handle across a polymorphic hierarchy while
// preserving ownership. Go's runtime type facility is the type
// assertion, so "static" here means a conversion the caller knows must
// succeed (an upcast to an interface the concrete type implements): a
// miss is a programmer error and panics. DynamicCast is the checked
// form whose miss is an ordinary, expected outcome.

// StaticCast returns a new handle typed T sharing src's lineage. The
// use count increases by exactly one; destruction timing is unchanged.
// An empty src yields an empty result. Panics with a type_mismatch
// error when the referent does not convert to T.
func StaticCast[T any, U any](src *Shared[U]) *Shared[T] {
	if !src.Valid() {
		return &Shared[T]{alloc: src.alloc}
	}
	v, ok := any(src.px).(T)
	if !ok {
		panic(errors.TypeMismatch(typeName(src.px), targetName[T]()))
	}
	return newAliased(src, v)
}

// DynamicCast returns a new handle typed T sharing src's lineage when
// the referent's runtime type converts to T, and an empty handle when it
// does not. src is unaffected either way.
func DynamicCast[T any, U any](src *Shared[U]) *Shared[T] {
	if !src.Valid() {
		return &Shared[T]{alloc: src.alloc}
	}
	v, ok := any(src.px).(T)
	if !ok {
		return &Shared[T]{alloc: src.alloc}
	}
	return newAliased(src, v)
}

// StaticCastOwned converts an exclusive handle, consuming src: on return
// src is empty and the result holds the converted referent. Panics with
// a type_mismatch error when the referent does not convert to T.
func StaticCastOwned[T any, U any](src *Owned[U]) *Owned[T] {
	if !src.Valid() {
		return &Owned[T]{}
	}
	v, ok := any(src.px).(T)
	if !ok {
		panic(errors.TypeMismatch(typeName(src.px), targetName[T]()))
	}
	var zero U
	src.px = zero
	if observed() {
		notify(Event{Type: EventMove, Lineage: refAddr(v), Count: 1, Value: v})
	}
	return &Owned[T]{px: v}
}

// DynamicCastOwned converts an exclusive handle when the referent's
// runtime type allows it, consuming src on success. On a miss src is
// left unchanged and the result is empty: nothing is lost or duplicated.
func DynamicCastOwned[T any, U any](src *Owned[U]) *Owned[T] {
	if !src.Valid() {
		return &Owned[T]{}
	}
	v, ok := any(src.px).(T)
	if !ok {
		return &Owned[T]{}
	}
	var zero U
	src.px = zero
	if observed() {
		notify(Event{Type: EventMove, Lineage: refAddr(v), Count: 1, Value: v})
	}
	return &Owned[T]{px: v}
}

// targetName names the cast target type for error reporting.
func targetName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

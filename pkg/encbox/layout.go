package encbox

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// layouts caches the result of checkLayout per type.
var layouts sync.Map

func checkLayout[T any]() error {
	t := reflect.TypeFor[T]()
	if v, ok := layouts.Load(t); ok {
		err, _ := v.(error)
		return err
	}
	var err error
	if bad := findPointer(t); bad != nil {
		if bad == t {
			err = fmt.Errorf("%w: %s holds pointers", ErrUnsupportedType, t)
		} else {
			err = fmt.Errorf("%w: %s contains %s", ErrUnsupportedType, t, bad)
		}
	}
	layouts.Store(t, err)
	return err
}

// findPointer returns the first type within t that the garbage collector would trace, or nil if there are none.
func findPointer(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		if t.Len() == 0 {
			return nil
		}
		return findPointer(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if bad := findPointer(t.Field(i).Type); bad != nil {
				return bad
			}
		}
		return nil
	default:
		return t
	}
}

// bytesOf views the memory of *p as bytes.
func bytesOf[T any](p *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), unsafe.Sizeof(*p))
}

// bytesOfSlice views the backing memory of s as one flat run of bytes.
func bytesOfSlice[E any](s []E) []byte {
	var zero E
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), uintptr(len(s))*unsafe.Sizeof(zero))
}

package bufvec

import (
	"fmt"
	"reflect"
	"unsafe"
)

// elementSize returns the size of T in bytes after checking that values of T
// can be copied to device memory byte-for-byte.
//
// Valid element types are fixed-size and pointer-free: booleans, numbers,
// and arrays and structs built from them.
func elementSize[T any]() (int, error) {
	t := reflect.TypeFor[T]()
	if err := checkPlain(t); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidElement, t, err)
	}
	size := int(t.Size())
	if size == 0 {
		return 0, fmt.Errorf("%w: %s has zero size", ErrInvalidElement, t)
	}
	return size, nil
}

func checkPlain(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return checkPlain(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if err := checkPlain(f.Type); err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("kind %s holds references", t.Kind())
	}
}

// asBytes reinterprets data as its raw bytes without copying.
// T must have passed elementSize.
func asBytes[T any](data []T, elemSize int) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(data))), len(data)*elemSize)
}

// fromBytes copies raw bytes into a new slice of n elements of T.
func fromBytes[T any](b []byte, n int) []T {
	out := make([]T, n)
	copy(asBytes(out, int(unsafe.Sizeof(*new(T)))), b)
	return out
}

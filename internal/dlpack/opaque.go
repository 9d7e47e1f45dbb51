package dlpack

import "unsafe"

// The exchange boundary is an opaque pointer for real interoperability.
// All pointer casting is confined to these two functions; everything past
// decode operates on typed values.

// ToOpaque converts a managed descriptor to the opaque boundary form.
func ToOpaque(m *Managed) unsafe.Pointer {
	return unsafe.Pointer(m)
}

// FromOpaque recovers the managed descriptor from the opaque boundary form.
func FromOpaque(p unsafe.Pointer) *Managed {
	return (*Managed)(p)
}

// Package dlpack implements the DLPack tensor interchange bridge for the
// Fathom runtime. It converts between native tensor handles and the DLPack
// in-memory exchange format so that independent frameworks can share device
// buffers without copying.
//
// The numeric values of TypeCode and DeviceType are fixed by the DLPack C
// header (dlpack/dlpack.h) and must never change.
package dlpack

import (
	"sync/atomic"
	"unsafe"

	"github.com/fathom-ml/fathom/internal/tensor"
)

// TypeCode is the DLPack data type code (DLDataTypeCode).
type TypeCode uint8

// DLPack data type codes.
const (
	KindInt    TypeCode = 0 // kDLInt
	KindUInt   TypeCode = 1 // kDLUInt
	KindFloat  TypeCode = 2 // kDLFloat
	KindBfloat TypeCode = 4 // kDLBfloat
)

// String returns the DLPack name of the type code.
func (c TypeCode) String() string {
	switch c {
	case KindInt:
		return "Int"
	case KindUInt:
		return "UInt"
	case KindFloat:
		return "Float"
	case KindBfloat:
		return "Bfloat"
	default:
		return "Unknown"
	}
}

// DeviceType is the DLPack device type (DLDeviceType).
type DeviceType int32

// DLPack device types understood by this bridge.
const (
	DeviceCPU DeviceType = 1 // kDLCPU
	DeviceGPU DeviceType = 2 // kDLGPU
)

// DataType is the DLPack element type triple (DLDataType).
// Lanes is always 1; vectorized types are not supported.
type DataType struct {
	Code  TypeCode
	Bits  uint8
	Lanes uint16
}

// Device is the DLPack device pair (DLContext).
type Device struct {
	Type DeviceType
	ID   int32
}

// Tensor is the DLPack tensor descriptor (DLTensor).
//
// Shape and Strides are expressed in elements and have length NDim. A nil
// Strides slice means compact row-major layout by convention of the
// exchange format. ByteOffset is always 0 here; offsets are not supported.
type Tensor struct {
	Data       unsafe.Pointer
	Device     Device
	NDim       int32
	DType      DataType
	Shape      []int64
	Strides    []int64
	ByteOffset uint64
}

// Managed is the managed envelope handed across the framework boundary
// (DLManagedTensor). ManagerCtx is opaque to the consumer; Deleter must be
// invoked exactly once to release the descriptor's resources.
type Managed struct {
	Tensor     Tensor
	ManagerCtx any
	Deleter    func(*Managed)
}

// capsule owns everything a Managed descriptor points at: the shape and
// stride storage, and a shared reference on the exporting tensor's backing
// buffer. The embedded Managed shares the capsule's lifetime, so its Shape
// and Strides slices stay valid exactly as long as the capsule is alive.
type capsule struct {
	ref      tensor.BufferRef
	shape    []int64
	strides  []int64
	managed  Managed
	released atomic.Bool
}

// capsuleDeleter releases the buffer reference held by the capsule.
// The atomic guard makes the release happen at most once regardless of
// which framework triggers the deleter.
func capsuleDeleter(m *Managed) {
	c, ok := m.ManagerCtx.(*capsule)
	if !ok {
		return
	}
	if c.released.CompareAndSwap(false, true) {
		c.ref.Unref()
	}
}

// InvokeDeleter triggers a descriptor's deleter, if any. It is the escape
// hatch for a consumer that received a capsule but abandoned it before
// building a handle from it.
func InvokeDeleter(m *Managed) {
	if m != nil && m.Deleter != nil {
		m.Deleter(m)
	}
}

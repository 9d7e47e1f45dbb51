// Copyright 2026 Fathom ML Runtime. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dlpack provides the public API for the DLPack tensor interchange
// bridge.
//
// DLPack lets independent tensor libraries share device memory without
// copying, by agreeing on a small C-compatible descriptor and a managed
// lifetime protocol. This package exports native tensor handles into DLPack
// capsules and imports foreign capsules into native handles, zero-copy in
// both directions.
//
// The boundary form is an opaque pointer, as required for real
// interoperability. Whoever holds a capsule must eventually trigger its
// deleter exactly once: by handing it to a consuming framework, by
// importing it and destroying the resulting handle, or by calling
// CallDeleter directly.
//
// Example:
//
//	ctx := eager.NewContext()
//	h, _ := ctx.NewHandle(raw, "CPU:0")
//
//	capsule, err := dlpack.Export(h)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	imported, err := dlpack.Import(capsule, eager.NewContext())
//	if err != nil {
//	    dlpack.CallDeleter(capsule)
//	    log.Fatal(err)
//	}
//	defer imported.Destroy() // triggers the capsule's deleter
package dlpack

import (
	"unsafe"

	"github.com/fathom-ml/fathom/internal/dlpack"
	"github.com/fathom-ml/fathom/internal/eager"
)

// Managed is the managed envelope handed across the framework boundary
// (DLManagedTensor).
type Managed = dlpack.Managed

// Tensor is the DLPack tensor descriptor (DLTensor).
type Tensor = dlpack.Tensor

// DataType is the DLPack element type triple (DLDataType).
type DataType = dlpack.DataType

// Device is the DLPack device pair (DLContext).
type Device = dlpack.Device

// TypeCode is the DLPack data type code.
type TypeCode = dlpack.TypeCode

// DLPack data type codes.
const (
	KindInt    TypeCode = dlpack.KindInt
	KindUInt   TypeCode = dlpack.KindUInt
	KindFloat  TypeCode = dlpack.KindFloat
	KindBfloat TypeCode = dlpack.KindBfloat
)

// DeviceType is the DLPack device type.
type DeviceType = dlpack.DeviceType

// DLPack device types understood by this bridge.
const (
	DeviceCPU DeviceType = dlpack.DeviceCPU
	DeviceGPU DeviceType = dlpack.DeviceGPU
)

// Error kinds reported by the bridge; test with errors.Is.
var (
	ErrInvalidHandle       = dlpack.ErrInvalidHandle
	ErrUnsupportedLocation = dlpack.ErrUnsupportedLocation
	ErrUnsupportedType     = dlpack.ErrUnsupportedType
	ErrUnsupportedDevice   = dlpack.ErrUnsupportedDevice
	ErrInvalidStrides      = dlpack.ErrInvalidStrides
)

// Export builds a DLPack capsule from a native tensor handle and returns
// the opaque descriptor pointer. Ownership of the capsule passes to the
// caller, who must eventually trigger its deleter exactly once.
func Export(h *eager.TensorHandle) (unsafe.Pointer, error) {
	m, err := dlpack.Export(h)
	if err != nil {
		return nil, err
	}
	return dlpack.ToOpaque(m), nil
}

// Import constructs a native tensor handle from an opaque DLPack descriptor
// pointer without copying the backing memory. Destroying the handle invokes
// the descriptor's deleter.
func Import(p unsafe.Pointer, ctx *eager.Context) (*eager.TensorHandle, error) {
	return dlpack.Import(dlpack.FromOpaque(p), ctx)
}

// CallDeleter triggers the deleter of an opaque DLPack descriptor. Use it
// to release a capsule that was abandoned before a handle was built.
func CallDeleter(p unsafe.Pointer) {
	dlpack.InvokeDeleter(dlpack.FromOpaque(p))
}

// IsCompactRowMajor reports whether a stride array describes compact
// row-major data for the given shape.
func IsCompactRowMajor(shape, strides []int64) bool {
	return dlpack.IsCompactRowMajor(shape, strides)
}

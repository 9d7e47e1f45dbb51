// Copyright 2026 Fathom ML Runtime. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the Fathom native tensor
// representation.
//
// The package defines the core types consumed by the eager and dlpack
// layers:
//   - RawTensor: reference-counted tensor with zero-copy typed accessors
//   - Shape, DataType, Device: core type definitions
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
package tensor

import (
	"github.com/fathom-ml/fathom/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for data types that can be loaded from Go slices.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float16  DataType = tensor.Float16
	BFloat16 DataType = tensor.BFloat16
	Float32  DataType = tensor.Float32
	Float64  DataType = tensor.Float64
	Int8     DataType = tensor.Int8
	Int16    DataType = tensor.Int16
	Int32    DataType = tensor.Int32
	Int64    DataType = tensor.Int64
	Uint8    DataType = tensor.Uint8
	Uint16   DataType = tensor.Uint16
	Uint32   DataType = tensor.Uint32
	Uint64   DataType = tensor.Uint64
	Bool     DataType = tensor.Bool
)

// Device represents where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU Device = tensor.CPU
	GPU Device = tensor.GPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the low-level tensor representation with reference-counted
// backing storage.
type RawTensor = tensor.RawTensor

// BufferRef is a shared reference on a tensor's backing buffer.
type BufferRef = tensor.BufferRef

// NewRaw creates a new raw tensor with the given shape, dtype, and device.
// Memory is allocated but not initialized (contains zeros).
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a raw tensor with data copied from a Go slice.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, tensor.CPU)
func FromSlice[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromSlice(data, shape, device)
}

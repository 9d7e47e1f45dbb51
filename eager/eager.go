// Copyright 2026 Fathom ML Runtime. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package eager provides the public API for the Fathom eager execution
// layer: contexts and tensor handles.
//
// A Context owns handle creation. A TensorHandle binds a tensor to the
// device it resides on and carries the lifetime of its backing buffer.
//
// Example:
//
//	ctx := eager.NewContext()
//	raw, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
//	h, err := ctx.NewHandle(raw, "CPU:0")
//	defer h.Destroy()
package eager

import (
	"github.com/fathom-ml/fathom/internal/eager"
)

// Context owns handle creation for eager execution.
type Context = eager.Context

// TensorHandle couples a raw tensor with the device it resides on.
type TensorHandle = eager.TensorHandle

// DeviceSpec is a parsed device name.
type DeviceSpec = eager.DeviceSpec

// DeallocatorFunc is invoked when a handle created from foreign device
// memory is destroyed.
type DeallocatorFunc = eager.DeallocatorFunc

// NewContext creates a new eager execution context.
func NewContext() *Context {
	return eager.NewContext()
}

// ParseDeviceName parses a device name such as "GPU:1" or
// "/job:worker/replica:0/task:0/device:GPU:0" into a DeviceSpec.
func ParseDeviceName(name string) (DeviceSpec, error) {
	return eager.ParseDeviceName(name)
}

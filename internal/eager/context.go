package eager

import (
	"fmt"
	"unsafe"

	"github.com/fathom-ml/fathom/internal/tensor"
)

// Context owns handle creation for eager execution. Handles created on
// different contexts are independent; destroying one context's handles
// never touches another's.
type Context struct{}

// NewContext creates a new eager execution context.
func NewContext() *Context {
	return &Context{}
}

// deviceKind maps a parsed device type string to the runtime device kind.
func deviceKind(spec DeviceSpec) (tensor.Device, error) {
	switch spec.Type {
	case "CPU":
		return tensor.CPU, nil
	case "GPU":
		return tensor.GPU, nil
	default:
		return 0, fmt.Errorf("unknown device type %q", spec.Type)
	}
}

// NewHandle wraps an existing tensor in a handle bound to the given device
// name. The handle takes over the caller's reference on the tensor.
func (c *Context) NewHandle(raw *tensor.RawTensor, deviceName string) (*TensorHandle, error) {
	if raw == nil {
		return nil, fmt.Errorf("nil tensor")
	}
	spec, err := ParseDeviceName(deviceName)
	if err != nil {
		return nil, err
	}
	if _, err := deviceKind(spec); err != nil {
		return nil, err
	}
	return &TensorHandle{raw: raw, deviceName: deviceName}, nil
}

// NewRemoteHandle creates a handle for a tensor that lives on a remote
// worker. Remote tensors carry no local memory; only their metadata is
// known. Remote execution itself is out of scope for this runtime.
func (c *Context) NewRemoteHandle(deviceName string) *TensorHandle {
	return &TensorHandle{deviceName: deviceName, remote: true}
}

// DeallocatorFunc is invoked when a handle created from foreign device
// memory is destroyed. data and byteLen identify the foreign block; arg is
// the opaque argument given at registration.
type DeallocatorFunc func(data unsafe.Pointer, byteLen int, arg unsafe.Pointer)

// NewHandleFromDeviceMemory registers a foreign-owned memory block as a new
// tensor handle without copying. dealloc runs exactly once, when the last
// reference on the wrapped buffer is dropped.
func (c *Context) NewHandleFromDeviceMemory(deviceName string, dtype tensor.DataType, dims []int64,
	data unsafe.Pointer, byteLen int, dealloc DeallocatorFunc, arg unsafe.Pointer) (*TensorHandle, error) {

	spec, err := ParseDeviceName(deviceName)
	if err != nil {
		return nil, err
	}
	kind, err := deviceKind(spec)
	if err != nil {
		return nil, err
	}

	shape := make(tensor.Shape, len(dims))
	for i, d := range dims {
		shape[i] = int(d)
	}

	var free func()
	if dealloc != nil {
		free = func() { dealloc(data, byteLen, arg) }
	}

	raw, err := tensor.NewRawFromPtr(shape, dtype, kind, data, byteLen, free)
	if err != nil {
		return nil, fmt.Errorf("wrap device memory: %w", err)
	}
	return &TensorHandle{raw: raw, deviceName: deviceName}, nil
}

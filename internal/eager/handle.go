package eager

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/fathom-ml/fathom/internal/tensor"
)

// TensorHandle couples a raw tensor with the device it resides on.
// Destroy is idempotent; the underlying buffer is released exactly once no
// matter how many times Destroy runs.
type TensorHandle struct {
	raw        *tensor.RawTensor
	deviceName string
	remote     bool
	destroy    sync.Once
}

// Valid reports whether the handle still references a tensor.
// Remote handles are valid; they just have no local memory.
func (h *TensorHandle) Valid() bool {
	return h != nil && (h.remote || h.raw != nil)
}

// IsRemote reports whether the tensor lives on a remote worker.
func (h *TensorHandle) IsRemote() bool {
	return h.remote
}

// DeviceName returns the device name the handle is bound to.
func (h *TensorHandle) DeviceName() string {
	return h.deviceName
}

// Tensor resolves the backing tensor.
func (h *TensorHandle) Tensor() (*tensor.RawTensor, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("handle is invalid")
	}
	if h.remote {
		return nil, fmt.Errorf("remote tensor has no local representation")
	}
	return h.raw, nil
}

// DevicePointer returns the address of the tensor's device memory.
func (h *TensorHandle) DevicePointer() (unsafe.Pointer, error) {
	raw, err := h.Tensor()
	if err != nil {
		return nil, err
	}
	return raw.DataPointer(), nil
}

// Destroy releases the handle's reference on the backing tensor. Safe to
// call multiple times; only the first call has an effect.
func (h *TensorHandle) Destroy() {
	if h == nil {
		return
	}
	h.destroy.Do(func() {
		if h.raw != nil {
			h.raw.Release()
			h.raw = nil
		}
	})
}

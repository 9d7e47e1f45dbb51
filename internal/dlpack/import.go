package dlpack

import (
	"fmt"
	"unsafe"

	"github.com/fathom-ml/fathom/internal/eager"
)

// Import constructs a native tensor handle from a foreign DLPack
// descriptor without copying its backing memory. The handle views the
// foreign data pointer directly; destroying the handle (once every native
// reference is gone) invokes the descriptor's deleter, handing the release
// obligation back to the originating framework exactly once.
//
// Non-compact stride layouts are rejected, not transposed or copied: the
// native representation only models compact row-major tensors.
func Import(m *Managed, ctx *eager.Context) (*eager.TensorHandle, error) {
	dl := &m.Tensor

	deviceName, ok := DeviceNameFromDevice(dl.Device)
	if !ok {
		return nil, fmt.Errorf("%w: device type %d", ErrUnsupportedDevice, dl.Device.Type)
	}
	dtype, err := FromDataType(dl.DType)
	if err != nil {
		return nil, err
	}

	totalBytes := int(dl.DType.Bits) / 8
	for _, d := range dl.Shape {
		totalBytes *= int(d)
	}

	// A nil stride array already means compact row-major by convention of
	// the exchange format; anything else must be validated.
	if dl.Strides != nil && !IsCompactRowMajor(dl.Shape, dl.Strides) {
		return nil, fmt.Errorf("%w: strides %v do not describe compact row-major data for shape %v",
			ErrInvalidStrides, dl.Strides, dl.Shape)
	}

	dealloc := func(_ unsafe.Pointer, _ int, _ unsafe.Pointer) {
		InvokeDeleter(m)
	}
	return ctx.NewHandleFromDeviceMemory(deviceName, dtype, dl.Shape, dl.Data, totalBytes, dealloc, nil)
}

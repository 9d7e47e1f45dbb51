package dlpack

import (
	"fmt"

	"github.com/fathom-ml/fathom/internal/eager"
)

// Export builds a self-contained DLPack capsule from a native tensor
// handle. The capsule holds a shared reference on the tensor's backing
// buffer, which is released only when the returned descriptor's deleter
// runs. Ownership of the capsule passes to the caller: either hand it to a
// consuming framework, or release it with InvokeDeleter.
//
// The stride array is always populated with explicit compact row-major
// strides rather than left nil, since some frameworks mishandle the nil
// convention.
func Export(h *eager.TensorHandle) (*Managed, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("%w: the passed in handle is nil or invalidated", ErrInvalidHandle)
	}
	if h.IsRemote() {
		return nil, fmt.Errorf("%w: cannot export a pointer to remote memory", ErrUnsupportedLocation)
	}
	raw, err := h.Tensor()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHandle, err)
	}

	// All fallible translations happen before the buffer reference is
	// taken, so a failed export leaves no reference behind and no partial
	// capsule ever reaches the caller.
	dev, err := ToDevice(h.DeviceName())
	if err != nil {
		return nil, err
	}
	dtype, err := ToDataType(raw.DType())
	if err != nil {
		return nil, err
	}
	data, err := h.DevicePointer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHandle, err)
	}

	dims := raw.Shape()
	ndim := len(dims)
	c := &capsule{
		ref:     raw.Ref(),
		shape:   make([]int64, ndim),
		strides: make([]int64, ndim),
	}
	for i, d := range dims {
		c.shape[i] = int64(d)
	}
	if ndim > 0 {
		c.strides[ndim-1] = 1
		for i := ndim - 2; i >= 0; i-- {
			c.strides[i] = c.shape[i+1] * c.strides[i+1]
		}
	}

	c.managed = Managed{
		Tensor: Tensor{
			Data:       data,
			Device:     dev,
			NDim:       int32(ndim), //nolint:gosec // rank is tiny
			DType:      dtype,
			Shape:      c.shape,
			Strides:    c.strides,
			ByteOffset: 0, // offsets are not supported
		},
		ManagerCtx: c,
		Deleter:    capsuleDeleter,
	}
	return &c.managed, nil
}

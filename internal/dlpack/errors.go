package dlpack

import "errors"

// Error kinds reported by the bridge. Call sites wrap these with context
// naming the offending type, device, or stride layout.
var (
	// ErrInvalidHandle reports a nil or invalidated source handle on export.
	ErrInvalidHandle = errors.New("dlpack: invalid tensor handle")

	// ErrUnsupportedLocation reports a remote-resident source tensor, whose
	// memory cannot be shared locally.
	ErrUnsupportedLocation = errors.New("dlpack: remote tensor is not supported")

	// ErrUnsupportedType reports an element type with no DLPack mapping in
	// either direction.
	ErrUnsupportedType = errors.New("dlpack: unsupported data type")

	// ErrUnsupportedDevice reports a device with no DLPack mapping in either
	// direction.
	ErrUnsupportedDevice = errors.New("dlpack: unsupported device")

	// ErrInvalidStrides reports a non-nil stride array that does not describe
	// compact row-major data.
	ErrInvalidStrides = errors.New("dlpack: invalid strides")
)

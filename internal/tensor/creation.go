package tensor

import (
	"fmt"
	"unsafe"
)

// FromSlice creates a RawTensor on the given device with data copied from a
// Go slice. The slice length must match the shape's element count.
func FromSlice[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	var dummy T
	dtype := inferDataType(dummy)

	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}

	raw, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}
	copySliceToStorage(data, raw.Data())
	return raw, nil
}

// copySliceToStorage copies a Go slice into a storage buffer byte-wise.
func copySliceToStorage[T any](data []T, dst []byte) {
	if len(data) == 0 || len(dst) == 0 {
		return
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	srcLen := len(data) * elemSize
	if srcLen > len(dst) {
		srcLen = len(dst)
	}
	srcBytes := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), srcLen)
	copy(dst, srcBytes)
}

package dlpack

import (
	"fmt"

	"github.com/fathom-ml/fathom/internal/tensor"
)

// ToDataType translates a native element type to the DLPack triple.
// Bits is the native byte size times eight; Lanes is always 1.
func ToDataType(dt tensor.DataType) (DataType, error) {
	var code TypeCode
	switch dt {
	case tensor.Float16, tensor.Float32, tensor.Float64:
		code = KindFloat
	case tensor.Int8, tensor.Int16, tensor.Int32, tensor.Int64:
		code = KindInt
	case tensor.Bool, tensor.Uint8, tensor.Uint16, tensor.Uint32, tensor.Uint64:
		code = KindUInt
	case tensor.BFloat16:
		code = KindBfloat
	default:
		return DataType{}, fmt.Errorf("%w: %s", ErrUnsupportedType, dt)
	}
	return DataType{
		Code:  code,
		Bits:  uint8(dt.Size() * 8), //nolint:gosec // element sizes are 1..8 bytes
		Lanes: 1,
	}, nil
}

// FromDataType translates a DLPack triple back to the native element type.
// Lanes other than 1 are rejected rather than silently ignored.
func FromDataType(dt DataType) (tensor.DataType, error) {
	if dt.Lanes != 1 {
		return 0, fmt.Errorf("%w: vectorized types (lanes=%d) are not supported", ErrUnsupportedType, dt.Lanes)
	}
	switch dt.Code {
	case KindUInt:
		switch dt.Bits {
		case 8:
			return tensor.Uint8, nil
		case 16:
			return tensor.Uint16, nil
		case 32:
			return tensor.Uint32, nil
		case 64:
			return tensor.Uint64, nil
		default:
			return 0, fmt.Errorf("%w: UInt with %d bits", ErrUnsupportedType, dt.Bits)
		}
	case KindInt:
		switch dt.Bits {
		case 8:
			return tensor.Int8, nil
		case 16:
			return tensor.Int16, nil
		case 32:
			return tensor.Int32, nil
		case 64:
			return tensor.Int64, nil
		default:
			return 0, fmt.Errorf("%w: Int with %d bits", ErrUnsupportedType, dt.Bits)
		}
	case KindFloat:
		switch dt.Bits {
		case 16:
			return tensor.Float16, nil
		case 32:
			return tensor.Float32, nil
		case 64:
			return tensor.Float64, nil
		default:
			return 0, fmt.Errorf("%w: Float with %d bits", ErrUnsupportedType, dt.Bits)
		}
	case KindBfloat:
		if dt.Bits == 16 {
			return tensor.BFloat16, nil
		}
		return 0, fmt.Errorf("%w: Bfloat with %d bits", ErrUnsupportedType, dt.Bits)
	default:
		return 0, fmt.Errorf("%w: type code %d", ErrUnsupportedType, dt.Code)
	}
}

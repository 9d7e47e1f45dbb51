package dlpack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathom-ml/fathom/internal/tensor"
)

func TestToDataTypeTable(t *testing.T) {
	cases := []struct {
		native tensor.DataType
		code   TypeCode
		bits   uint8
	}{
		{tensor.Float16, KindFloat, 16},
		{tensor.Float32, KindFloat, 32},
		{tensor.Float64, KindFloat, 64},
		{tensor.Int8, KindInt, 8},
		{tensor.Int16, KindInt, 16},
		{tensor.Int32, KindInt, 32},
		{tensor.Int64, KindInt, 64},
		{tensor.Bool, KindUInt, 8},
		{tensor.Uint8, KindUInt, 8},
		{tensor.Uint16, KindUInt, 16},
		{tensor.Uint32, KindUInt, 32},
		{tensor.Uint64, KindUInt, 64},
		{tensor.BFloat16, KindBfloat, 16},
	}

	for _, tt := range cases {
		got, err := ToDataType(tt.native)
		require.NoError(t, err, "ToDataType(%s)", tt.native)
		assert.Equal(t, DataType{Code: tt.code, Bits: tt.bits, Lanes: 1}, got, "ToDataType(%s)", tt.native)
	}
}

// Every supported native type round-trips through the exchange triple.
// Bool is the one deliberate exception: it travels as UInt/8 and therefore
// comes back as Uint8, matching the exchange format's lack of a bool code.
func TestDataTypeRoundTrip(t *testing.T) {
	roundTrippable := []tensor.DataType{
		tensor.Float16, tensor.Float32, tensor.Float64,
		tensor.Int8, tensor.Int16, tensor.Int32, tensor.Int64,
		tensor.Uint8, tensor.Uint16, tensor.Uint32, tensor.Uint64,
		tensor.BFloat16,
	}

	for _, dt := range roundTrippable {
		triple, err := ToDataType(dt)
		require.NoError(t, err)
		back, err := FromDataType(triple)
		require.NoError(t, err)
		assert.Equal(t, dt, back, "round trip of %s", dt)
	}

	triple, err := ToDataType(tensor.Bool)
	require.NoError(t, err)
	back, err := FromDataType(triple)
	require.NoError(t, err)
	assert.Equal(t, tensor.Uint8, back)
}

func TestFromDataTypeUnsupported(t *testing.T) {
	cases := []DataType{
		{Code: KindFloat, Bits: 8, Lanes: 1},   // 8-bit float
		{Code: KindInt, Bits: 128, Lanes: 1},   // 128-bit int
		{Code: KindUInt, Bits: 1, Lanes: 1},    // 1-bit uint
		{Code: KindBfloat, Bits: 32, Lanes: 1}, // only 16-bit bfloat exists
		{Code: TypeCode(7), Bits: 32, Lanes: 1},
	}

	for _, dt := range cases {
		_, err := FromDataType(dt)
		require.Error(t, err, "FromDataType(%+v)", dt)
		assert.True(t, errors.Is(err, ErrUnsupportedType), "FromDataType(%+v) = %v", dt, err)
	}
}

func TestFromDataTypeRejectsLanes(t *testing.T) {
	_, err := FromDataType(DataType{Code: KindFloat, Bits: 32, Lanes: 4})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
	assert.Contains(t, err.Error(), "lanes=4")
}

package tensor

import (
	"testing"
	"unsafe"
)

// RawTensor Tests

func TestRawTensorAsInt64(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Int64, CPU)
	data := raw.AsInt64()

	if len(data) != 6 {
		t.Errorf("AsInt64 length = %d, want 6", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if raw.AsInt64()[0] != 42 {
		t.Error("AsInt64 should return zero-copy slice")
	}
}

func TestRawTensorAsFloat16(t *testing.T) {
	raw, _ := NewRaw(Shape{4}, Float16, CPU)
	data := raw.AsFloat16()

	if len(data) != 4 {
		t.Errorf("AsFloat16 length = %d, want 4", len(data))
	}

	data[0] = 0x3C00 // 1.0 in IEEE half
	if raw.AsFloat16()[0].Float32() != 1.0 {
		t.Error("AsFloat16 should return zero-copy slice of half-precision values")
	}
}

func TestRawTensorAsBFloat16(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, BFloat16, CPU)
	data := raw.AsBFloat16()

	if len(data) != 4 {
		t.Errorf("AsBFloat16 length = %d, want 4", len(data))
	}

	data[0] = 0x3F80 // 1.0 in bfloat16
	if raw.AsBFloat16()[0] != 0x3F80 {
		t.Error("AsBFloat16 should return zero-copy slice")
	}
}

func TestRawTensorAsBool(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Bool, CPU)
	data := raw.AsBool()

	if len(data) != 4 {
		t.Errorf("AsBool length = %d, want 4", len(data))
	}

	data[0] = true
	if raw.AsBool()[0] != true {
		t.Error("AsBool should return zero-copy slice")
	}
}

func TestNewRawAllTypes(t *testing.T) {
	types := []struct {
		dtype       DataType
		elementSize int
	}{
		{Float16, 2},
		{BFloat16, 2},
		{Float32, 4},
		{Float64, 8},
		{Int8, 1},
		{Int16, 2},
		{Int32, 4},
		{Int64, 8},
		{Uint8, 1},
		{Uint16, 2},
		{Uint32, 4},
		{Uint64, 8},
		{Bool, 1},
	}

	shape := Shape{2, 3}
	for _, tt := range types {
		raw, err := NewRaw(shape, tt.dtype, CPU)
		if err != nil {
			t.Fatalf("NewRaw(%v, %v) failed: %v", shape, tt.dtype, err)
		}

		if raw.DType() != tt.dtype {
			t.Errorf("DType = %v, want %v", raw.DType(), tt.dtype)
		}

		expectedByteSize := 6 * tt.elementSize // 2*3 elements
		if raw.ByteSize() != expectedByteSize {
			t.Errorf("ByteSize = %d, want %d for type %v", raw.ByteSize(), expectedByteSize, tt.dtype)
		}
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	invalidShapes := []Shape{
		{0},
		{-1},
		{2, 0},
		{2, -3},
	}

	for _, shape := range invalidShapes {
		_, err := NewRaw(shape, Float32, CPU)
		if err == nil {
			t.Errorf("NewRaw(%v) should fail but didn't", shape)
		}
	}
}

func TestRawTensorScalar(t *testing.T) {
	raw, _ := NewRaw(Shape{}, Float32, CPU)

	if raw.NumElements() != 1 {
		t.Errorf("Scalar tensor NumElements = %d, want 1", raw.NumElements())
	}

	if raw.ByteSize() != 4 {
		t.Errorf("Scalar tensor ByteSize = %d, want 4", raw.ByteSize())
	}

	data := raw.AsFloat32()
	if len(data) != 1 {
		t.Errorf("Scalar tensor data length = %d, want 1", len(data))
	}
}

func TestRawTensorDataPointer(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Float32, CPU)

	ptr := raw.DataPointer()
	if ptr == nil {
		t.Fatal("DataPointer should not be nil for non-empty tensor")
	}
	if ptr != unsafe.Pointer(&raw.Data()[0]) {
		t.Error("DataPointer should point at the first byte of storage")
	}
}

// Reference counting

func TestRawTensorCloneIsShared(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Float32, CPU)
	data := raw.AsFloat32()
	data[0] = 1.0

	clone := raw.Clone()

	if clone.AsFloat32()[0] != 1.0 {
		t.Error("Clone should share data initially")
	}

	if raw.IsUnique() || clone.IsUnique() {
		t.Error("After Clone(), neither tensor should be unique")
	}
}

func TestRawTensorBufferRefKeepsMemoryAlive(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float32, CPU)
	raw.AsFloat32()[0] = 3.5

	ref := raw.Ref()
	if raw.IsUnique() {
		t.Error("After Ref(), tensor should not be unique")
	}

	raw.Release()

	// The ref must keep the buffer alive past the tensor's release.
	if raw.Data() == nil {
		t.Fatal("buffer should still be alive while a BufferRef holds it")
	}
	if raw.AsFloat32()[0] != 3.5 {
		t.Error("buffer contents should survive tensor release while ref'd")
	}

	ref.Unref()
	if raw.Data() != nil {
		t.Error("buffer should be freed after the last Unref")
	}
}

// Foreign memory

func TestNewRawFromPtrZeroCopy(t *testing.T) {
	backing := []float32{1, 2, 3, 4, 5, 6}
	ptr := unsafe.Pointer(&backing[0])

	raw, err := NewRawFromPtr(Shape{2, 3}, Float32, CPU, ptr, len(backing)*4, nil)
	if err != nil {
		t.Fatalf("NewRawFromPtr failed: %v", err)
	}

	if raw.DataPointer() != ptr {
		t.Error("foreign tensor should view the original memory, not a copy")
	}

	backing[0] = 42
	if raw.AsFloat32()[0] != 42 {
		t.Error("writes to foreign memory should be visible through the tensor")
	}
}

func TestNewRawFromPtrFreeRunsOnce(t *testing.T) {
	backing := make([]byte, 16)
	freed := 0

	raw, err := NewRawFromPtr(Shape{4}, Float32, CPU, unsafe.Pointer(&backing[0]), 16, func() { freed++ })
	if err != nil {
		t.Fatalf("NewRawFromPtr failed: %v", err)
	}

	clone := raw.Clone()
	raw.Release()
	if freed != 0 {
		t.Fatalf("free ran with a live reference remaining, count = %d", freed)
	}

	clone.Release()
	if freed != 1 {
		t.Errorf("free should run exactly once, ran %d times", freed)
	}
}

func TestNewRawFromPtrTooSmall(t *testing.T) {
	backing := make([]byte, 8)

	_, err := NewRawFromPtr(Shape{2, 3}, Float32, CPU, unsafe.Pointer(&backing[0]), 8, nil)
	if err == nil {
		t.Error("NewRawFromPtr should fail when byteLen does not cover the tensor")
	}
}

// As* methods panic on wrong type

func TestRawTensorAsWrongTypePanics(t *testing.T) {
	raw32, _ := NewRaw(Shape{2}, Float32, CPU)

	_ = raw32.AsFloat32()

	defer func() {
		if r := recover(); r == nil {
			t.Error("AsFloat64 on Float32 tensor should panic")
		}
	}()
	_ = raw32.AsFloat64()
}

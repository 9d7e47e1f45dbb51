package dlpack

import (
	"fmt"
	"strconv"

	"github.com/fathom-ml/fathom/internal/eager"
)

// ToDevice translates a native device name into the DLPack device pair.
// Only CPU and GPU devices can share memory through DLPack.
func ToDevice(deviceName string) (Device, error) {
	spec, err := eager.ParseDeviceName(deviceName)
	if err != nil {
		return Device{}, fmt.Errorf("%w: %v", ErrUnsupportedDevice, err)
	}

	dev := Device{}
	if spec.HasID {
		dev.ID = int32(spec.ID) //nolint:gosec // device indices are small
	}
	switch spec.Type {
	case "CPU":
		dev.Type = DeviceCPU
	case "GPU":
		dev.Type = DeviceGPU
	default:
		return Device{}, fmt.Errorf("%w: device type %q", ErrUnsupportedDevice, spec.Type)
	}
	return dev, nil
}

// DeviceNameFromDevice translates a DLPack device pair back to a native
// device name. The second return value is false when the device type has no
// native mapping.
//
// The CPU mapping always yields device 0; any CPU index carried in the pair
// is discarded. This mirrors the single-CPU-device policy of the original
// exchange implementation.
func DeviceNameFromDevice(dev Device) (string, bool) {
	switch dev.Type {
	case DeviceCPU:
		return "CPU:0", true
	case DeviceGPU:
		return "GPU:" + strconv.Itoa(int(dev.ID)), true
	default:
		return "", false
	}
}

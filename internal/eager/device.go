// Package eager provides the eager execution layer of the Fathom runtime:
// a Context that owns tensor handles, and the TensorHandle abstraction that
// couples a raw tensor with the device it lives on.
package eager

import (
	"fmt"
	"strconv"
	"strings"
)

// DeviceSpec is a parsed device name.
type DeviceSpec struct {
	Type  string // "CPU", "GPU", ...
	HasID bool
	ID    int
}

// ParseDeviceName parses a device name into a DeviceSpec.
//
// Accepted forms:
//
//	"CPU"
//	"GPU:1"
//	"/job:worker/replica:0/task:0/device:GPU:0"
//
// For fully qualified names only the trailing device segment is considered.
func ParseDeviceName(name string) (DeviceSpec, error) {
	if name == "" {
		return DeviceSpec{}, fmt.Errorf("empty device name")
	}

	// Reduce a fully qualified name to its device segment.
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimPrefix(name, "device:")
	if name == "" {
		return DeviceSpec{}, fmt.Errorf("device name has no device segment")
	}

	typ, idx, found := strings.Cut(name, ":")
	if typ == "" {
		return DeviceSpec{}, fmt.Errorf("device name %q has no type", name)
	}
	spec := DeviceSpec{Type: typ}
	if found {
		id, err := strconv.Atoi(idx)
		if err != nil || id < 0 {
			return DeviceSpec{}, fmt.Errorf("device name %q has invalid index %q", name, idx)
		}
		spec.HasID = true
		spec.ID = id
	}
	return spec, nil
}

// String reassembles the canonical "TYPE:index" form.
func (s DeviceSpec) String() string {
	if !s.HasID {
		return s.Type
	}
	return s.Type + ":" + strconv.Itoa(s.ID)
}

// Package main provides the Fathom runtime CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fathom-ml/fathom/dlpack"
	"github.com/fathom-ml/fathom/eager"
	"github.com/fathom-ml/fathom/tensor"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Fathom %s\n", version)
			return
		case "demo":
			if err := demo(); err != nil {
				fmt.Fprintln(os.Stderr, "demo failed:", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("Fathom - DLPack tensor interchange runtime")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Round-trip a tensor through a DLPack capsule")
}

// demo exports a small CPU tensor to a DLPack capsule, imports it into a
// fresh context, and shows that both handles view the same memory.
func demo() error {
	raw, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	if err != nil {
		return err
	}

	ctx := eager.NewContext()
	h, err := ctx.NewHandle(raw, "CPU:0")
	if err != nil {
		return err
	}
	defer h.Destroy()

	capsule, err := dlpack.Export(h)
	if err != nil {
		return err
	}

	imported, err := dlpack.Import(capsule, eager.NewContext())
	if err != nil {
		dlpack.CallDeleter(capsule)
		return err
	}
	defer imported.Destroy()

	src, _ := h.DevicePointer()
	dst, _ := imported.DevicePointer()
	t, _ := imported.Tensor()

	fmt.Printf("exported  shape=%v dtype=%s device=%s\n", raw.Shape(), raw.DType(), h.DeviceName())
	fmt.Printf("imported  shape=%v dtype=%s device=%s\n", t.Shape(), t.DType(), imported.DeviceName())
	fmt.Printf("zero-copy pointer match: %v\n", src == dst)
	return nil
}

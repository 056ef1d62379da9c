package blend

import "golang.org/x/sys/cpu"

// Dispatcher holds the single Kernel chosen for a renderer's lifetime.
// Feature probing happens once, at construction — never re-queried per
// frame or per draw call.
type Dispatcher struct {
	kernel Kernel
}

// NewDispatcher probes the host CPU's SIMD feature set once and selects the
// widest Kernel the platform is expected to auto-vectorize well. Go has no
// portable intrinsics surface, so "selection" here means picking the lane
// width the scalar Go loops in lane16.go are shaped for, trusting the
// compiler to use the reported instruction set; it is not a dispatch to
// hand-written assembly.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{kernel: selectKernel()}
}

// NewDispatcherWithKernel forces a specific Kernel, bypassing feature
// detection — used by tests that must pin a kernel regardless of the host.
func NewDispatcherWithKernel(k Kernel) *Dispatcher {
	return &Dispatcher{kernel: k}
}

// Kernel returns the selected Kernel.
func (d *Dispatcher) Kernel() Kernel {
	return d.kernel
}

func selectKernel() Kernel {
	if cpu.X86.HasAVX2 {
		return Lane16
	}
	if cpu.ARM64.HasASIMD {
		return Lane16
	}
	return Scalar
}

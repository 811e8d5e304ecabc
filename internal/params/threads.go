package params

import (
	"bytes"
	"runtime"

	"github.com/spf13/afero"
)

// CPUInfoPath is where Linux lists one "processor" entry per logical CPU.
const CPUInfoPath = "/proc/cpuinfo"

// ThreadCounter supplies the default thread count
type ThreadCounter interface {
	Threads() int
}

// FixedThreads always reports the same thread count
type FixedThreads int

// Threads implements ThreadCounter
func (f FixedThreads) Threads() int {
	return int(f)
}

// CPUInfoThreads counts the processor entries in the cpuinfo file and falls
// back to the runtime's CPU count when the file is absent or lists none.
type CPUInfoThreads struct {
	Fs   afero.Fs
	Path string
}

// NewCPUInfoThreads reads /proc/cpuinfo from the host filesystem
func NewCPUInfoThreads() CPUInfoThreads {
	return CPUInfoThreads{Fs: afero.NewOsFs(), Path: CPUInfoPath}
}

// Threads implements ThreadCounter
func (c CPUInfoThreads) Threads() int {
	if n := c.countProcessors(); n > 0 {
		return n
	}
	return max(1, runtime.NumCPU())
}

func (c CPUInfoThreads) countProcessors() int {
	if c.Fs == nil || c.Path == "" {
		return 0
	}
	data, err := afero.ReadFile(c.Fs, c.Path)
	if err != nil {
		return 0
	}

	n := 0
	for _, word := range bytes.Fields(data) {
		if string(word) == "processor" {
			n++
		}
	}
	return n
}

// Package hwlog is the structured, per-module logging façade used
// throughout nestorcore. Every hardware component logs through a Module
// value; modules default to "info and above" and can be individually
// raised to debug level from the CLI (see cmd/nestorcore), without
// touching the call sites.
package hwlog

import (
	"sync"

	logrus "gopkg.in/Sirupsen/logrus.v0"
)

// ModuleMask is a bitmask of Module values, one bit per module, used to
// select which modules emit debug-level output.
type ModuleMask uint64

// Module identifies the hardware subsystem a log entry originates from.
type Module uint

const ModuleMaskAll ModuleMask = ^ModuleMask(0)

// Standard modules. Additional modules can be registered with NewModule.
const (
	ModEmu Module = iota + 1
	ModCPU
	ModPPU
	ModMem
	ModHwIo
	ModDMA
	ModInput
	ModMapper
	ModInes

	endStandardModules
)

var (
	mu           sync.Mutex
	modCount     = endStandardModules
	modNames     = []string{"<error>", "emu", "cpu", "ppu", "mem", "hwio", "dma", "input", "mapper", "ines"}
	modDebugMask ModuleMask
	disabled     bool
)

// NewModule registers a new module name and returns its Module value. Used
// by packages outside hwlog's predeclared set (e.g. a debugger package).
func NewModule(name string) Module {
	mu.Lock()
	defer mu.Unlock()
	mod := modCount
	modCount++
	modNames = append(modNames, name)
	return mod
}

// ModuleByName looks up a module by the name it was registered/predeclared
// with. Used to decode the CLI's --log flag.
func ModuleByName(name string) (Module, bool) {
	mu.Lock()
	defer mu.Unlock()
	for idx, s := range modNames {
		if s == name {
			return Module(idx), true
		}
	}
	return 0, false
}

// ModuleNames returns the names of every registered module, in declaration
// order, for use in help text.
func ModuleNames() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(modNames)-1)
	copy(out, modNames[1:])
	return out
}

func (mod Module) String() string {
	mu.Lock()
	defer mu.Unlock()
	if int(mod) < len(modNames) {
		return modNames[mod]
	}
	return "<unknown>"
}

// Mask returns the single-bit ModuleMask for mod.
func (mod Module) Mask() ModuleMask {
	return 1 << ModuleMask(mod)
}

// EnableDebugModules raises the given modules to debug level.
func EnableDebugModules(mask ModuleMask) {
	mu.Lock()
	defer mu.Unlock()
	modDebugMask |= mask
	disabled = false
	// Per-module gating happens in newEntry; the logger itself must pass
	// debug-level entries through.
	logrus.SetLevel(logrus.DebugLevel)
}

// DisableDebugModules lowers the given modules back to their default level.
func DisableDebugModules(mask ModuleMask) {
	mu.Lock()
	defer mu.Unlock()
	modDebugMask &^= mask
}

// Disable silences all logging output, including warnings and errors.
// Intended for tests and benchmark runs.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	disabled = true
}

func (mod Module) debugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return !disabled && modDebugMask&mod.Mask() != 0
}

func isDisabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return disabled
}

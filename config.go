// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package intc

// AtomicEmulator executes one atomic memory instruction against the
// emulation frame, advancing PC past it. It reports false if the
// instruction is not one it can emulate, in which case the trap is
// forwarded to the exception handler instead.
type AtomicEmulator func(*EmulationFrame, Memory) bool

// Config carries the handler table and trap hooks for the controller.
// A configuration is initialised through config methods e.g:
//   c := intc.NewConfig()
//   c.Handler(intc.Uart0, uartHandler).SourceFallback(unexpected)
//   ctrl, err := intc.Open(c)
// Handler slots are fixed once the controller is opened; there is no
// runtime re-registration.
type Config struct {
	regs         Registers
	mem          Memory
	handlers     map[Source]Handler
	lineHandlers map[Line]Handler
	srcFallback  func(Source)
	lineFallback Handler
	excHandler   Handler
	atomics      AtomicEmulator
	vectored     bool
}

// The default config: vectored dispatch over lines 1..15, no handlers
// installed. Before the controller is opened this may be modified e.g
//   DefaultConfig.Handler(intc.Gpio, gpioHandler)
var DefaultConfig *Config

func init() {
	DefaultConfig = NewConfig()
}

// NewConfig creates an empty Config with vectored dispatch enabled.
func NewConfig() *Config {
	c := new(Config)
	c.Clear()
	return c
}

// Clear resets the configuration.
func (c *Config) Clear() *Config {
	c.regs = nil
	c.mem = nil
	c.handlers = make(map[Source]Handler)
	c.lineHandlers = make(map[Line]Handler)
	c.srcFallback = nil
	c.lineFallback = nil
	c.excHandler = nil
	c.atomics = nil
	c.vectored = true
	return c
}

// Handler installs the handler for a peripheral source. A source with no
// handler installed is routed to the source fallback during dispatch.
func (c *Config) Handler(s Source, h Handler) *Config {
	c.handlers[s] = h
	return c
}

// LineHandler installs a direct handler for a CPU line outside the
// vectored range (16..31 when vectoring is enabled).
func (c *Config) LineHandler(l Line, h Handler) *Config {
	c.lineHandlers[l] = h
	return c
}

// SourceFallback sets the handler invoked for a pending source that has
// no handler of its own.
func (c *Config) SourceFallback(f func(Source)) *Config {
	c.srcFallback = f
	return c
}

// LineFallback sets the handler invoked for an interrupt cause code with
// no line handler, including codes outside the supported line range.
func (c *Config) LineFallback(h Handler) *Config {
	c.lineFallback = h
	return c
}

// ExceptionHandler sets the handler for synchronous faults this core
// does not interpret. It receives the trap frame exactly as captured.
func (c *Config) ExceptionHandler(h Handler) *Config {
	c.excHandler = h
	return c
}

// AtomicEmulator overrides the built in atomic emulation routine.
func (c *Config) AtomicEmulator(f AtomicEmulator) *Config {
	c.atomics = f
	return c
}

// Registers selects the register backend. When unset, Open maps the
// hardware register window.
func (c *Config) Registers(r Registers) *Config {
	c.regs = r
	return c
}

// Memory provides the address space used for instruction fetch and
// atomic emulation. When unset, every exception is forwarded to the
// exception handler without inspection.
func (c *Config) Memory(m Memory) *Config {
	c.mem = m
	return c
}

// NoVectoring disables the priority bucket convention for lines 1..15,
// leaving every line available for direct handlers.
func (c *Config) NoVectoring() *Config {
	c.vectored = false
	return c
}

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

import "encoding/binary"

// Memory provides word access to the address space of the interrupted
// context. The trap path uses it to fetch the faulting instruction, and
// the atomic emulation routine uses it for the memory side of the
// emulated instruction.
type Memory interface {
	Load32(addr uint32) uint32
	Store32(addr uint32, v uint32)
}

// RAM is a byte array backed Memory covering [base, base+len).
type RAM struct {
	base uint32
	data []byte
}

// NewRAM creates a RAM of the given size starting at base.
func NewRAM(base uint32, size int) *RAM {
	return &RAM{base: base, data: make([]byte, size)}
}

func (r *RAM) Load32(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(r.data[addr-r.base:])
}

func (r *RAM) Store32(addr uint32, v uint32) {
	binary.LittleEndian.PutUint32(r.data[addr-r.base:], v)
}

// LoadProgram copies instruction words into RAM starting at addr.
func (r *RAM) LoadProgram(addr uint32, code []uint32) {
	for i, w := range code {
		r.Store32(addr+uint32(4*i), w)
	}
}

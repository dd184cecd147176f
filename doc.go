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

/*

Package intc manages the interrupt matrix and trap dispatch of an
ESP32-C3 class RISC-V core.

The chip routes its peripheral interrupt sources through a matrix onto
31 CPU interrupt lines, each with an enable bit, a level/edge type bit,
a priority (1..15) and a write-one-to-clear pending bit. This package
configures that matrix and demultiplexes each trap back to the
responsible peripheral handlers.

When vectored dispatch is enabled (the default), CPU lines 1 through 15
are reserved as one bucket per priority level:

  line 1  => priority 1
  line 2  => priority 2
  ...
  line 15 => priority 15

and Enable(source, priority) is the only call needed to activate a
source. Lines 16..31 remain available for direct handlers.

The package also owns the shared trap entry point. Exceptions raised by
atomic memory instructions, which this core cannot execute natively, are
emulated in software and the interrupted code resumed transparently; all
other exceptions are forwarded to a firmware supplied handler.

The register backend is pluggable: production code maps the hardware
register window, while tests and example programs drive the same
dispatch logic against an in-memory simulator (see Sim).

*/
package intc

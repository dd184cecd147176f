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

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Device paths for the exported interrupt matrix window.
const (
	drvMemSize = "/sys/class/uio/uio0/maps/map0/size"
	drvUIO0    = "/dev/uio0"
)

// window is the production register backend: the interrupt matrix block
// mapped through the UIO driver.
type window struct {
	regfile
	file *os.File
}

// openWindow maps the interrupt matrix register block.
func openWindow() (*window, error) {
	size, err := readDriverValue(drvMemSize)
	if err != nil {
		return nil, err
	}
	if size < windowSize {
		return nil, fmt.Errorf("%s: register window too small (%d bytes)", drvUIO0, size)
	}
	f, err := os.OpenFile(drvUIO0, os.O_RDWR|os.O_SYNC, 0660)
	if err != nil {
		return nil, err
	}
	mem, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %v", drvUIO0, err)
	}
	return &window{regfile: regfile{mem: mem}, file: f}, nil
}

// Close unmaps the register window and releases the device.
func (w *window) Close() error {
	unix.Munmap(w.mem)
	return w.file.Close()
}

// readDriverValue opens and reads a string from a device file and decodes
// the string as an integer. This is used to retrieve the window size
// from the kernel device driver.
func readDriverValue(s string) (int, error) {
	var val int
	f, err := os.Open(s)
	if err != nil {
		return -1, err
	}
	defer f.Close()
	n, err := fmt.Fscanf(f, "%v", &val)
	if err != nil {
		return -1, fmt.Errorf("%s: %v", s, err)
	}
	if n != 1 {
		return -1, fmt.Errorf("%s: no value found", s)
	}
	return val, nil
}

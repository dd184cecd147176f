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

// Source identifies a peripheral interrupt source. The namespace is
// fixed per chip; each source is routed to at most one CPU line at a
// time, while a line may aggregate many sources.
type Source int

// Peripheral interrupt sources of the target chip, in status bit order.
const (
	WifiMac Source = iota
	WifiMacNmi
	WifiPwr
	WifiBB
	BtMac
	BtBB
	BtBBNmi
	RWBt
	RWBle
	RWBtNmi
	RWBleNmi
	I2CMaster
	Slc0
	Slc1
	ApbCtrl
	Uhci0
	Gpio
	GpioNmi
	Spi1
	Spi2
	I2S
	Uart0
	Uart1
	Ledc
	Efuse
	Twai
	Usb
	RtcCore
	Rmt
	I2CExt0
	Timer1
	Timer2
	TG0T0Level
	TG0WdtLevel
	TG1T0Level
	TG1WdtLevel
	CacheIA
	SystimerTarget0
	SystimerTarget1
	SystimerTarget2
	SpiMemRejectCache
	ICachePreload
	ICacheSync
	ApbAdc
	DmaCh0
	DmaCh1
	DmaCh2
	Rsa
	Aes
	Sha
	FromCpu0
	FromCpu1
	FromCpu2
	FromCpu3
	AssistDebug
	DmaApbPeriPms
	CoreIramPms
	CoreDramPms
	CorePifPms
	CorePifPmsSize
	BakPmsViolate
	CacheCoreAcs

	nSources
)

// sourceValid reports whether a status bit position names a known
// peripheral source. Dispatch uses this to drop bits whose source
// deasserted between the status snapshot and the mapping read.
func sourceValid(n int) bool {
	return n >= 0 && n < int(nSources)
}

// Copyright 2022 p1nant0m <wgblike@gmail.com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package perf

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/process"
)

type ProcessInfo struct {

	// Basic information about the host
	Hostname string `json:"hostname"`
	Platform string `json:"platform"`

	// Instant information about this process
	PID        int32   `json:"pid"`
	CPUPercent float64 `json:"cpuPercent"`
	RSS        uint64  `json:"rss"`
	VMS        uint64  `json:"vms"`
	Goroutines int     `json:"goroutines"`
}

// GetProcessPerf samples the running process. Fields that cannot be read on
// the current platform are left zero.
func GetProcessPerf() *ProcessInfo {
	info := &ProcessInfo{
		PID:        int32(os.Getpid()),
		Goroutines: runtime.NumGoroutine(),
	}

	if hostInfo, err := host.Info(); err == nil {
		info.Hostname = hostInfo.Hostname
		info.Platform = hostInfo.OS + "-" + hostInfo.Platform + "-" + hostInfo.PlatformVersion
	}

	proc, err := process.NewProcess(info.PID)
	if err != nil {
		return info
	}
	if cpuPercent, err := proc.CPUPercent(); err == nil {
		info.CPUPercent = cpuPercent
	}
	if memInfo, err := proc.MemoryInfo(); err == nil {
		info.RSS = memInfo.RSS
		info.VMS = memInfo.VMS
	}

	return info
}

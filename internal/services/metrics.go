package services

import (
	"context"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

type HealthSample struct {
	Status            string    `json:"status"`
	Database          string    `json:"database"`
	CapturedAt        time.Time `json:"captured_at"`
	UptimeSeconds     int64     `json:"uptime_seconds"`
	ProcessRSSBytes   int64     `json:"process_rss_bytes"`
	SystemMemoryTotal int64     `json:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `json:"system_memory_used_bytes"`
	ProcessCpuLoad    float64   `json:"process_cpu_load"`
	SystemCpuLoad     float64   `json:"system_cpu_load"`
}

// CaptureHealth pings the database and samples process and host resources.
// Resource probes that fail are reported as zero.
func CaptureHealth(ctx context.Context, db *sqlx.DB, startedAt time.Time) HealthSample {
	now := time.Now().UTC()
	sample := HealthSample{
		Status:        "ok",
		Database:      "ok",
		CapturedAt:    now,
		UptimeSeconds: int64(now.Sub(startedAt).Seconds()),
	}
	if err := db.PingContext(ctx); err != nil {
		sample.Status = "degraded"
		sample.Database = "unreachable"
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if rss, _ := proc.MemoryInfo(); rss != nil {
			sample.ProcessRSSBytes = int64(rss.RSS)
		}
		if cpuPerc, err := proc.CPUPercent(); err == nil {
			sample.ProcessCpuLoad = cpuPerc / 100.0
		}
	}
	if memStat, err := mem.VirtualMemory(); err == nil {
		sample.SystemMemoryTotal = int64(memStat.Total)
		sample.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}
	if sysCPU, err := cpu.Percent(0, false); err == nil && len(sysCPU) > 0 {
		sample.SystemCpuLoad = sysCPU[0] / 100.0
	}
	return sample
}

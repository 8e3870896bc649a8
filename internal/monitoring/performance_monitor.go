// Package monitoring measures per-frame timings of the render loop.
package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// smoothing is the weight of the newest sample in the running averages.
const smoothing = 0.1

// PerformanceMonitor tracks frame and render stage timings.
type PerformanceMonitor struct {
	frameCount  atomic.Uint64
	frameTime   atomic.Uint64 // nanoseconds, last frame
	raycastTime atomic.Uint64 // nanoseconds, last cast
	spriteTime  atomic.Uint64
	composeTime atomic.Uint64

	mutex          sync.RWMutex
	avgFrameTime   float64 // nanoseconds
	avgRaycastTime float64 // nanoseconds
	startTime      time.Time
	lastReport     time.Time

	sampleInterval time.Duration
}

// NewPerformanceMonitor creates a monitor that reports every interval.
// A non-positive interval defaults to five seconds.
func NewPerformanceMonitor(interval time.Duration) *PerformanceMonitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	now := time.Now()
	return &PerformanceMonitor{
		startTime:      now,
		lastReport:     now,
		sampleInterval: interval,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ft.monitor.recordFrame(time.Since(ft.startTime))
}

func (pm *PerformanceMonitor) recordFrame(d time.Duration) {
	pm.frameTime.Store(uint64(d.Nanoseconds()))
	count := pm.frameCount.Add(1)

	pm.mutex.Lock()
	pm.avgFrameTime = runningAverage(pm.avgFrameTime, float64(d.Nanoseconds()), count)
	pm.mutex.Unlock()
}

// RaycastTimer helps measure raycasting performance
type RaycastTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartRaycast begins raycast timing
func (pm *PerformanceMonitor) StartRaycast() *RaycastTimer {
	return &RaycastTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndRaycast completes raycast timing
func (rt *RaycastTimer) EndRaycast() {
	rt.monitor.recordRaycast(time.Since(rt.startTime))
}

func (pm *PerformanceMonitor) recordRaycast(d time.Duration) {
	pm.raycastTime.Store(uint64(d.Nanoseconds()))

	pm.mutex.Lock()
	pm.avgRaycastTime = runningAverage(pm.avgRaycastTime, float64(d.Nanoseconds()), pm.frameCount.Load()+1)
	pm.mutex.Unlock()
}

// runningAverage is a plain mean for the first samples and an exponential
// average afterwards.
func runningAverage(avg, sample float64, count uint64) float64 {
	if count <= 1 {
		return sample
	}
	if float64(count) < 1/smoothing {
		return avg + (sample-avg)/float64(count)
	}
	return avg + (sample-avg)*smoothing
}

// ProfiledFunction wraps a function with performance timing
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	switch name {
	case "raycast":
		pm.recordRaycast(duration)
	case "sprites":
		pm.spriteTime.Store(uint64(duration.Nanoseconds()))
	case "compose":
		pm.composeTime.Store(uint64(duration.Nanoseconds()))
	}

	return duration
}

// Metrics is a snapshot of the monitor.
type Metrics struct {
	Frames          uint64
	FramesPerSecond float64
	AvgFrameTime    time.Duration
	AvgRaycastTime  time.Duration
	LastSpriteTime  time.Duration
	LastComposeTime time.Duration
	MemoryUsageMB   uint64
	Uptime          time.Duration
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() Metrics {
	pm.mutex.RLock()
	avgFrame := pm.avgFrameTime
	avgRaycast := pm.avgRaycastTime
	uptime := time.Since(pm.startTime)
	pm.mutex.RUnlock()

	fps := 0.0
	if avgFrame > 0 {
		fps = float64(time.Second) / avgFrame
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return Metrics{
		Frames:          pm.frameCount.Load(),
		FramesPerSecond: fps,
		AvgFrameTime:    time.Duration(avgFrame),
		AvgRaycastTime:  time.Duration(avgRaycast),
		LastSpriteTime:  time.Duration(pm.spriteTime.Load()),
		LastComposeTime: time.Duration(pm.composeTime.Load()),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
		Uptime:          uptime,
	}
}

// Fields renders the metrics as log fields.
func (m Metrics) Fields() []zap.Field {
	return []zap.Field{
		zap.Uint64("frames", m.Frames),
		zap.Float64("fps", m.FramesPerSecond),
		zap.Duration("avg_frame", m.AvgFrameTime),
		zap.Duration("avg_raycast", m.AvgRaycastTime),
		zap.Duration("sprites", m.LastSpriteTime),
		zap.Duration("compose", m.LastComposeTime),
		zap.Uint64("memory_mb", m.MemoryUsageMB),
		zap.Duration("uptime", m.Uptime),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
}

// CheckPerformanceAlerts checks a snapshot for performance issues
func CheckPerformanceAlerts(m Metrics) []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)

	if m.Frames > 0 && m.FramesPerSecond < 30 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "low_fps",
			Message:   "Frame rate is below 30 FPS",
			Value:     m.FramesPerSecond,
			Threshold: 30,
		})
	}

	if m.MemoryUsageMB > 500 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above 500MB",
			Value:     float64(m.MemoryUsageMB),
			Threshold: 500,
		})
	}

	return alerts
}

// ShouldReport reports whether a sample interval has passed since the last
// report, and starts a new interval if so.
func (pm *PerformanceMonitor) ShouldReport(now time.Time) bool {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if now.Sub(pm.lastReport) < pm.sampleInterval {
		return false
	}
	pm.lastReport = now
	return true
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.spriteTime.Store(0)
	pm.composeTime.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.startTime = time.Now()
	pm.lastReport = pm.startTime
	pm.mutex.Unlock()
}

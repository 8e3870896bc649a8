package monitoring

import (
	"sync"
	"testing"
	"time"
)

func TestNewPerformanceMonitor(t *testing.T) {
	pm := NewPerformanceMonitor(0)

	if pm == nil {
		t.Fatal("NewPerformanceMonitor returned nil")
	}
	if pm.sampleInterval != 5*time.Second {
		t.Errorf("Expected default sample interval of 5s, got %v", pm.sampleInterval)
	}
	if time.Since(pm.startTime) > time.Second {
		t.Error("Start time should be recent")
	}
}

func TestPerformanceMonitorFrameTiming(t *testing.T) {
	pm := NewPerformanceMonitor(time.Second)

	frameTimer := pm.StartFrame()
	time.Sleep(10 * time.Millisecond) // Simulate some work
	frameTimer.EndFrame()

	if pm.frameCount.Load() != 1 {
		t.Errorf("Expected frame count to be 1, got %d", pm.frameCount.Load())
	}

	minExpectedTime := uint64(10 * time.Millisecond)
	if frameTime := pm.frameTime.Load(); frameTime < minExpectedTime {
		t.Errorf("Expected frame time to be at least %d ns, got %d ns", minExpectedTime, frameTime)
	}

	m := pm.GetCurrentMetrics()
	if m.AvgFrameTime < 10*time.Millisecond {
		t.Errorf("Expected average frame time >= 10ms, got %v", m.AvgFrameTime)
	}
	if m.FramesPerSecond <= 0 || m.FramesPerSecond > 100 {
		t.Errorf("Unexpected FPS %v for a 10ms+ frame", m.FramesPerSecond)
	}
}

func TestRunningAverage(t *testing.T) {
	avg := 0.0
	for i, sample := range []float64{10, 20, 30} {
		avg = runningAverage(avg, sample, uint64(i+1))
	}
	if avg != 20 {
		t.Errorf("Expected plain mean 20 for the first samples, got %v", avg)
	}

	// Past the warm-up the newest sample weighs smoothing.
	got := runningAverage(100, 200, 1000)
	if want := 100 + 100*smoothing; got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestProfiledFunction(t *testing.T) {
	pm := NewPerformanceMonitor(time.Second)

	called := false
	d := pm.ProfiledFunction("sprites", func() {
		called = true
		time.Sleep(time.Millisecond)
	})
	if !called {
		t.Fatal("profiled function was not called")
	}
	if d < time.Millisecond {
		t.Errorf("Expected duration >= 1ms, got %v", d)
	}
	if got := pm.GetCurrentMetrics().LastSpriteTime; got != d {
		t.Errorf("Expected sprite time %v, got %v", d, got)
	}

	d = pm.ProfiledFunction("raycast", func() { time.Sleep(time.Millisecond) })
	if got := time.Duration(pm.raycastTime.Load()); got != d {
		t.Errorf("Expected raycast time %v, got %v", d, got)
	}
}

func TestCheckPerformanceAlerts(t *testing.T) {
	alerts := CheckPerformanceAlerts(Metrics{Frames: 10, FramesPerSecond: 12})
	if len(alerts) != 1 || alerts[0].Type != "low_fps" {
		t.Errorf("Expected one low_fps alert, got %+v", alerts)
	}

	if alerts := CheckPerformanceAlerts(Metrics{Frames: 10, FramesPerSecond: 60, MemoryUsageMB: 10}); len(alerts) != 0 {
		t.Errorf("Expected no alerts, got %+v", alerts)
	}

	// No frames yet means no FPS to judge.
	if alerts := CheckPerformanceAlerts(Metrics{}); len(alerts) != 0 {
		t.Errorf("Expected no alerts before the first frame, got %+v", alerts)
	}
}

func TestShouldReport(t *testing.T) {
	pm := NewPerformanceMonitor(time.Second)
	start := pm.lastReport

	if pm.ShouldReport(start.Add(500 * time.Millisecond)) {
		t.Error("Should not report before the interval")
	}
	if !pm.ShouldReport(start.Add(time.Second)) {
		t.Error("Should report once the interval has passed")
	}
	if pm.ShouldReport(start.Add(1500 * time.Millisecond)) {
		t.Error("Interval should restart after a report")
	}
}

func TestPerformanceMonitorConcurrency(t *testing.T) {
	pm := NewPerformanceMonitor(time.Second)
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				frameTimer := pm.StartFrame()
				rt := pm.StartRaycast()
				rt.EndRaycast()
				frameTimer.EndFrame()
			}
		}()
	}
	wg.Wait()

	if pm.frameCount.Load() != 100 {
		t.Errorf("Expected 100 frames, got %d", pm.frameCount.Load())
	}

	pm.Reset()
	if pm.GetCurrentMetrics().Frames != 0 {
		t.Error("Reset should clear the frame count")
	}
}

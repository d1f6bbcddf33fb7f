// Package debug collects what the F8 overlay shows: frame timing, memory,
// goroutines, scene counters and the bounds of the laid out elements. The
// engine draws it.
package debug

import (
	"fmt"
	"runtime"
	"sort"
	"time"
)

// Group is one titled block of overlay lines.
type Group struct {
	Header string
	Lines  []string
}

// Stats samples frame rate and runtime memory once per second.
type Stats struct {
	now func() time.Time

	windowStart time.Time
	frames      int
	fps         float64
	frameTime   time.Duration
	lastFrame   time.Time
	mem         runtime.MemStats
	goroutines  int
	sampled     bool

	counters map[string]string
}

func NewStats(now func() time.Time) *Stats {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Stats{now: now, windowStart: t, lastFrame: t, counters: make(map[string]string)}
}

// Frame records one rendered frame.
func (s *Stats) Frame() {
	t := s.now()
	s.frameTime = t.Sub(s.lastFrame)
	s.lastFrame = t
	s.frames++
	if elapsed := t.Sub(s.windowStart); elapsed >= time.Second {
		s.fps = float64(s.frames) / elapsed.Seconds()
		s.frames = 0
		s.windowStart = t
		runtime.ReadMemStats(&s.mem)
		s.goroutines = runtime.NumGoroutine()
		s.sampled = true
	}
}

func (s *Stats) FPS() float64 { return s.fps }

// Set records a named scene counter shown under "Scene".
func (s *Stats) Set(name string, value interface{}) {
	s.counters[name] = fmt.Sprint(value)
}

func (s *Stats) Groups() []Group {
	groups := []Group{{
		Header: "Timing:",
		Lines: []string{
			fmt.Sprintf("FPS: %.1f", s.fps),
			fmt.Sprintf("Frame Time: %.2f ms", float64(s.frameTime.Microseconds())/1000),
		},
	}}
	if s.sampled {
		groups = append(groups, Group{
			Header: "Memory Usage:",
			Lines: []string{
				fmt.Sprintf("Allocated: %.2f MB", float64(s.mem.Alloc)/1024/1024),
				fmt.Sprintf("Heap Alloc: %.2f MB", float64(s.mem.HeapAlloc)/1024/1024),
				fmt.Sprintf("Process Total: %.2f MB", float64(s.mem.Sys)/1024/1024),
				fmt.Sprintf("GC Cycles: %d", s.mem.NumGC),
			},
		})
	}
	groups = append(groups, Group{
		Header: "System:",
		Lines: []string{
			fmt.Sprintf("Cores: %d", runtime.NumCPU()),
			fmt.Sprintf("Goroutines: %d", s.goroutines),
			fmt.Sprintf("OS/Arch: %s/%s", runtime.GOOS, runtime.GOARCH),
		},
	})
	if len(s.counters) > 0 {
		names := make([]string, 0, len(s.counters))
		for k := range s.counters {
			names = append(names, k)
		}
		sort.Strings(names)
		g := Group{Header: "Scene:"}
		for _, k := range names {
			g.Lines = append(g.Lines, k+": "+s.counters[k])
		}
		groups = append(groups, g)
	}
	return groups
}

package readiness

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunCompletesWithFailures(t *testing.T) {
	ready := make(chan struct{})
	close(ready)

	var (
		mu   sync.Mutex
		seen []float64
	)
	tracker := NewTracker(func(p float64) {
		mu.Lock()
		seen = append(seen, p)
		mu.Unlock()
	})

	probes := []Probe{
		FontProbe(func() error { return nil }),
		ImagesProbe([]string{"a.png", "b.png"}, func(path string) error {
			if path == "b.png" {
				return errors.New("missing")
			}
			return nil
		}),
		LayoutProbe(ready),
		DelayProbe(10 * time.Millisecond),
	}
	report := Run(context.Background(), probes, tracker)

	require.Len(t, report.Results, 4)
	assert.Equal(t, []string{"images"}, report.Failed())
	assert.Equal(t, 100.0, tracker.Progress())
	assert.True(t, tracker.Done())
	assert.GreaterOrEqual(t, report.Elapsed, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i], seen[i-1])
	}
	assert.Equal(t, 100.0, seen[len(seen)-1])
}

func TestRunNeverExceedsTimeouts(t *testing.T) {
	never := make(chan struct{})
	probes := []Probe{
		{Name: "stuck", Timeout: 30 * time.Millisecond, Run: func(ctx context.Context, _ func(float64)) error {
			<-ctx.Done()
			return ctx.Err()
		}},
		LayoutProbe(never),
	}
	probes[1].Timeout = 40 * time.Millisecond

	start := time.Now()
	report := Run(context.Background(), probes, nil)
	assert.Less(t, time.Since(start), time.Second)
	for _, res := range report.Results {
		assert.True(t, res.TimedOut, res.Name)
	}
	assert.ElementsMatch(t, []string{"stuck", "layout"}, report.Failed())
}

func TestRunRecoversPanickingProbe(t *testing.T) {
	report := Run(context.Background(), []Probe{{Name: "boom", Run: func(context.Context, func(float64)) error {
		panic("bad font")
	}}}, nil)
	require.Len(t, report.Results, 1)
	assert.ErrorContains(t, report.Results[0].Err, "bad font")
}

func TestImagesProbeCapsAtFive(t *testing.T) {
	var loads int32
	probe := ImagesProbe([]string{"1", "2", "3", "4", "5", "6", "7", "8"}, func(string) error {
		atomic.AddInt32(&loads, 1)
		return nil
	})
	tracker := NewTracker(nil)
	Run(context.Background(), []Probe{probe}, tracker)
	assert.Equal(t, int32(MaxCriticalImages), atomic.LoadInt32(&loads))
	assert.Equal(t, 100.0, tracker.Progress())
}

func TestStartDeliversReport(t *testing.T) {
	ch := Start(context.Background(), []Probe{DelayProbe(time.Millisecond)}, nil)
	report, ok := <-ch
	require.True(t, ok)
	assert.Len(t, report.Results, 1)
	_, ok = <-ch
	assert.False(t, ok)
}

var messages = []string{"Initializing...", "Loading 3D Engine...", "Preparing Animations...", "Optimizing Performance...", "Almost Ready...", "Welcome!"}

func TestScreenSequence(t *testing.T) {
	tracker := NewTracker(nil)
	s := NewScreen(messages, tracker, 7, false)
	assert.Equal(t, "Initializing...", s.Message())

	for i := 0; i < 10; i++ {
		s.Step(MessageInterval)
	}
	assert.Equal(t, "Almost Ready...", s.Message())
	assert.False(t, s.Ready())

	Run(context.Background(), nil, tracker)
	for i := 0; i < 20 && !s.Ready(); i++ {
		s.Step(MessageInterval)
	}
	require.True(t, s.Ready())
	assert.Equal(t, "Welcome!", s.Message())
	assert.Equal(t, 100.0, s.Progress())
	assert.Equal(t, 1.0, s.Opacity())

	s.Step(FadeDuration / 2)
	assert.InDelta(t, 0.5, s.Opacity(), 1e-9)
	s.Step(FadeDuration)
	assert.True(t, s.Done())
	assert.Equal(t, 0.0, s.Opacity())
}

func TestScreenSkipAndDust(t *testing.T) {
	assert.True(t, NewScreen(messages, nil, 1, true).Done())

	s := NewScreen(messages, nil, 1, false)
	require.Len(t, s.Dust(), DustCount)
	for i := 0; i < 50; i++ {
		s.Step(0.1)
	}
	for _, d := range s.Dust() {
		assert.GreaterOrEqual(t, d.Opacity, 0.0)
		assert.LessOrEqual(t, d.Opacity, 1.0)
		assert.InDelta(t, 0.5, d.X, 0.55)
		assert.InDelta(t, 0.5, d.Y, 0.55)
	}
}

// Package readiness decides when startup is far enough along to drop the
// loading screen. Probes run concurrently, each bounded by its own timeout;
// a probe that fails or times out still counts as complete, so startup is
// never held up by a decorative resource.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ambient-portfolio/internal/utils"

	"golang.org/x/sync/errgroup"
)

const (
	FontTimeout   = 2 * time.Second
	ImagesTimeout = 3 * time.Second
	LayoutTimeout = 1 * time.Second
	MinimumDelay  = 500 * time.Millisecond
	// MaxCriticalImages caps how many images startup waits for.
	MaxCriticalImages = 5
	// imageShare is the part of the progress bar the image probe fills on
	// its own while it runs.
	imageShare = 40.0
)

// Probe is one startup task. Run must return promptly once ctx is done.
type Probe struct {
	Name    string
	Timeout time.Duration
	Run     func(ctx context.Context, report func(fraction float64)) error
}

type Result struct {
	Name     string
	Err      error
	TimedOut bool
	Elapsed  time.Duration
}

type Report struct {
	Results []Result
	Elapsed time.Duration
}

// Failed lists the probes that did not succeed.
func (r Report) Failed() []string {
	var out []string
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res.Name)
		}
	}
	return out
}

// Tracker holds the reported progress. It never moves backwards.
type Tracker struct {
	mu       sync.Mutex
	progress float64
	done     bool
	onChange func(float64)
}

func NewTracker(onChange func(float64)) *Tracker {
	return &Tracker{onChange: onChange}
}

// raise notifies under the lock so listeners see values in order; onChange
// must not call back into the tracker.
func (t *Tracker) raise(p float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p > 100 {
		p = 100
	}
	if p <= t.progress {
		return
	}
	t.progress = p
	if t.onChange != nil {
		t.onChange(p)
	}
}

func (t *Tracker) finish() {
	t.raise(100)
	t.mu.Lock()
	t.done = true
	t.mu.Unlock()
}

// Progress is in [0, 100].
func (t *Tracker) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

func (t *Tracker) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Run executes every probe concurrently and returns when all of them have
// completed, failed or timed out. Progress is completed/total*100.
func Run(ctx context.Context, probes []Probe, tracker *Tracker) Report {
	if tracker == nil {
		tracker = NewTracker(nil)
	}
	start := time.Now()
	results := make([]Result, len(probes))

	var (
		mu        sync.Mutex
		completed int
	)
	total := len(probes)

	var g errgroup.Group
	for i, p := range probes {
		i, p := i, p
		g.Go(func() error {
			res := runProbe(ctx, p, tracker)
			results[i] = res
			if res.Err != nil {
				utils.Warn("Startup task %s did not finish: %v", res.Name, res.Err)
			}

			mu.Lock()
			completed++
			progress := float64(completed) / float64(total) * 100
			mu.Unlock()
			tracker.raise(progress)
			return nil
		})
	}
	g.Wait()
	tracker.finish()

	report := Report{Results: results, Elapsed: time.Since(start)}
	utils.Debug("Startup ready in %s (%d/%d tasks ok)", report.Elapsed, total-len(report.Failed()), total)
	return report
}

func runProbe(ctx context.Context, p Probe, tracker *Tracker) Result {
	start := time.Now()
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	report := func(fraction float64) {
		if fraction < 0 {
			fraction = 0
		}
		if fraction > 1 {
			fraction = 1
		}
		tracker.raise(fraction * imageShare)
	}

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic: %v", r)
			}
		}()
		done <- p.Run(ctx, report)
	}()

	res := Result{Name: p.Name}
	select {
	case err := <-done:
		res.Err = err
	case <-ctx.Done():
		res.Err = ctx.Err()
	}
	res.TimedOut = errors.Is(res.Err, context.DeadlineExceeded)
	res.Elapsed = time.Since(start)
	return res
}

// FontProbe waits for the UI font to load.
func FontProbe(load func() error) Probe {
	return Probe{
		Name:    "font",
		Timeout: FontTimeout,
		Run: func(ctx context.Context, _ func(float64)) error {
			return load()
		},
	}
}

// ImagesProbe decodes up to MaxCriticalImages paths concurrently. Images that
// fail to load still count toward completion.
func ImagesProbe(paths []string, load func(path string) error) Probe {
	if len(paths) > MaxCriticalImages {
		paths = paths[:MaxCriticalImages]
	}
	return Probe{
		Name:    "images",
		Timeout: ImagesTimeout,
		Run: func(ctx context.Context, report func(float64)) error {
			if len(paths) == 0 {
				return nil
			}
			var (
				mu     sync.Mutex
				loaded int
				failed int
			)
			g, gctx := errgroup.WithContext(ctx)
			for _, path := range paths {
				path := path
				g.Go(func() error {
					err := load(path)
					if gctx.Err() != nil {
						return nil
					}
					mu.Lock()
					loaded++
					if err != nil {
						failed++
						utils.Debug("Critical image %s failed: %v", path, err)
					}
					n := loaded
					mu.Unlock()
					report(float64(n) / float64(len(paths)))
					return nil
				})
			}
			g.Wait()
			if failed > 0 {
				return fmt.Errorf("%d of %d images failed", failed, len(paths))
			}
			return nil
		},
	}
}

// LayoutProbe waits for the first laid-out frame.
func LayoutProbe(ready <-chan struct{}) Probe {
	return Probe{
		Name:    "layout",
		Timeout: LayoutTimeout,
		Run: func(ctx context.Context, _ func(float64)) error {
			select {
			case <-ready:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
}

// DelayProbe keeps the loading screen up for at least d.
func DelayProbe(d time.Duration) Probe {
	return Probe{
		Name: "minimum-delay",
		Run: func(ctx context.Context, _ func(float64)) error {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-timer.C:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
}

// Start runs probes in the background. The returned channel receives the
// report once and is then closed.
func Start(ctx context.Context, probes []Probe, tracker *Tracker) <-chan Report {
	out := make(chan Report, 1)
	go func() {
		defer close(out)
		out <- Run(ctx, probes, tracker)
	}()
	return out
}

package poller

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cuemby/clusterview/pkg/events"
	"github.com/cuemby/clusterview/pkg/log"
	"github.com/cuemby/clusterview/pkg/metrics"
	"github.com/rs/zerolog"
)

// DefaultIntervalMs is the poll interval used when none is configured
const DefaultIntervalMs = 5000

// Config configures a Controller
type Config struct {
	// IntervalMs is the time between re-fetches of a mounted view
	IntervalMs int
}

// Interval returns the configured interval, falling back to DefaultIntervalMs
func (c Config) Interval() time.Duration {
	if c.IntervalMs <= 0 {
		return DefaultIntervalMs * time.Millisecond
	}
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// FetchFunc re-fetches the data of a view
type FetchFunc func(ctx context.Context) error

// Controller runs one repeating timer per mounted view
type Controller struct {
	cfg    Config
	broker *events.Broker
	logger zerolog.Logger

	mu    sync.Mutex
	views map[string]*View
}

// Option configures a Controller
type Option func(*Controller)

// WithBroker publishes view.mounted and view.unmounted events
func WithBroker(b *events.Broker) Option {
	return func(c *Controller) { c.broker = b }
}

// NewController creates a controller with no mounted views
func NewController(cfg Config, opts ...Option) *Controller {
	c := &Controller{
		cfg:    cfg,
		logger: log.WithComponent("poller"),
		views:  make(map[string]*View),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// View is a mounted view. It fetches once on mount and then on every tick
// until it is unmounted or its context is done.
type View struct {
	name     string
	fetch    FetchFunc
	interval time.Duration
	logger   zerolog.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Mount starts polling fetch under name. Fetches run with ctx; the view stops
// by itself when ctx is done.
func (c *Controller) Mount(ctx context.Context, name string, fetch FetchFunc) (*View, error) {
	if fetch == nil {
		return nil, fmt.Errorf("view %s: fetch function is required", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.views[name]; exists {
		return nil, fmt.Errorf("view %s is already mounted", name)
	}

	v := &View{
		name:     name,
		fetch:    fetch,
		interval: c.cfg.Interval(),
		logger:   log.WithView(name),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	c.views[name] = v
	metrics.ActiveViews.Inc()

	go func() {
		v.run(ctx)
		c.forget(v)
		close(v.done)
	}()

	c.logger.Debug().
		Str("view", name).
		Dur("interval", v.interval).
		Msg("View mounted")
	c.publish(events.EventViewMounted, name)
	return v, nil
}

// Unmount stops the view mounted under name. It returns once the view's
// goroutine has exited; no fetch starts after Unmount returns.
func (c *Controller) Unmount(name string) bool {
	c.mu.Lock()
	v, ok := c.views[name]
	c.mu.Unlock()
	if !ok {
		return false
	}
	v.Stop()
	return true
}

// Stop unmounts every view
func (c *Controller) Stop() {
	c.mu.Lock()
	views := make([]*View, 0, len(c.views))
	for _, v := range c.views {
		views = append(views, v)
	}
	c.mu.Unlock()

	for _, v := range views {
		v.Stop()
	}
}

// Mounted returns the names of the mounted views, sorted
func (c *Controller) Mounted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.views))
	for name := range c.views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// forget removes v once its goroutine has exited
func (c *Controller) forget(v *View) {
	c.mu.Lock()
	if c.views[v.name] == v {
		delete(c.views, v.name)
		metrics.ActiveViews.Dec()
	}
	c.mu.Unlock()

	c.logger.Debug().Str("view", v.name).Msg("View unmounted")
	c.publish(events.EventViewUnmounted, v.name)
}

func (c *Controller) publish(t events.EventType, view string) {
	if c.broker == nil {
		return
	}
	c.broker.Publish(&events.Event{
		Type:     t,
		Metadata: map[string]string{"view": view},
	})
}

// Name returns the name the view was mounted under
func (v *View) Name() string {
	return v.name
}

// Stop cancels the view's timer and waits for its goroutine to exit. It is
// safe to call more than once.
func (v *View) Stop() {
	v.stopOnce.Do(func() { close(v.stopCh) })
	<-v.done
}

// Done is closed once the view has stopped
func (v *View) Done() <-chan struct{} {
	return v.done
}

func (v *View) run(ctx context.Context) {
	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	// Fetch immediately on mount
	v.tick(ctx)

	for {
		select {
		case <-v.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Stop wins over a tick that fired at the same time
			select {
			case <-v.stopCh:
				return
			default:
			}
			v.tick(ctx)
		}
	}
}

func (v *View) tick(ctx context.Context) {
	metrics.PollTicksTotal.WithLabelValues(v.name).Inc()
	if err := v.fetch(ctx); err != nil {
		v.logger.Debug().Err(err).Msg("Poll fetch failed")
	}
}

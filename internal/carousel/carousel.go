// Package carousel runs the home page hero slideshow: timed autoplay,
// manual paging and swipe gestures, with changes debounced while a slide
// transition is in flight.
package carousel

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/hammamikhairi/cookmate/internal/logger"
)

// MinSwipeDistance is the shortest horizontal drag treated as a swipe.
const MinSwipeDistance = 50

// Slide is one hero panel.
type Slide struct {
	Image   string
	Alt     string
	Heading string
	Tagline string
}

// Slides are the default hero panels.
var Slides = []Slide{
	{
		Image:   "https://images.unsplash.com/photo-1565557623262-b51c2513a641?w=1920&q=80",
		Alt:     "Butter Chicken Masala in bowl",
		Heading: "Cook Smarter with What You Have",
		Tagline: "Transform Your Pantry into Delicious Possibilities",
	},
	{
		Image:   "https://media.istockphoto.com/id/1736097860/photo/kulfi-ice-cream-in-two-clay-pots.jpg",
		Alt:     "Hyderabadi Biryani in copper pot",
		Heading: "Discover Authentic Indian Flavors",
		Tagline: "Authentic Flavors, Made Simple with Every Spice",
	},
	{
		Image:   "https://images.unsplash.com/photo-1631452180519-c014fe946bc7?w=1920&q=80",
		Alt:     "Crispy Masala Dosa with chutneys",
		Heading: "Your Kitchen, Your Masterpiece",
		Tagline: "From Everyday Ingredients to Extraordinary Meals",
	},
	{
		Image:   "https://images.unsplash.com/photo-1585937421612-70a008356fbe?w=1920&q=80",
		Alt:     "Chole Bhature platter",
		Heading: "Master the Art of Indian Cooking",
		Tagline: "Master Traditional Indian Recipes, One Ingredient at a Time",
	},
	{
		Image:   "https://images.unsplash.com/photo-1601050690597-df0568f70950?w=1920&q=80",
		Alt:     "Samosa Chaat with toppings",
		Heading: "Celebrate Indian Cuisine Daily",
		Tagline: "Celebrate Indian Cuisine with What's Already in Your Kitchen",
	},
}

// Option configures the carousel.
type Option func(*Carousel)

// WithInterval sets the autoplay period.
func WithInterval(d time.Duration) Option {
	return func(c *Carousel) {
		c.interval = d
	}
}

// WithTransition sets how long a slide change takes to commit. Zero
// commits immediately.
func WithTransition(d time.Duration) Option {
	return func(c *Carousel) {
		c.transition = d
	}
}

// WithSlides replaces the default slides.
func WithSlides(slides []Slide) Option {
	return func(c *Carousel) {
		c.slides = slides
	}
}

// WithChangeHook registers a callback run after each committed change.
func WithChangeHook(fn func(index int, s Slide)) Option {
	return func(c *Carousel) {
		c.onChange = fn
	}
}

// Carousel tracks the visible slide.
type Carousel struct {
	slides     []Slide
	log        *logger.Logger
	interval   time.Duration
	transition time.Duration
	onChange   func(int, Slide)

	mu        sync.Mutex
	index     int
	animating bool
	pending   *time.Timer
	running   bool
	cancel    context.CancelFunc
	reset     chan struct{}
}

// New creates a carousel on the first slide.
func New(log *logger.Logger, opts ...Option) *Carousel {
	c := &Carousel{
		slides:     Slides,
		log:        log,
		interval:   5 * time.Second,
		transition: 500 * time.Millisecond,
		reset:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins autoplay. Non-blocking.
func (c *Carousel) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		c.log.Warn("carousel already running")
		return
	}
	if len(c.slides) < 2 || c.interval <= 0 {
		c.log.Debug("carousel: autoplay disabled (%d slides, interval=%s)", len(c.slides), c.interval)
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.running = true

	go c.loop(childCtx)

	c.log.Debug("carousel started (interval=%s, transition=%s)", c.interval, c.transition)
}

// Stop ends autoplay and drops any transition in flight.
func (c *Carousel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
		c.animating = false
	}
	if !c.running {
		return
	}
	c.cancel()
	c.running = false
	c.log.Debug("carousel stopped")
}

// Current returns the visible slide.
func (c *Carousel) Current() (int, Slide) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.slides) == 0 {
		return 0, Slide{}
	}
	return c.index, c.slides[c.index]
}

// Len returns the number of slides.
func (c *Carousel) Len() int { return len(c.slides) }

// Animating reports whether a transition is in flight.
func (c *Carousel) Animating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.animating
}

// Next advances one slide, wrapping around. It reports whether the request
// was accepted.
func (c *Carousel) Next() bool {
	c.mu.Lock()
	if c.animating || len(c.slides) == 0 {
		c.mu.Unlock()
		return false
	}
	target := (c.index + 1) % len(c.slides)
	return c.beginLocked(target)
}

// Prev goes back one slide, wrapping around.
func (c *Carousel) Prev() bool {
	c.mu.Lock()
	n := len(c.slides)
	if n == 0 {
		c.mu.Unlock()
		return false
	}
	target := (c.index - 1 + n) % n
	c.mu.Unlock()
	return c.GoTo(target)
}

// GoTo jumps to slide i. Requests for the current slide, an out of range
// slide, or any slide while animating are dropped.
func (c *Carousel) GoTo(i int) bool {
	c.mu.Lock()
	if i < 0 || i >= len(c.slides) || i == c.index || c.animating {
		c.mu.Unlock()
		return false
	}
	return c.beginLocked(i)
}

// Swipe interprets a horizontal drag from start to end. A leftward drag
// of at least MinSwipeDistance advances, a rightward one goes back.
func (c *Carousel) Swipe(start, end float64) bool {
	distance := start - end
	if start == 0 || end == 0 || math.Abs(distance) < MinSwipeDistance {
		return false
	}
	if distance > 0 {
		return c.Next()
	}
	return c.Prev()
}

// beginLocked starts a transition to target. c.mu must be held; it is
// released before returning.
func (c *Carousel) beginLocked(target int) bool {
	if c.transition <= 0 {
		c.index = target
		slide := c.slides[target]
		c.mu.Unlock()
		c.committed(target, slide)
		return true
	}

	c.animating = true
	var t *time.Timer
	t = time.AfterFunc(c.transition, func() {
		c.mu.Lock()
		if c.pending != t {
			c.mu.Unlock()
			return
		}
		c.pending = nil
		c.index = target
		c.animating = false
		slide := c.slides[target]
		c.mu.Unlock()
		c.committed(target, slide)
	})
	c.pending = t
	c.mu.Unlock()
	return true
}

func (c *Carousel) committed(index int, s Slide) {
	c.log.Debug("carousel: slide %d %q", index, s.Heading)
	select {
	case c.reset <- struct{}{}:
	default:
	}
	if c.onChange != nil {
		c.onChange(index, s)
	}
}

// loop advances on every tick. Any committed change restarts the period.
func (c *Carousel) loop(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.reset:
			ticker.Reset(c.interval)
		case <-ticker.C:
			c.Next()
		}
	}
}

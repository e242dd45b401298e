package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// ErrNoEnd is returned when no end position is given and there are no
// captions to derive one from.
var ErrNoEnd = errors.New("no end position")

// ClockOptions configures simulated playback.
type ClockOptions struct {
	From time.Duration
	// To is the end position; zero plays until the last caption ends
	To       time.Duration
	Speed    float64
	TickRate float64 // position updates per second
}

// Clock advances a playback position in real time and feeds it to a session.
type Clock struct {
	session *Session
	opts    ClockOptions
	limiter *rate.Limiter
	now     func() time.Time
}

func NewClock(session *Session, opts ClockOptions) (*Clock, error) {
	if opts.Speed <= 0 {
		return nil, fmt.Errorf("speed must be positive, got %g", opts.Speed)
	}
	if opts.TickRate <= 0 {
		return nil, fmt.Errorf("tick rate must be positive, got %g", opts.TickRate)
	}
	if opts.From < 0 {
		return nil, fmt.Errorf("start position must not be negative, got %s", opts.From)
	}

	return &Clock{
		session: session,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.TickRate), 1),
		now:     time.Now,
	}, nil
}

// End resolves the position playback stops at.
func (c *Clock) End() (time.Duration, error) {
	if c.opts.To > 0 {
		if c.opts.To < c.opts.From {
			return 0, fmt.Errorf("end position %s is before start position %s", c.opts.To, c.opts.From)
		}
		return c.opts.To, nil
	}

	_, end, ok := c.session.Timeline().Span()
	if !ok {
		return 0, ErrNoEnd
	}
	end += c.session.opts.Delay
	if end < c.opts.From {
		return c.opts.From, nil
	}
	return end, nil
}

// Run plays from From to the end position, updating the session on every
// tick. It returns the context error when cancelled.
func (c *Clock) Run(ctx context.Context) error {
	to, err := c.End()
	if err != nil {
		return err
	}

	started := c.now()
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("wait for tick: %w", err)
		}

		elapsed := float64(c.now().Sub(started)) * c.opts.Speed
		pos := c.opts.From + time.Duration(elapsed).Round(time.Millisecond)
		if pos >= to {
			c.session.Update(to)
			return nil
		}
		c.session.Update(pos)
	}
}

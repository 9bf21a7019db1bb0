package portfolio

import (
	"context"
	"time"

	"github.com/nikeshgamal24/portfolio/pkg/constants"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoRefresher = (*client)(nil)

// AutoRefresher provides controls for periodic background refreshes.
type AutoRefresher interface {
	// AutoRefreshOn starts refreshing every configured interval.
	AutoRefreshOn() error

	// AutoRefreshOff stops background refreshes and waits for the
	// refresh goroutine to exit. It is safe to call from a hook.
	AutoRefreshOff() error
}

// AutoRefreshOn implements AutoRefresher.
func (c *client) AutoRefreshOn() error {
	if c.options.autoRefreshInterval <= 0 {
		return &errors.ValidationError{
			Field:   "autoRefreshInterval",
			Value:   c.options.autoRefreshInterval,
			Message: "refresh interval must be positive",
		}
	}

	// Stop any running loop first.
	if err := c.AutoRefreshOff(); err != nil {
		return err
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.stopCh = make(chan struct{})
	c.refreshDone = make(chan struct{})
	c.refreshTicker = time.NewTicker(c.options.autoRefreshInterval)

	ctx, cancel := context.WithCancel(context.Background())
	c.refreshCancel = cancel

	go func(ctx context.Context, ticker *time.Ticker, stop <-chan struct{}, done chan<- struct{}) {
		defer close(done)
		for {
			select {
			case <-ticker.C:
				refreshCtx, refreshCancel := context.WithTimeout(ctx, constants.DefaultHTTPTimeout)
				c.ticking.Store(true)
				_, err := c.Refresh(refreshCtx)
				c.ticking.Store(false)
				refreshCancel()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return
					}
					logging.Error().Err(err).Msg("Auto-refresh failed")
				}
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}(ctx, c.refreshTicker, c.stopCh, c.refreshDone)

	return nil
}

// AutoRefreshOff implements AutoRefresher.
//
// It waits for the refresh goroutine to exit unless a tick is in progress,
// which is the case when a hook fired by that tick calls AutoRefreshOff or
// Close. The goroutine then exits as soon as the tick returns.
func (c *client) AutoRefreshOff() error {
	c.refreshMu.Lock()
	if c.refreshTicker != nil {
		c.refreshTicker.Stop()
		c.refreshTicker = nil
	}
	if c.refreshCancel != nil {
		c.refreshCancel()
		c.refreshCancel = nil
	}
	select {
	case <-c.stopCh:
		// Already closed
	default:
		close(c.stopCh)
	}
	done := c.refreshDone
	c.refreshDone = nil
	c.refreshMu.Unlock()

	if done != nil && !c.ticking.Load() {
		<-done
	}
	return nil
}

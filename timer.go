package dmd

import (
	"context"
	"errors"
)

// Tick marks a refresh as pending.
//
// It does no I/O and never blocks, so it can be called from any timer
// callback. Ticks arriving while a refresh is already pending are merged.
func (d *Dev) Tick() {
	select {
	case d.pending <- struct{}{}:
	default:
	}
}

// Poll runs one refresh if a tick is pending and reports whether it did.
//
// Call it often from the main loop, or use Run.
func (d *Dev) Poll() bool {
	select {
	case <-d.pending:
		d.Refresh()
		return true
	default:
		return false
	}
}

// Run refreshes the panels on every pending tick until ctx is done or the
// device is halted.
func (d *Dev) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.haltc:
			return ErrHalted
		case <-d.pending:
			d.Refresh()
		}
	}
}

// Start arms the refresh timer, which calls Tick every Opts.Period.
//
// The refreshes themselves happen in Poll or Run.
func (d *Dev) Start() error {
	if d.halted.Load() {
		return ErrHalted
	}
	d.timerMu.Lock()
	defer d.timerMu.Unlock()
	if d.ticker != nil {
		return errors.New("dmd: timer already started")
	}
	// Drop a tick left over from a previous run.
	select {
	case <-d.pending:
	default:
	}
	t := d.clock.NewTicker(d.period)
	stop := make(chan struct{})
	done := make(chan struct{})
	d.ticker, d.stop, d.done = t, stop, done
	go func() {
		defer close(done)
		for {
			select {
			case <-t.Chan():
				d.Tick()
			case <-stop:
				return
			}
		}
	}()
	d.logger.Debug("dmd: refresh timer started", "period", d.period)
	return nil
}

// Stop disarms the refresh timer. A pending tick is kept.
func (d *Dev) Stop() {
	d.timerMu.Lock()
	defer d.timerMu.Unlock()
	if d.ticker == nil {
		return
	}
	d.ticker.Stop()
	close(d.stop)
	<-d.done
	d.ticker, d.stop, d.done = nil, nil, nil
	d.logger.Debug("dmd: refresh timer stopped")
}

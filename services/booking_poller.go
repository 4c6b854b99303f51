package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/rental-backoffice/cleaning"
	"github.com/yeremiapane/rental-backoffice/utils"
)

// BookingPoller refetches bookings and cleaners on a fixed interval and keeps
// the derived cleaning board of the last successful fetch. It is started and
// stopped explicitly; Pause and Resume stand in for page visibility.
type BookingPoller struct {
	source       BookingSource
	Interval     time.Duration
	FetchTimeout time.Duration
	now          func() time.Time

	mu         sync.RWMutex
	board      cleaning.Board
	loaded     bool
	appliedSeq uint64
	listeners  []func(cleaning.Board)

	// notifyMu orders listener calls; notifiedSeq is the newest board delivered.
	notifyMu    sync.Mutex
	notifiedSeq uint64

	seq      atomic.Uint64
	paused   atomic.Bool
	resumeCh chan struct{}

	lifecycle sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewBookingPoller(source BookingSource, interval time.Duration) *BookingPoller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &BookingPoller{
		source:       source,
		Interval:     interval,
		FetchTimeout: interval,
		now:          time.Now,
		resumeCh:     make(chan struct{}, 1),
	}
}

// OnUpdate registers a callback run after every applied refresh.
func (p *BookingPoller) OnUpdate(fn func(cleaning.Board)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Start launches the polling goroutine. Calling Start on a running poller is a no-op.
func (p *BookingPoller) Start(ctx context.Context) {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.Interval)
		defer ticker.Stop()

		p.tick(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !p.paused.Load() {
					p.tick(ctx)
				}
			case <-p.resumeCh:
				p.tick(ctx)
			}
		}
	}()
	utils.InfoLogger.Printf("Booking poller started (interval %s)", p.Interval)
}

// Stop cancels any in-flight fetch and waits for the goroutine to exit.
func (p *BookingPoller) Stop() {
	p.lifecycle.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.lifecycle.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	utils.InfoLogger.Println("Booking poller stopped")
}

// Pause suspends scheduled fetches. Explicit Refresh calls still run.
func (p *BookingPoller) Pause() {
	if !p.paused.Swap(true) {
		utils.InfoLogger.Debug("Booking poller paused")
	}
}

// Resume restarts scheduled fetches and triggers one right away.
func (p *BookingPoller) Resume() {
	if !p.paused.CompareAndSwap(true, false) {
		return
	}
	utils.InfoLogger.Debug("Booking poller resumed")
	select {
	case p.resumeCh <- struct{}{}:
	default:
	}
}

func (p *BookingPoller) Paused() bool {
	return p.paused.Load()
}

func (p *BookingPoller) tick(ctx context.Context) {
	if err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
		utils.ErrorLogger.WithError(err).Error("Booking poll failed, keeping previous board")
	}
}

// Refresh fetches once and rebuilds the board. On error the previous board
// stays in place. A fetch that finishes after a newer one was applied is
// dropped, and listeners never see an older board after a newer one.
func (p *BookingPoller) Refresh(ctx context.Context) error {
	seq := p.seq.Add(1)

	fetchCtx := ctx
	if p.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, p.FetchTimeout)
		defer cancel()
	}

	bookings, err := p.source.ListBookings(fetchCtx)
	if err != nil {
		return err
	}
	cleaners, err := p.source.ListCleaners(fetchCtx)
	if err != nil {
		return err
	}

	board := cleaning.BuildBoard(bookings, cleaning.FilterCleaners(cleaners), p.now())

	p.mu.Lock()
	if seq <= p.appliedSeq {
		p.mu.Unlock()
		utils.InfoLogger.WithFields(logrus.Fields{"seq": seq, "applied": p.appliedSeq}).Debug("Dropping stale booking fetch")
		return nil
	}
	p.appliedSeq = seq
	p.board = board
	p.loaded = true
	p.mu.Unlock()

	p.notify(seq, board)
	return nil
}

// notify hands board to the listeners unless a newer board already went out.
// Listeners must not call Refresh.
func (p *BookingPoller) notify(seq uint64, board cleaning.Board) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()
	if seq <= p.notifiedSeq {
		return
	}
	p.notifiedSeq = seq

	p.mu.RLock()
	listeners := make([]func(cleaning.Board), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.RUnlock()

	for _, fn := range listeners {
		fn(board)
	}
}

// Snapshot returns the last applied board. ok is false until the first
// successful fetch.
func (p *BookingPoller) Snapshot() (board cleaning.Board, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.board, p.loaded
}

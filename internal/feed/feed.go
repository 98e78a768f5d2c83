package feed

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"chanterm/internal/chat"
)

// Feed replays a script of canned channel traffic into a Conversation so the
// channel keeps moving without any transport behind it.
type Feed struct {
	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
	gen     int // guards against a stale replay clearing a restarted feed

	conv     *chat.Conversation
	script   []Entry
	minDelay time.Duration
	maxDelay time.Duration
	rng      *rand.Rand
}

// New creates a feed that appends script entries to conv. The pause before
// each entry is drawn from [minDelay, maxDelay] unless the entry pins its own.
func New(conv *chat.Conversation, script []Entry, minDelay, maxDelay time.Duration) *Feed {
	if minDelay <= 0 {
		minDelay = time.Second
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}

	return &Feed{
		conv:     conv,
		script:   script,
		minDelay: minDelay,
		maxDelay: maxDelay,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start launches the replay goroutine. Starting a running feed is a no-op.
func (f *Feed) Start(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.running || len(f.script) == 0 {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.running = true
	f.gen++

	go f.run(ctx, f.gen)
}

// Stop halts the replay goroutine and waits for no one.
func (f *Feed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.running = false
}

// Running reports whether the replay goroutine is active.
func (f *Feed) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

// run plays the script in order, looping when it runs out.
func (f *Feed) run(ctx context.Context, gen int) {
	log.Info().Int("entries", len(f.script)).Msg("peer feed started")

	defer func() {
		f.mu.Lock()
		if f.gen == gen {
			f.running = false
			f.cancel = nil
		}
		f.mu.Unlock()
		log.Info().Msg("peer feed stopped")
	}()

	for i := 0; ; i = (i + 1) % len(f.script) {
		entry := f.script[i]

		timer := time.NewTimer(f.delayFor(entry))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		f.conv.Append(chat.NewMessageWithImage(entry.Author, entry.Content, entry.Image, time.Now()))
		log.Debug().Str("author", entry.Author).Msg("peer message appended")
	}
}

// delayFor returns the pause before an entry plays.
func (f *Feed) delayFor(entry Entry) time.Duration {
	if entry.After > 0 {
		return entry.After
	}

	span := f.maxDelay - f.minDelay
	if span <= 0 {
		return f.minDelay
	}
	return f.minDelay + time.Duration(f.rng.Int63n(int64(span)+1))
}

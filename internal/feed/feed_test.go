package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chanterm/internal/chat"
)

func waitForLen(t *testing.T, conv *chat.Conversation, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for conv.Len() < n {
		if time.Now().After(deadline) {
			t.Fatalf("conversation never reached %d messages (got %d)", n, conv.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFeed_AppendsScriptToConversation(t *testing.T) {
	req := require.New(t)

	conv := chat.NewConversation("#composers", 3, nil)
	script := []Entry{
		{Author: "taylor", Content: "one", After: time.Millisecond},
		{Author: "taylor", Content: "two", After: time.Millisecond},
		{Author: "sara", Content: "pic", Image: "pic.png", After: time.Millisecond},
	}

	f := New(conv, script, time.Millisecond, 2*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.Start(ctx)
	defer f.Stop()

	waitForLen(t, conv, 3)

	msgs := conv.Messages()
	req.Equal("one", msgs[0].Content)
	req.Equal("taylor", msgs[0].Author)
	req.Equal("two", msgs[1].Content)
	req.True(msgs[2].HasImage())
}

func TestFeed_LoopsWhenScriptRunsOut(t *testing.T) {
	conv := chat.NewConversation("#composers", 2, nil)
	script := []Entry{
		{Author: "taylor", Content: "again", After: time.Millisecond},
	}

	f := New(conv, script, time.Millisecond, 2*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.Start(ctx)
	defer f.Stop()

	waitForLen(t, conv, 4)
}

func TestFeed_StopHaltsReplay(t *testing.T) {
	req := require.New(t)

	conv := chat.NewConversation("#composers", 2, nil)
	script := []Entry{
		{Author: "taylor", Content: "tick"},
		{Author: "sara", Content: "tock"},
	}
	f := New(conv, script, time.Millisecond, 2*time.Millisecond)

	f.Start(context.Background())
	req.True(f.Running())

	waitForLen(t, conv, 1)
	f.Stop()
	req.False(f.Running())

	// Let anything already in flight land, then confirm the flow stopped.
	time.Sleep(50 * time.Millisecond)
	n := conv.Len()
	time.Sleep(50 * time.Millisecond)
	req.Equal(n, conv.Len())
}

func TestFeed_ParentContextCancelStops(t *testing.T) {
	req := require.New(t)

	conv := chat.NewConversation("#composers", 2, nil)
	script := []Entry{{Author: "taylor", Content: "tick"}}
	f := New(conv, script, time.Millisecond, 2*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	f.Start(ctx)
	waitForLen(t, conv, 1)

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for f.Running() {
		if time.Now().After(deadline) {
			t.Fatal("feed still running after context cancel")
		}
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(50 * time.Millisecond)
	n := conv.Len()
	time.Sleep(50 * time.Millisecond)
	req.Equal(n, conv.Len())
}

func TestFeed_StartIsIdempotentAndSkipsEmptyScript(t *testing.T) {
	req := require.New(t)

	conv := chat.NewConversation("#composers", 2, nil)

	empty := New(conv, nil, time.Millisecond, time.Millisecond)
	empty.Start(context.Background())
	req.False(empty.Running())

	f := New(conv, []Entry{{Author: "taylor", Content: "hi", After: time.Millisecond}}, time.Millisecond, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.Start(ctx)
	f.Start(ctx) // second call must not spawn another replay
	req.True(f.Running())
	f.Stop()
}

func TestFeed_DelayBounds(t *testing.T) {
	req := require.New(t)

	conv := chat.NewConversation("#composers", 2, nil)
	f := New(conv, DefaultScript(), 10*time.Millisecond, 20*time.Millisecond)

	for i := 0; i < 100; i++ {
		d := f.delayFor(Entry{})
		req.GreaterOrEqual(d, 10*time.Millisecond)
		req.LessOrEqual(d, 20*time.Millisecond)
	}

	req.Equal(time.Hour, f.delayFor(Entry{After: time.Hour}))

	// Constructor clamps senseless bounds.
	clamped := New(conv, nil, 5*time.Millisecond, time.Millisecond)
	req.Equal(5*time.Millisecond, clamped.delayFor(Entry{}))
}

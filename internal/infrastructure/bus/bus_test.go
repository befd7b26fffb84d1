package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestBus_PublishInSubscriptionOrder(t *testing.T) {
	b := New(zerolog.Nop())

	var order []string
	b.Subscribe("evt", func(_ context.Context, _ any) error {
		order = append(order, "first")
		return nil
	})
	b.Subscribe("evt", func(_ context.Context, _ any) error {
		order = append(order, "second")
		return nil
	})
	b.Subscribe("evt", func(_ context.Context, _ any) error {
		order = append(order, "third")
		return nil
	})

	if err := b.Publish(context.Background(), "evt", nil); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestBus_SamePayloadToEachHandler(t *testing.T) {
	b := New(zerolog.Nop())
	payload := &struct{ n int }{n: 7}

	var got []any
	for i := 0; i < 2; i++ {
		b.Subscribe("evt", func(_ context.Context, p any) error {
			got = append(got, p)
			return nil
		})
	}

	if err := b.Publish(context.Background(), "evt", payload); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 2 || got[0] != payload || got[1] != payload {
		t.Fatalf("expected the same payload object for each handler, got %v", got)
	}
}

func TestBus_HandlerErrorsJoinedAndAllRun(t *testing.T) {
	b := New(zerolog.Nop())
	boom := errors.New("boom")

	ran := 0
	b.Subscribe("evt", func(_ context.Context, _ any) error {
		ran++
		return boom
	})
	b.Subscribe("evt", func(_ context.Context, _ any) error {
		ran++
		return nil
	})

	err := b.Publish(context.Background(), "evt", nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error to propagate, got %v", err)
	}
	if ran != 2 {
		t.Fatalf("expected every handler to run, got %d", ran)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	b := New(zerolog.Nop())

	calls := 0
	sub := b.Subscribe("evt", func(_ context.Context, _ any) error {
		calls++
		return nil
	})

	if err := b.Publish(context.Background(), "evt", nil); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	b.Unsubscribe(sub)
	if err := b.Publish(context.Background(), "evt", nil); err != nil {
		t.Fatalf("Publish after unsubscribe: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	b := New(zerolog.Nop())
	if err := b.Publish(context.Background(), "nobody-home", "payload"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

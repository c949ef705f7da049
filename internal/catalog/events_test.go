package catalog

import "testing"

func TestBrokerDeliversToSubscribers(t *testing.T) {
	b := NewBroker()

	ch1, cancel1 := b.Subscribe()
	ch2, cancel2 := b.Subscribe()
	defer cancel1()
	defer cancel2()

	want := Event{Kind: EventBookChanged, BookID: "DP1"}
	b.Publish(want)

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case got := <-ch:
			if got != want {
				t.Errorf("subscriber %d got %+v, want %+v", i, got, want)
			}
		default:
			t.Errorf("subscriber %d received nothing", i)
		}
	}
}

func TestBrokerCancelStopsDelivery(t *testing.T) {
	b := NewBroker()

	ch, cancel := b.Subscribe()
	cancel()

	// Channel is closed after cancel.
	if _, ok := <-ch; ok {
		t.Error("expected closed channel after cancel")
	}

	// Publishing after cancel must not panic.
	b.Publish(Event{Kind: EventLoanChanged, LoanID: 3})
}

func TestBrokerCancelIsIdempotent(t *testing.T) {
	b := NewBroker()
	_, cancel := b.Subscribe()
	cancel()
	cancel()
}

func TestBrokerNeverBlocks(t *testing.T) {
	b := NewBroker()
	_, cancel := b.Subscribe()
	defer cancel()

	// Overflow the subscriber buffer; publishes must all return.
	for i := 0; i < 100; i++ {
		b.Publish(Event{Kind: EventBookChanged})
	}
}

package broadcast

import "testing"

func TestSubscribe_unsubscribePrunesOrder(t *testing.T) {
	b := New()

	keep := b.Subscribe(func(Update) {})
	for i := 0; i < 100; i++ {
		unsubscribe := b.Subscribe(func(Update) {})
		unsubscribe()
		unsubscribe()
	}

	if len(b.order) != 1 || len(b.handlers) != 1 {
		t.Errorf("churned subscriptions should leave no trace: order=%d handlers=%d", len(b.order), len(b.handlers))
	}

	keep()
	if len(b.order) != 0 {
		t.Errorf("expected an empty order list but got %d entries", len(b.order))
	}
}

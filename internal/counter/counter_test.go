package counter

import (
	"sync"
	"testing"
)

func TestCounter(t *testing.T) {
	t.Run("InitialCountIsZero", func(t *testing.T) {
		counter := NewCounter()
		if got := counter.Count(); got != 0 {
			t.Errorf("Expected initial count to be 0, got %d", got)
		}
	})

	t.Run("SingleIncrement", func(t *testing.T) {
		counter := NewCounter()
		counter.Increment()
		if got := counter.Count(); got != 1 {
			t.Errorf("Expected count to be 1 after one increment, got %d", got)
		}
	})

	t.Run("AddBytes", func(t *testing.T) {
		counter := NewCounter()
		counter.Add(3 << 30)
		counter.Add(512)
		if got := counter.Count(); got != 3<<30+512 {
			t.Errorf("Expected count to be %d, got %d", int64(3<<30+512), got)
		}
	})

	t.Run("ConcurrentAdds", func(t *testing.T) {
		counter := NewCounter()
		const goroutines = 10
		const addsPerGoroutine = 10

		wg := sync.WaitGroup{}
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < addsPerGoroutine; j++ {
					counter.Increment()
				}
			}()
		}
		wg.Wait()

		expected := int64(goroutines * addsPerGoroutine)
		if got := counter.Count(); got != expected {
			t.Errorf("Expected count to be %d after concurrent adds, got %d", expected, got)
		}
	})
}

package ids

import (
	"strings"
	"sync"
	"testing"
)

func TestAccountNumberFormat(t *testing.T) {
	gen := NewGenerator("tst")

	got := gen.AccountNumber()
	if got != "TST-00000001" {
		t.Errorf("first AccountNumber() = %q, want TST-00000001", got)
	}
	got = gen.AccountNumber()
	if got != "TST-00000002" {
		t.Errorf("second AccountNumber() = %q, want TST-00000002", got)
	}
}

func TestAccountNumbersUniqueUnderConcurrency(t *testing.T) {
	gen := NewGenerator("TST")

	const goroutines = 20
	const perGoroutine = 100

	numbers := make(chan string, goroutines*perGoroutine)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				numbers <- gen.AccountNumber()
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool, goroutines*perGoroutine)
	for n := range numbers {
		if seen[n] {
			t.Fatalf("duplicate account number %q", n)
		}
		seen[n] = true
	}
	if len(seen) != goroutines*perGoroutine {
		t.Errorf("generated %d unique numbers, want %d", len(seen), goroutines*perGoroutine)
	}
}

func TestTransactionIDPrefixAndOrdering(t *testing.T) {
	gen := NewGenerator("TST")

	prev := gen.TransactionID()
	if !strings.HasPrefix(prev, "TXN-") {
		t.Fatalf("TransactionID() = %q, want TXN- prefix", prev)
	}
	for i := 0; i < 100; i++ {
		next := gen.TransactionID()
		if next <= prev {
			t.Fatalf("ids not strictly increasing: %q then %q", prev, next)
		}
		prev = next
	}
}

func TestTransactionIDsUniqueUnderConcurrency(t *testing.T) {
	gen := NewGenerator("TST")

	const goroutines = 20
	const perGoroutine = 200

	ids := make(chan string, goroutines*perGoroutine)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ids <- gen.TransactionID()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, goroutines*perGoroutine)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate transaction id %q", id)
		}
		seen[id] = true
	}
}

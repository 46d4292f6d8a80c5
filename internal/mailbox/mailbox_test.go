package mailbox

import (
	"runtime"
	"sync"
	"testing"
)

func TestMailboxTryRecvEmpty(t *testing.T) {
	mb := New[int](4)

	_, ok := mb.TryRecv()
	if ok {
		t.Fatalf("TryRecv() ok = true, want false")
	}
}

func TestMailboxCapRoundsUp(t *testing.T) {
	if got := New[int](5).Cap(); got != 8 {
		t.Fatalf("Cap() = %d, want 8", got)
	}
	if got := New[int](0).Cap(); got != DefaultSlots {
		t.Fatalf("Cap() = %d, want %d", got, DefaultSlots)
	}
}

func TestMailboxTrySendFull(t *testing.T) {
	const slots = 8
	mb := New[int](slots)

	for i := 0; i < slots; i++ {
		if ok := mb.TrySend(i); !ok {
			t.Fatalf("TrySend() ok = false at slot %d, want true", i)
		}
	}
	if ok := mb.TrySend(99); ok {
		t.Fatalf("TrySend() ok = true when full, want false")
	}
	if mb.Len() != slots {
		t.Fatalf("Len() = %d, want %d", mb.Len(), slots)
	}

	for i := 0; i < slots; i++ {
		v, ok := mb.TryRecv()
		if !ok {
			t.Fatalf("TryRecv() ok = false at slot %d, want true", i)
		}
		if v != i {
			t.Fatalf("TryRecv() = %d, want %d", v, i)
		}
	}
}

func TestMailboxWrapsAround(t *testing.T) {
	mb := New[int](2)
	for i := 0; i < 10; i++ {
		mb.Send(i)
		if v := mb.Recv(); v != i {
			t.Fatalf("Recv() = %d, want %d", v, i)
		}
	}
}

func TestMailboxDrain(t *testing.T) {
	mb := New[string](4)
	mb.Send("down")
	mb.Send("move")
	mb.Send("up")

	var got []string
	if n := mb.Drain(func(s string) { got = append(got, s) }); n != 3 {
		t.Fatalf("Drain() = %d, want 3", n)
	}
	if len(got) != 3 || got[0] != "down" || got[2] != "up" {
		t.Fatalf("Drain() order = %v", got)
	}
	if mb.Len() != 0 {
		t.Fatalf("Len() after Drain = %d, want 0", mb.Len())
	}
}

func TestMailboxConcurrentProducers(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(1)
	defer runtime.GOMAXPROCS(oldProcs)

	const (
		producers = 4
		perProd   = 10_000
		total     = producers * perProd
	)

	mb := New[uint32](8)

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(producers)
	for producerID := 0; producerID < producers; producerID++ {
		go func(producerID int) {
			defer wg.Done()
			<-start
			for i := 0; i < perProd; i++ {
				mb.Send(uint32(producerID*perProd + i))
			}
		}(producerID)
	}
	close(start)

	seen := make([]bool, total)
	for i := 0; i < total; i++ {
		id := mb.Recv()
		if int(id) >= total {
			t.Fatalf("Recv() id = %d, want < %d", id, total)
		}
		if seen[id] {
			t.Fatalf("Recv() duplicate id %d", id)
		}
		seen[id] = true
	}

	wg.Wait()
}

package registry

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStartsAtZeroPerKey(t *testing.T) {
	c := New()
	assert.Equal(t, int64(0), c.Next("a/TestX"))
	assert.Equal(t, int64(1), c.Next("a/TestX"))
	assert.Equal(t, int64(0), c.Next("a/TestY"))
	assert.Equal(t, int64(2), c.Peek("a/TestX"))
	assert.Equal(t, int64(0), c.Peek("unknown"))
	assert.Equal(t, 2, c.Len())
}

func TestPeekDoesNotAdvance(t *testing.T) {
	c := New()
	c.Peek("k")
	c.Peek("k")
	assert.Equal(t, int64(0), c.Next("k"))
	assert.Equal(t, 1, c.Len())
}

func TestNextConcurrentNoDuplicates(t *testing.T) {
	const workers, perWorker = 16, 200
	c := New()

	var (
		mu   sync.Mutex
		seen []int64
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int64, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, c.Next("shared"))
			}
			mu.Lock()
			seen = append(seen, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker)
	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	for i, v := range seen {
		if v != int64(i) {
			t.Fatalf("sequence gap or duplicate at %d: got %d", i, v)
		}
	}
	assert.Equal(t, int64(workers*perWorker), c.Peek("shared"))
}

package sim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchange_PutThenGet_ReturnsWithoutSuspending(t *testing.T) {
	// GIVEN items put before any getter exists
	s := NewScheduler(0)
	defer s.Close()
	ex := NewExchange[int](s, "orders")
	ex.Put(10)
	ex.Put(20)
	assert.Equal(t, 2, ex.Len())

	// WHEN a process gets twice at time 0
	var got []int
	var steps int64
	s.Spawn("consumer", func(p *Process) {
		got = append(got, ex.Get(p), ex.Get(p))
	})
	require.NoError(t, s.Run(0))
	steps = s.Steps()

	// THEN both items arrive in put order within the start step alone
	assert.Equal(t, []int{10, 20}, got)
	assert.Equal(t, int64(1), steps, "buffered gets must not suspend")
	assert.Equal(t, 0, ex.Len())
	assert.Equal(t, int64(2), ex.Gets())
}

func TestExchange_GetBeforePut_ResumesAtPutTime(t *testing.T) {
	// GIVEN a consumer waiting from time 0 and a producer that puts at time 4
	s := NewScheduler(0)
	defer s.Close()
	ex := NewExchange[string](s, "inventory")
	var gotAt int64 = -1
	var got string
	s.Spawn("consumer", func(p *Process) {
		got = ex.Get(p)
		gotAt = p.Now()
	})
	s.Spawn("producer", func(p *Process) {
		p.Delay(4)
		ex.Put("crate")
		assert.Equal(t, 0, ex.Len(), "a put to a waiting getter must not also buffer")
	})

	require.NoError(t, s.Run(0))
	assert.Equal(t, 1, ex.Waiting())

	require.NoError(t, s.Run(10))

	// THEN the consumer resumed at the put time with no extra delay
	assert.Equal(t, "crate", got)
	assert.Equal(t, int64(4), gotAt)
	assert.Equal(t, 0, ex.Waiting())
}

func TestExchange_WaitingGetters_ServedInWaitOrder(t *testing.T) {
	// GIVEN three consumers that park in spawn order
	s := NewScheduler(0)
	defer s.Close()
	ex := NewExchange[int](s, "q")
	got := make(map[string]int)
	for i := 0; i < 3; i++ {
		s.Spawn(fmt.Sprintf("c%d", i), func(p *Process) {
			got[p.Name()] = ex.Get(p)
		})
	}
	require.NoError(t, s.Run(0))
	require.Equal(t, 3, ex.Waiting())

	// WHEN three items are put at once
	s.Spawn("producer", func(p *Process) {
		p.Delay(1)
		ex.Put(100)
		ex.Put(200)
		ex.Put(300)
	})
	require.NoError(t, s.Run(1))

	// THEN the longest-waiting consumer got the first item
	assert.Equal(t, map[string]int{"c0": 100, "c1": 200, "c2": 300}, got)
}

func TestExchange_RandomTraffic_PreservesFIFOAndExclusivity(t *testing.T) {
	// GIVEN several producers and consumers with random pacing
	s := NewScheduler(0)
	defer s.Close()
	ex := NewExchange[int](s, "shared")
	rng := NewSharedRNG(NewSimulationKey(11))

	var put []int
	results := make(map[int]int) // Get call index → item
	calls := 0
	next := 0
	violations := 0
	checkExclusive := func() {
		if ex.Len() > 0 && ex.Waiting() > 0 {
			violations++
		}
	}
	for i := 0; i < 3; i++ {
		s.Spawn(fmt.Sprintf("producer %d", i), func(p *Process) {
			for {
				p.Delay(rng.IntBetween(1, 3))
				next++
				put = append(put, next)
				ex.Put(next)
				checkExclusive()
			}
		})
	}
	for i := 0; i < 4; i++ {
		s.Spawn(fmt.Sprintf("consumer %d", i), func(p *Process) {
			for {
				call := calls
				calls++
				results[call] = ex.Get(p)
				checkExclusive()
				p.Delay(rng.IntBetween(0, 6))
			}
		})
	}

	// WHEN run for a while
	require.NoError(t, s.Run(300))

	// THEN completed calls form a prefix of all Get calls, parked ones trail
	var got []int
	for i := 0; i < calls; i++ {
		v, ok := results[i]
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.NotEmpty(t, got)
	assert.Len(t, results, len(got))
	assert.Equal(t, calls-len(got), ex.Waiting())

	// AND successive Get calls returned exactly the put sequence
	assert.Equal(t, put[:len(got)], got)
	assert.Equal(t, len(put)-len(got), ex.Len())
	assert.Equal(t, int64(len(put)), ex.Puts())
	assert.Equal(t, int64(len(got)), ex.Gets())
	assert.Zero(t, violations)
}

func TestExchange_Items_ReturnsCopyOfBuffer(t *testing.T) {
	s := NewScheduler(0)
	ex := NewExchange[int](s, "q")
	ex.Put(1)
	ex.Put(2)

	items := ex.Items()
	items[0] = 99

	assert.Equal(t, []int{1, 2}, ex.Items())
	assert.Equal(t, "q", ex.Name())
}

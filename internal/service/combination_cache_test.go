package service

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-draft/internal/draft"
)

func TestCombinationCacheComputesOnce(t *testing.T) {
	c := newCombinationCache(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	compute := func() ([]draft.Pairing, error) {
		calls.Add(1)
		<-release
		return []draft.Pairing{{CurrentCombination: 1, TotalCombinations: 1}}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _, err := c.Get("k", compute)
			assert.NoError(t, err)
			assert.Len(t, got, 1)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	_, hit, err := c.Get("k", compute)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestCombinationCacheExpires(t *testing.T) {
	now := time.Now()
	c := newCombinationCache(time.Minute)
	c.now = func() time.Time { return now }

	calls := 0
	compute := func() ([]draft.Pairing, error) {
		calls++
		return nil, nil
	}

	_, hit, err := c.Get("k", compute)
	require.NoError(t, err)
	assert.False(t, hit)
	_, hit, _ = c.Get("k", compute)
	assert.True(t, hit)

	now = now.Add(2 * time.Minute)
	_, hit, _ = c.Get("k", compute)
	assert.False(t, hit)
	assert.Equal(t, 2, calls)
}

func TestCombinationCacheDoesNotStoreErrors(t *testing.T) {
	c := newCombinationCache(time.Minute)
	boom := errors.New("boom")
	_, _, err := c.Get("k", func() ([]draft.Pairing, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestFingerprint(t *testing.T) {
	a := []draft.Player{
		{ID: 2, Score: 500, MainLane: draft.LaneTop, SubLane: draft.LaneMid},
		{ID: 1, Score: 400, MainLane: draft.LaneADC, SubLane: draft.LaneSupport},
	}
	b := []draft.Player{a[1], a[0]}
	assert.Equal(t, fingerprint(a), fingerprint(b), "order does not matter")

	b[0].Score = 401
	assert.NotEqual(t, fingerprint(a), fingerprint(b), "scores are part of the key")

	c := []draft.Player{a[1], a[0]}
	c[0].Name = "renamed"
	assert.NotEqual(t, fingerprint(a), fingerprint(c), "names are part of the key")

	d := []draft.Player{a[1], a[0]}
	d[1].GameID = "newlol"
	assert.NotEqual(t, fingerprint(a), fingerprint(d), "game ids are part of the key")
}

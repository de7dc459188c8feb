package listcache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBumpAndCurrent(t *testing.T) {
	v := New()
	require.EqualValues(t, 0, v.Current("inventory"))

	require.EqualValues(t, 1, v.Bump("inventory"))
	require.EqualValues(t, 2, v.Bump("inventory"))
	require.EqualValues(t, 2, v.Current("inventory"))

	// collections version independently
	require.EqualValues(t, 0, v.Current("users"))
	require.EqualValues(t, 1, v.Bump("users"))
	require.EqualValues(t, 2, v.Current("inventory"))
}

func TestConcurrentBumps(t *testing.T) {
	v := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Bump("deals")
		}()
	}
	wg.Wait()
	require.EqualValues(t, 50, v.Current("deals"))
}

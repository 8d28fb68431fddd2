package shell_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paystream/transaction-engine/shell"
)

func Test_CounterCollector_SeparatesMetricsByLabels(t *testing.T) {
	// arrange
	collector := shell.NewCounterCollector()

	// act
	collector.IncrementCounter("commands_routed_total", map[string]string{"outcome": "accepted"})
	collector.IncrementCounter("commands_routed_total", map[string]string{"outcome": "accepted"})
	collector.IncrementCounter("commands_routed_total", map[string]string{"outcome": "rejected"})
	collector.IncrementCounter("accounts_created_total", nil)

	// assert
	assert.Equal(t, uint64(2), collector.Count("commands_routed_total", map[string]string{"outcome": "accepted"}))
	assert.Equal(t, uint64(1), collector.Count("commands_routed_total", map[string]string{"outcome": "rejected"}))
	assert.Equal(t, uint64(1), collector.Count("accounts_created_total", nil))
	assert.Equal(t, uint64(0), collector.Count("commands_routed_total", nil))
}

func Test_CounterCollector_IsSafeForConcurrentUse(t *testing.T) {
	// arrange
	collector := shell.NewCounterCollector()

	// act
	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				collector.IncrementCounter("commands_routed_total", map[string]string{"outcome": "accepted"})
			}
		}()
	}
	wg.Wait()

	// assert
	assert.Equal(t, uint64(8000), collector.Count("commands_routed_total", map[string]string{"outcome": "accepted"}))
}

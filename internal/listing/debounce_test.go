package listing

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testInterval = 50 * time.Millisecond

// ──────────────────────────────────────────────────────────────────────────────
// Tests Debouncer — flanco de salida
// ──────────────────────────────────────────────────────────────────────────────

// Una ráfaga de triggers dentro del intervalo produce una única ejecución,
// la del último fn.
func TestDebouncer_RafagaProduceUnaSolaEjecucion(t *testing.T) {
	d := NewDebouncer(testInterval)
	var count atomic.Int32
	var last atomic.Value

	for _, v := range []string{"a", "ab", "abc"} {
		v := v
		d.Trigger(func() {
			count.Add(1)
			last.Store(v)
		})
		time.Sleep(testInterval / 5)
	}

	time.Sleep(3 * testInterval)
	assert.Equal(t, int32(1), count.Load(), "una ráfaga debe coalescer en una ejecución")
	assert.Equal(t, "abc", last.Load(), "solo el último fn pendiente debe ejecutarse")
}

// Triggers separados por más del intervalo se ejecutan todos.
func TestDebouncer_TriggersEspaciadosSeEjecutanTodos(t *testing.T) {
	d := NewDebouncer(testInterval)
	var count atomic.Int32

	for i := 0; i < 3; i++ {
		d.Trigger(func() { count.Add(1) })
		time.Sleep(3 * testInterval)
	}

	assert.Equal(t, int32(3), count.Load())
}

func TestDebouncer_FlushEjecutaElPendienteInmediatamente(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var count atomic.Int32

	d.Trigger(func() { count.Add(1) })
	d.Flush()

	assert.Equal(t, int32(1), count.Load(), "Flush no debe esperar al intervalo")

	d.Flush()
	assert.Equal(t, int32(1), count.Load(), "Flush sin pendiente no ejecuta nada")
}

func TestDebouncer_StopDescartaElPendiente(t *testing.T) {
	d := NewDebouncer(testInterval)
	var count atomic.Int32

	d.Trigger(func() { count.Add(1) })
	d.Stop()

	time.Sleep(3 * testInterval)
	assert.Equal(t, int32(0), count.Load(), "Stop debe cancelar sin ejecutar")
}

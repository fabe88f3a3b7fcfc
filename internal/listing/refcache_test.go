package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/scheduler-admin/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Ref — caché de datos de referencia "stale but present"
// ──────────────────────────────────────────────────────────────────────────────

func TestRef_RefreshFallidoConservaDatosPrevios(t *testing.T) {
	calls := 0
	ref := NewRef("almacenes", testLogger(), func(ctx context.Context, token string) ([]string, error) {
		calls++
		if calls == 1 {
			return []string{"Central", "Norte"}, nil
		}
		return nil, errors.New("upstream caído")
	})

	items, err := ref.Get(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, []string{"Central", "Norte"}, items)

	// Segundo Get: el fetch falla pero la vista no debe quedarse vacía.
	items, err = ref.Get(context.Background(), "tok")
	require.NoError(t, err, "con datos previos el fallo de refresh no es error")
	assert.Equal(t, []string{"Central", "Norte"}, items, "deben servirse los datos previos")
}

func TestRef_SinCargaPreviaPropagaElError(t *testing.T) {
	ref := NewRef("roles", testLogger(), func(ctx context.Context, token string) ([]string, error) {
		return nil, errors.New("upstream caído")
	})

	_, err := ref.Get(context.Background(), "tok")
	assert.Error(t, err, "sin último resultado bueno el error debe propagarse")
}

func TestRef_CachedDevuelveSinTocarLaRed(t *testing.T) {
	calls := 0
	ref := NewRef("tipos", testLogger(), func(ctx context.Context, token string) ([]int, error) {
		calls++
		return []int{1, 2}, nil
	})

	assert.Nil(t, ref.Cached(), "antes de cargar no hay nada")

	_, err := ref.Get(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, ref.Cached())
	assert.Equal(t, 1, calls, "Cached no debe disparar fetch")
}

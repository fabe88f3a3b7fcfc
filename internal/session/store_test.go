package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
	"github.com/jhoicas/scheduler-admin/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func testSession(username string) entity.Session {
	return entity.Session{
		Principal: entity.Principal{ID: "u-" + username, Username: username},
		Token:     "tok-" + username,
	}
}

// enricherStub implementa Enricher para los tests.
type enricherStub struct {
	picture []byte
	err     error
	calls   int
}

func (e *enricherStub) ProfilePicture(ctx context.Context, token, userID string) ([]byte, error) {
	e.calls++
	return e.picture, e.err
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Store — ciclo login/logout y persistencia
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_LoginYGet(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "sessions.json"), nil, testLogger())

	require.NoError(t, s.Login("sid-1", testSession("alice")))

	got, ok := s.Get("sid-1")
	require.True(t, ok)
	assert.Equal(t, "alice", got.Principal.Username)

	_, ok = s.Get("sid-desconocido")
	assert.False(t, ok)
}

func TestStore_LoginRechazaSesionSinToken(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "sessions.json"), nil, testLogger())

	err := s.Login("sid-1", entity.Session{Principal: entity.Principal{Username: "alice"}})
	assert.Error(t, err, "una sesión sin token nunca debe almacenarse")

	_, ok := s.Get("sid-1")
	assert.False(t, ok)
}

func TestStore_LogoutEliminaLaSesion(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "sessions.json"), nil, testLogger())
	require.NoError(t, s.Login("sid-1", testSession("alice")))

	s.Logout("sid-1")

	_, ok := s.Get("sid-1")
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Rehydrate
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_RehydrateRestauraSesionesPersistidas(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sessions.json")

	// Primera vida del proceso: login + volcado a disco.
	first := NewStore(file, nil, testLogger())
	require.NoError(t, first.Login("sid-1", testSession("alice")))
	first.Close()

	// Segunda vida: rehidratación desde el archivo.
	second := NewStore(file, nil, testLogger())
	assert.True(t, second.IsLoading(), "antes de Rehydrate el almacén está cargando")

	second.Rehydrate(context.Background())

	assert.False(t, second.IsLoading(), "Rehydrate debe apagar IsLoading exactamente una vez")
	got, ok := second.Get("sid-1")
	require.True(t, ok, "la sesión persistida debe restaurarse")
	assert.Equal(t, "alice", got.Principal.Username)
	assert.Equal(t, "tok-alice", got.Token)
}

func TestStore_RehydrateSinArchivoDejaElAlmacenUtilizable(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "no-existe.json"), nil, testLogger())

	s.Rehydrate(context.Background())

	assert.False(t, s.IsLoading())
	require.NoError(t, s.Login("sid-1", testSession("alice")))
}

func TestStore_RehydrateArchivoCorruptoDescartaSinFallar(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(file, []byte("{esto no es json"), 0o600))

	s := NewStore(file, nil, testLogger())
	s.Rehydrate(context.Background())

	assert.False(t, s.IsLoading())
	_, ok := s.Get("sid-1")
	assert.False(t, ok)
}

func TestStore_RehydrateIgnoraEntradasSinToken(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sessions.json")
	raw := `{"sessions":{"sid-1":{"user_id":"u1","username":"alice","token":""},"sid-2":{"user_id":"u2","username":"bob","token":"tok-bob"}}}`
	require.NoError(t, os.WriteFile(file, []byte(raw), 0o600))

	s := NewStore(file, nil, testLogger())
	s.Rehydrate(context.Background())

	_, ok := s.Get("sid-1")
	assert.False(t, ok, "una entrada sin token no autoriza nada")
	_, ok = s.Get("sid-2")
	assert.True(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests enrichment de foto de perfil
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_RehydrateConEnrichment(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sessions.json")
	first := NewStore(file, nil, testLogger())
	require.NoError(t, first.Login("sid-1", testSession("alice")))
	first.Close()

	enrich := &enricherStub{picture: []byte{0x89, 0x50, 0x4e, 0x47}}
	s := NewStore(file, enrich, testLogger())
	s.Rehydrate(context.Background())

	got, ok := s.Get("sid-1")
	require.True(t, ok)
	assert.Equal(t, 1, enrich.calls)
	assert.Contains(t, got.ProfilePicture, "data:image/png;base64,", "la foto debe llegar como data-URI")
}

func TestStore_EnrichmentFallidoNoInvalidaLaSesion(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sessions.json")
	first := NewStore(file, nil, testLogger())
	require.NoError(t, first.Login("sid-1", testSession("alice")))
	first.Close()

	enrich := &enricherStub{err: errors.New("upstream caído")}
	s := NewStore(file, enrich, testLogger())
	s.Rehydrate(context.Background())

	got, ok := s.Get("sid-1")
	require.True(t, ok, "el fetch de imagen es best-effort")
	assert.Empty(t, got.ProfilePicture)
	assert.Equal(t, "tok-alice", got.Token)
}

func TestStore_SetProfilePictureActualizaEnMemoria(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "sessions.json"), nil, testLogger())
	require.NoError(t, s.Login("sid-1", testSession("alice")))

	s.SetProfilePicture("sid-1", "data:image/png;base64,QUJD")

	got, _ := s.Get("sid-1")
	assert.Equal(t, "data:image/png;base64,QUJD", got.ProfilePicture)
}

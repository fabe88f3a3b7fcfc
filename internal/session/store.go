// Package session mantiene las sesiones autenticadas del cliente de
// administración: principal + bearer token, persistidas en un archivo JSON
// bajo una única clave para sobrevivir reinicios del proceso.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/scheduler-admin/internal/domain"
	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
	"github.com/jhoicas/scheduler-admin/internal/listing"
	"github.com/jhoicas/scheduler-admin/pkg/logger"
)

// Enricher obtiene la foto de perfil del principal al rehidratar. El fetch
// es best-effort: un fallo deja la sesión válida sin imagen.
type Enricher interface {
	ProfilePicture(ctx context.Context, token, userID string) ([]byte, error)
}

// persistedSession forma serializada de una sesión (la foto no se persiste).
type persistedSession struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// persistedFile contenido del archivo de sesiones.
type persistedFile struct {
	Sessions map[string]persistedSession `json:"sessions"`
}

// Store almacén de sesiones con rehidratación al arranque.
type Store struct {
	file   string
	enrich Enricher
	log    *logger.Logger
	saver  *listing.Debouncer

	mu       sync.RWMutex
	sessions map[string]entity.Session
	loading  bool
}

// NewStore construye el almacén. IsLoading() es true hasta que Rehydrate
// termine (con o sin éxito).
func NewStore(file string, enrich Enricher, log *logger.Logger) *Store {
	return &Store{
		file:     file,
		enrich:   enrich,
		log:      log,
		saver:    listing.NewDebouncer(listing.SearchDebounce),
		sessions: make(map[string]entity.Session),
		loading:  true,
	}
}

// IsLoading indica si la rehidratación inicial sigue en curso. Pasa a false
// exactamente una vez.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Rehydrate carga las sesiones persistidas y hace el enrichment de foto de
// perfil por sesión. Cualquier fallo (archivo ausente, JSON corrupto, fetch
// de imagen) deja el almacén utilizable.
func (s *Store) Rehydrate(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	raw, err := os.ReadFile(s.file)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("file", s.file).Msg("leer sesiones persistidas")
		}
		return
	}
	var pf persistedFile
	if err := json.Unmarshal(raw, &pf); err != nil {
		s.log.Warn().Err(err).Str("file", s.file).Msg("sesiones persistidas corruptas; se descartan")
		return
	}

	restored := make(map[string]entity.Session, len(pf.Sessions))
	for id, ps := range pf.Sessions {
		if ps.Token == "" {
			// Una sesión sin token no autoriza nada; no se restaura.
			continue
		}
		sess := entity.Session{
			Principal: entity.Principal{ID: ps.UserID, Username: ps.Username},
			Token:     ps.Token,
		}
		sess.ProfilePicture = s.fetchPicture(ctx, sess)
		restored[id] = sess
	}

	s.mu.Lock()
	s.sessions = restored
	s.mu.Unlock()
	s.log.Info().Int("sessions", len(restored)).Msg("sesiones rehidratadas")
}

// fetchPicture enrichment best-effort: devuelve un data-URI PNG o vacío.
func (s *Store) fetchPicture(ctx context.Context, sess entity.Session) string {
	if s.enrich == nil || sess.Principal.ID == "" {
		return ""
	}
	pic, err := s.enrich.ProfilePicture(ctx, sess.Token, sess.Principal.ID)
	if err != nil || len(pic) == 0 {
		if err != nil {
			s.log.Debug().Err(err).Str("user", sess.Principal.Username).Msg("enrichment de foto de perfil falló")
		}
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pic)
}

// Login reemplaza la sesión bajo id y programa la persistencia. Puede
// llamarse cualquier número de veces; la última escritura gana.
func (s *Store) Login(id string, sess entity.Session) error {
	if !sess.Valid() {
		return fmt.Errorf("session: %w: token vacío", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	s.schedulePersist()
	return nil
}

// Logout elimina la sesión y su copia persistida.
func (s *Store) Logout(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.schedulePersist()
}

// Get devuelve la sesión bajo id, si existe.
func (s *Store) Get(id string) (entity.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// SetProfilePicture actualiza la imagen en memoria (tras editar el perfil).
func (s *Store) SetProfilePicture(id, dataURI string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.ProfilePicture = dataURI
		s.sessions[id] = sess
	}
}

// Close vuelca cualquier escritura pendiente.
func (s *Store) Close() {
	s.saver.Flush()
}

// schedulePersist coalesce las escrituras a disco con el debouncer: ráfagas
// de login/logout producen una sola escritura.
func (s *Store) schedulePersist() {
	s.saver.Trigger(func() {
		if err := s.persist(); err != nil {
			s.log.Error().Err(err).Str("file", s.file).Msg("persistir sesiones")
		}
	})
}

func (s *Store) persist() error {
	s.mu.RLock()
	pf := persistedFile{Sessions: make(map[string]persistedSession, len(s.sessions))}
	for id, sess := range s.sessions {
		pf.Sessions[id] = persistedSession{
			UserID:   sess.Principal.ID,
			Username: sess.Principal.Username,
			Token:    sess.Token,
		}
	}
	s.mu.RUnlock()

	raw, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.file), 0o755); err != nil {
		return err
	}
	tmp := s.file + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.file)
}

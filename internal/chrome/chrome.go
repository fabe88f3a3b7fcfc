// Package chrome modela el descriptor declarativo de la barra superior que
// cada página entrega al layout: título, búsqueda, filtros y botones.
package chrome

import "sync"

// SidebarBreakpoint ancho de viewport (px) a partir del cual la barra
// lateral se fuerza abierta en cada resize; por debajo se respeta el último
// toggle del usuario.
const SidebarBreakpoint = 1366

// MaxButtons tope de botones de acción que renderiza la barra.
const MaxButtons = 3

// Button botón de acción de la barra superior. Action es una URL o, con
// prefijo "#", el id del modal que abre.
type Button struct {
	Label   string
	Variant string // primary, secondary, danger...
	Action  string
}

// Descriptor estado completo de la barra superior de una página. Quien lo
// establece debe pasar todos los campos que quiere visibles: el layout
// renderiza exactamente lo que hay, sin heredar nada de la página anterior.
type Descriptor struct {
	Title             string
	BasePath          string // destino del formulario de búsqueda/filtros
	Search            bool
	SearchPlaceholder string
	Filters           []string
	ActiveFilter      string
	Buttons           []Button
}

// Store almacén del descriptor vigente. Escritura total, nunca merge;
// última escritura gana.
type Store struct {
	mu      sync.RWMutex
	current Descriptor
}

// NewStore construye el almacén con descriptor vacío.
func NewStore() *Store {
	return &Store{}
}

// Set reemplaza el descriptor completo y devuelve la copia almacenada. Los
// botones se truncan a MaxButtons.
func (s *Store) Set(d Descriptor) Descriptor {
	if len(d.Buttons) > MaxButtons {
		d.Buttons = d.Buttons[:MaxButtons]
	}
	s.mu.Lock()
	s.current = d
	s.mu.Unlock()
	return d
}

// Current devuelve el descriptor más reciente.
func (s *Store) Current() Descriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

package listing

import (
	"sync"
	"time"
)

// SearchDebounce intervalo de espera tras la última pulsación antes de
// lanzar la búsqueda. El mismo valor se inyecta en el script de la barra
// superior y en los consumidores del Debouncer del lado servidor.
const SearchDebounce = 2 * time.Second

// Debouncer de flanco de salida: cada Trigger sustituye al anterior y
// reinicia el temporizador; solo el último fn pendiente se ejecuta, una vez
// transcurrido el intervalo sin nuevos Trigger.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
}

// NewDebouncer construye un debouncer con el intervalo dado.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Interval devuelve el intervalo configurado.
func (d *Debouncer) Interval() time.Duration { return d.interval }

// Trigger programa fn para ejecutarse cuando pase el intervalo sin nuevas
// llamadas. Un Trigger posterior descarta el fn pendiente.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Flush ejecuta inmediatamente el fn pendiente, si lo hay. Se usa al cerrar
// para no perder la última escritura coalescida.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop cancela cualquier fn pendiente sin ejecutarlo.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

package puzzle

// Notifier receives state-changed signals after a project mutation has been
// applied (and, where applicable, persisted). The core emits the signal but
// never implements the delivery; subscribers (e.g. a websocket hub) do.
type Notifier interface {
	ProjectChanged(p *Project)
}

// NopNotifier discards all signals.
type NopNotifier struct{}

func (NopNotifier) ProjectChanged(*Project) {}

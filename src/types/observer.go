package types

// Observer is the presentation side of the simulation. Queue changes are
// reported from the spawner goroutines as well as the dispatcher, so
// implementations must be safe for concurrent use.
type Observer interface {
	OnArrive(floor int)
	OnBoard(req Request)
	OnAlight(req Request)
	OnQueueChanged(floor int)
}

type NopObserver struct{}

func (NopObserver) OnArrive(int)       {}
func (NopObserver) OnBoard(Request)    {}
func (NopObserver) OnAlight(Request)   {}
func (NopObserver) OnQueueChanged(int) {}

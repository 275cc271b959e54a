package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Event struct {
	BusinessID uint
	UserID     *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

// Recorder é a porta usada pelos casos de uso.
type Recorder interface {
	Dispatch(ev Event)
}

// Nop descarta todos os eventos.
type Nop struct{}

func (Nop) Dispatch(Event) {}

type Dispatcher struct {
	store Store
	log   zerolog.Logger
	queue chan Event
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(store Store, size int, log zerolog.Logger) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		store: store,
		log:   log,
		queue: make(chan Event, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.store.Save(ctx, Entry(ev)); err != nil {
			d.log.Error().Err(err).
				Uint("business_id", ev.BusinessID).
				Str("action", ev.Action).
				Msg("audit write failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// fila cheia: descarta, auditoria nunca quebra a API
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const sendTimeout = 10 * time.Second

// Dispatcher envia notificações em background. Falhas são só registradas em log:
// notificação nunca derruba a operação que a originou.
type Dispatcher struct {
	sender Sender
	log    zerolog.Logger
	queue  chan Message
	wg     sync.WaitGroup
	once   sync.Once
}

func NewDispatcher(sender Sender, size int, log zerolog.Logger) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		sender: sender,
		log:    log,
		queue:  make(chan Message, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.queue {
		d.send(msg)
	}
}

func (d *Dispatcher) send(msg Message) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Uint("user_id", msg.UserID).Msg("notification sender panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	res, err := d.sender.SendToUser(ctx, msg.UserID, msg.Title, msg.Body)
	if err != nil {
		d.log.Warn().Err(err).Uint("user_id", msg.UserID).Str("title", msg.Title).Msg("notification failed")
		return
	}
	if res.Failed > 0 {
		d.log.Warn().Int("sent", res.Sent).Int("failed", res.Failed).Uint("user_id", msg.UserID).Msg("notification partially delivered")
	}
}

// Notify nunca bloqueia: com a fila cheia a mensagem é descartada.
func (d *Dispatcher) Notify(msg Message) {
	select {
	case d.queue <- msg:
	default:
		d.log.Warn().Uint("user_id", msg.UserID).Msg("notification queue full, dropping message")
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

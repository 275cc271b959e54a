package notify

import (
	"context"

	"github.com/rs/zerolog"
)

type Message struct {
	UserID uint
	Title  string
	Body   string
}

type Result struct {
	Sent   int
	Failed int
}

// Sender entrega a notificação push em todos os dispositivos do usuário.
type Sender interface {
	SendToUser(ctx context.Context, userID uint, title, body string) (Result, error)
}

// Notifier é o que os casos de uso enxergam: enfileirar e seguir em frente.
type Notifier interface {
	Notify(msg Message)
}

// LogSender apenas registra a mensagem. Usado quando não há provedor de push configurado.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendToUser(_ context.Context, userID uint, title, body string) (Result, error) {
	s.log.Info().
		Uint("user_id", userID).
		Str("title", title).
		Str("body", body).
		Msg("push notification")
	return Result{Sent: 1}, nil
}

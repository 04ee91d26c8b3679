package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/msomdec/family-events/internal/domain"
)

// Variant selects how a notice is presented.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice is a short user-facing message about the outcome of one action.
type Notice struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier receives a notice for every successful mutation and every failure.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice)

func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

// SlogNotifier writes notices to a structured logger.
type SlogNotifier struct {
	Logger *slog.Logger
}

func (s SlogNotifier) Notify(ctx context.Context, n Notice) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if n.Variant == VariantDestructive {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "notice", "title", n.Title, "description", n.Description)
}

// Recorder keeps every notice it receives, in order.
type Recorder struct {
	Notices []Notice
}

func (r *Recorder) Notify(_ context.Context, n Notice) {
	r.Notices = append(r.Notices, n)
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	if len(r.Notices) == 0 {
		return Notice{}, false
	}
	return r.Notices[len(r.Notices)-1], true
}

// Drain returns and forgets every recorded notice.
func (r *Recorder) Drain() []Notice {
	out := r.Notices
	r.Notices = nil
	return out
}

// Multi fans a notice out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notice) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}

type discard struct{}

func (discard) Notify(context.Context, Notice) {}

func info(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: VariantDefault}
}

// failureNotice maps an error from the taxonomy to the message shown to the user.
func failureNotice(err error) Notice {
	n := Notice{Variant: VariantDestructive}
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		n.Title, n.Description = "Muitas tentativas", "Aguarde um momento e tente novamente."
	case errors.Is(err, domain.ErrInvalidCredentials):
		n.Title, n.Description = "Erro ao fazer login", "Credenciais inválidas."
	case errors.Is(err, domain.ErrUnauthenticated):
		n.Title, n.Description = "Acesso restrito", "Faça login para continuar."
	case errors.Is(err, domain.ErrUnauthorized):
		n.Title, n.Description = "Ação não permitida", "Você não tem permissão para realizar esta ação."
	case errors.Is(err, domain.ErrNotFound):
		n.Title, n.Description = "Evento não encontrado", "O evento que você está procurando não existe ou foi removido."
	case errors.Is(err, domain.ErrInvalidTransition):
		n.Title, n.Description = "Status inválido", "O evento não pode passar para este status."
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidInput):
		n.Title, n.Description = "Dados inválidos", "Verifique os dados informados."
	default:
		n.Title, n.Description = "Erro inesperado", "Não foi possível concluir a ação."
	}
	return n
}

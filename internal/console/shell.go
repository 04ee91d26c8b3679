// Package console is a line-oriented front end over the identity and event
// services. Each line is one command; notices produced by the services are
// printed after the command's own output.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/msomdec/family-events/internal/service"
)

// ErrQuit is returned by Exec when the user asks to leave.
var ErrQuit = errors.New("quit")

// usageError reports a malformed command line.
type usageError struct {
	usage string
	msg   string
}

func (e *usageError) Error() string {
	if e.msg == "" {
		return "uso: " + e.usage
	}
	return e.msg + "\nuso: " + e.usage
}

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

// Shell runs console commands for one session.
type Shell struct {
	identity *service.IdentityService
	events   *service.EventService
	notices  *service.Recorder
	out      io.Writer

	commands    map[string]command
	lastFlushed []service.Notice
}

// New creates a Shell. notices must be the recorder the services notify,
// so the shell can print what happened after each command.
func New(identity *service.IdentityService, events *service.EventService, notices *service.Recorder, out io.Writer) *Shell {
	s := &Shell{
		identity: identity,
		events:   events,
		notices:  notices,
		out:      out,
	}
	s.commands = s.register()
	return s
}

// Run reads commands from in until EOF, "quit", or ctx is canceled.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	s.printf("Gerenciador de Eventos em Família. Digite 'help' para ver os comandos.\n")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.prompt()
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read command: %w", err)
			}
			s.printf("\n")
			return nil
		}

		err := s.Exec(ctx, scanner.Text())
		if errors.Is(err, ErrQuit) {
			s.printf("Até logo!\n")
			return nil
		}
	}
}

// Exec runs one command line. Errors are printed as well as returned.
func (s *Shell) Exec(ctx context.Context, line string) error {
	args, err := splitArgs(line)
	if err != nil {
		s.printf("Erro: %v\n", err)
		return err
	}
	if len(args) == 0 {
		return nil
	}

	name := strings.ToLower(args[0])
	cmd, ok := s.commands[name]
	if !ok {
		err := fmt.Errorf("unknown command %q", name)
		s.printf("Comando desconhecido: %s. Digite 'help' para ver os comandos.\n", name)
		return err
	}

	err = cmd.run(ctx, args[1:])
	s.flushNotices()

	var usage *usageError
	switch {
	case err == nil, errors.Is(err, ErrQuit):
	case errors.As(err, &usage):
		s.printf("%s\n", usage.Error())
	case !s.notified():
		// Failures the services did not turn into a notice.
		s.printf("Erro: %v\n", err)
	default:
		slog.Debug("command failed", "command", name, "error", err)
	}
	return err
}

func (s *Shell) prompt() {
	if u, ok := s.identity.CurrentUser(); ok {
		s.printf("%s> ", firstName(u.Name))
		return
	}
	s.printf("> ")
}

// flushNotices prints and forgets every notice recorded by the services.
func (s *Shell) flushNotices() {
	s.lastFlushed = s.notices.Drain()
	for _, n := range s.lastFlushed {
		tag := "ok"
		if n.Variant == service.VariantDestructive {
			tag = "erro"
		}
		s.printf("[%s] %s: %s\n", tag, n.Title, n.Description)
	}
}

func (s *Shell) notified() bool {
	return len(s.lastFlushed) > 0
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *Shell) help(_ context.Context, _ []string) error {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	s.printf("Comandos:\n")
	for _, name := range names {
		cmd := s.commands[name]
		s.printf("  %-44s %s\n", cmd.usage, cmd.help)
	}
	return nil
}

func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

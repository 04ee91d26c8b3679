package console

import (
	"context"
	"strings"

	"github.com/msomdec/family-events/internal/domain"
	"github.com/msomdec/family-events/internal/service"
)

var eventFields = []string{"title", "date", "time", "location", "type", "description", "host"}

func (s *Shell) register() map[string]command {
	quit := command{usage: "quit", help: "Sai do sistema", run: func(context.Context, []string) error { return ErrQuit }}
	return map[string]command{
		"help":     {usage: "help", help: "Mostra esta ajuda", run: s.help},
		"quit":     quit,
		"exit":     quit,
		"login":    {usage: "login <email> [senha]", help: "Entra como o usuário do email", run: s.login},
		"logout":   {usage: "logout", help: "Sai da conta atual", run: s.logout},
		"whoami":   {usage: "whoami", help: "Mostra o usuário conectado", run: s.whoami},
		"token":    {usage: "token", help: "Gera um token para retomar a sessão", run: s.token},
		"resume":   {usage: "resume <token>", help: "Retoma uma sessão a partir de um token", run: s.resume},
		"users":    {usage: "users", help: "Lista os usuários", run: s.users},
		"home":     {usage: "home", help: "Resumo dos eventos", run: s.home},
		"list":     {usage: "list [search=] [type=] [status=] [host=]", help: "Lista os eventos", run: s.list},
		"show":     {usage: "show <evento>", help: "Detalhes de um evento", run: s.show},
		"new":      {usage: "new title= date= time= location= type= host= [description=]", help: "Cria um evento", run: s.create},
		"edit":     {usage: "edit <evento> campo=valor...", help: "Edita um evento", run: s.edit},
		"approve":  {usage: "approve <evento>", help: "Aprova um evento pendente", run: s.approve},
		"reject":   {usage: "reject <evento>", help: "Rejeita um evento pendente", run: s.reject},
		"cancel":   {usage: "cancel <evento>", help: "Cancela um evento aprovado", run: s.cancel},
		"delete":   {usage: "delete <evento>", help: "Remove um evento", run: s.remove},
		"guests":   {usage: "guests <evento>", help: "Lista os convidados de um evento", run: s.guests},
		"invite":   {usage: "invite <evento> <usuário>", help: "Convida um usuário", run: s.invite},
		"rsvp":     {usage: "rsvp <convite> <confirmed|declined|pending>", help: "Responde a um convite", run: s.rsvp},
		"uninvite": {usage: "uninvite <convite>", help: "Remove um convidado", run: s.uninvite},
		"pending":  {usage: "pending", help: "Eventos aguardando sua aprovação", run: s.pending},
		"stats":    {usage: "stats", help: "Estatísticas (somente admin)", run: s.stats},
	}
}

func (s *Shell) usage(name string) *usageError {
	return &usageError{usage: s.commands[name].usage}
}

func (s *Shell) login(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return s.usage("login")
	}
	password := ""
	if len(args) == 2 {
		password = args[1]
	}
	_, err := s.identity.Authenticate(ctx, args[0], password)
	return err
}

func (s *Shell) logout(ctx context.Context, _ []string) error {
	s.identity.SignOut(ctx)
	return nil
}

func (s *Shell) whoami(_ context.Context, _ []string) error {
	u, ok := s.identity.CurrentUser()
	if !ok {
		s.printf("Nenhum usuário conectado.\n")
		return nil
	}
	s.printf("%s <%s> (%s)\n", u.Name, u.Email, u.Role)
	return nil
}

func (s *Shell) token(_ context.Context, _ []string) error {
	tok, err := s.identity.Token()
	if err != nil {
		return err
	}
	s.printf("%s\n", tok)
	return nil
}

func (s *Shell) resume(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return s.usage("resume")
	}
	_, err := s.identity.Resume(ctx, args[0])
	return err
}

func (s *Shell) users(ctx context.Context, _ []string) error {
	users, err := s.identity.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		s.printf("[%s] %s <%s> %s (%s)\n", u.ID, u.Name, u.Email, u.Phone, u.Role)
	}
	return nil
}

func (s *Shell) home(ctx context.Context, _ []string) error {
	d, err := s.events.Dashboard(ctx)
	if err != nil {
		return err
	}
	s.printf("Eventos pendentes: %d\n", d.Pending)
	if _, ok := s.identity.CurrentUser(); !ok {
		return nil
	}
	s.printf("Eventos que você organiza: %d\n", d.Hosted)
	if len(d.PendingApproval) > 0 {
		s.printf("Aguardando sua aprovação:\n")
		s.printEvents(d.PendingApproval)
	}
	return nil
}

func (s *Shell) list(ctx context.Context, args []string) error {
	kv, err := keyValues(args, "search", "type", "status", "host")
	if err != nil {
		return &usageError{usage: s.commands["list"].usage, msg: err.Error()}
	}

	f := service.Filter{Search: kv["search"], HostID: kv["host"]}
	if v, ok := kv["type"]; ok {
		if f.Type, err = parseEventType(v); err != nil {
			return err
		}
	}
	if v, ok := kv["status"]; ok {
		if f.Status, err = parseEventStatus(v); err != nil {
			return err
		}
	}

	events, err := s.events.List(ctx, f)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		s.printf("Nenhum evento encontrado.\n")
		return nil
	}
	s.printEvents(events)
	return nil
}

func (s *Shell) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return s.usage("show")
	}
	d, err := s.events.Details(ctx, args[0])
	if err != nil {
		return err
	}

	e := d.Event
	s.printf("%s %s [%s]\n", service.EventTypeIcon(e.Type), e.Title, e.ID)
	s.printf("  Tipo:       %s\n", service.FormatEventType(e.Type))
	s.printf("  Quando:     %s, %s\n", service.FormatLongDate(e.DateTime), service.FormatTime(e.DateTime))
	s.printf("  Local:      %s\n", e.Location)
	s.printf("  Status:     %s\n", service.FormatEventStatus(e.Status))
	s.printf("  Anfitrião:  %s\n", d.HostName)
	s.printf("  Criado por: %s em %s\n", d.CreatorName, service.FormatDateTime(e.CreatedAt))
	if e.Description != "" {
		s.printf("  Descrição:  %s\n", e.Description)
	}
	s.printf("  Convidados (%d):\n", len(d.Guests))
	for _, g := range d.Guests {
		s.printf("    [%s] %s: %s\n", g.ID, g.Name, service.FormatGuestStatus(g.Status))
	}
	if actions := allowedActions(d.Permissions); len(actions) > 0 {
		s.printf("  Você pode:  %s\n", strings.Join(actions, ", "))
	}
	return nil
}

func (s *Shell) create(ctx context.Context, args []string) error {
	kv, err := keyValues(args, eventFields...)
	if err != nil {
		return &usageError{usage: s.commands["new"].usage, msg: err.Error()}
	}

	draft := domain.EventDraft{
		Title:       kv["title"],
		Date:        kv["date"],
		Time:        kv["time"],
		Location:    kv["location"],
		Description: kv["description"],
		HostID:      kv["host"],
	}
	if v, ok := kv["type"]; ok {
		if draft.Type, err = parseEventType(v); err != nil {
			return err
		}
	}

	e, err := s.events.Create(ctx, draft)
	if err != nil {
		return err
	}
	s.printf("Evento %s criado com status %s.\n", e.ID, strings.ToLower(service.FormatEventStatus(e.Status)))
	return nil
}

func (s *Shell) edit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return s.usage("edit")
	}
	id := args[0]
	kv, err := keyValues(args[1:], eventFields...)
	if err != nil {
		return &usageError{usage: s.commands["edit"].usage, msg: err.Error()}
	}

	var patch domain.EventPatch
	if v, ok := kv["title"]; ok {
		patch.Title = &v
	}
	if v, ok := kv["location"]; ok {
		patch.Location = &v
	}
	if v, ok := kv["description"]; ok {
		patch.Description = &v
	}
	if v, ok := kv["host"]; ok {
		patch.HostID = &v
	}
	if v, ok := kv["type"]; ok {
		t, err := parseEventType(v)
		if err != nil {
			return err
		}
		patch.Type = &t
	}

	date, hasDate := kv["date"]
	clock, hasTime := kv["time"]
	if hasDate || hasTime {
		// A lone date or time keeps the other half of the current value.
		current, err := s.events.Get(ctx, id)
		if err != nil {
			return err
		}
		if !hasDate {
			date = current.DateTime.Format("2006-01-02")
		}
		if !hasTime {
			clock = current.DateTime.Format("15:04")
		}
		when, err := service.ParseDateTime(date, clock, s.events.Location())
		if err != nil {
			return err
		}
		patch.DateTime = &when
	}

	_, err = s.events.Update(ctx, id, patch)
	return err
}

func (s *Shell) approve(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return s.usage("approve")
	}
	_, err := s.events.Approve(ctx, args[0])
	return err
}

func (s *Shell) reject(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return s.usage("reject")
	}
	_, err := s.events.Reject(ctx, args[0])
	return err
}

func (s *Shell) cancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return s.usage("cancel")
	}
	_, err := s.events.Cancel(ctx, args[0])
	return err
}

func (s *Shell) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return s.usage("delete")
	}
	return s.events.Delete(ctx, args[0])
}

func (s *Shell) guests(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return s.usage("guests")
	}
	d, err := s.events.Details(ctx, args[0])
	if err != nil {
		return err
	}
	if len(d.Guests) == 0 {
		s.printf("Nenhum convidado.\n")
		return nil
	}
	for _, g := range d.Guests {
		s.printf("[%s] %s: %s\n", g.ID, g.Name, service.FormatGuestStatus(g.Status))
	}
	return nil
}

func (s *Shell) invite(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return s.usage("invite")
	}
	g, err := s.events.AddGuest(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	s.printf("Convite %s: %s.\n", g.ID, strings.ToLower(service.FormatGuestStatus(g.Status)))
	return nil
}

func (s *Shell) rsvp(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return s.usage("rsvp")
	}
	status, err := parseGuestStatus(args[1])
	if err != nil {
		return err
	}
	_, err = s.events.RespondGuest(ctx, args[0], status)
	return err
}

func (s *Shell) uninvite(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return s.usage("uninvite")
	}
	return s.events.RemoveGuest(ctx, args[0])
}

func (s *Shell) pending(ctx context.Context, _ []string) error {
	events, err := s.events.PendingApproval(ctx)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		s.printf("Nenhum evento aguardando sua aprovação.\n")
		return nil
	}
	s.printEvents(events)
	return nil
}

func (s *Shell) stats(ctx context.Context, _ []string) error {
	st, err := s.events.Stats(ctx)
	if err != nil {
		return err
	}
	s.printf("Total: %d\n", st.Total)
	s.printf("Pendentes: %d\n", st.Pending)
	s.printf("Aprovados: %d (%d por vir)\n", st.Approved, st.Upcoming)
	s.printf("Rejeitados: %d\n", st.Rejected)
	s.printf("Cancelados: %d\n", st.Canceled)
	return nil
}

func (s *Shell) printEvents(events []domain.Event) {
	for _, e := range events {
		s.printf("%s [%s] %s | %s | %s | %s\n",
			service.EventTypeIcon(e.Type), e.ID, e.Title,
			service.FormatDateTime(e.DateTime), e.Location, service.FormatEventStatus(e.Status))
	}
}

func allowedActions(p domain.Permissions) []string {
	var actions []string
	if p.Approve {
		actions = append(actions, "aprovar")
	}
	if p.Reject {
		actions = append(actions, "rejeitar")
	}
	if p.Cancel {
		actions = append(actions, "cancelar")
	}
	if p.Edit {
		actions = append(actions, "editar")
	}
	if p.Delete {
		actions = append(actions, "excluir")
	}
	return actions
}

// parseEventType accepts the stored value or its pt-BR label.
func parseEventType(v string) (domain.EventType, error) {
	for _, t := range domain.EventTypes {
		if strings.EqualFold(v, string(t)) || strings.EqualFold(v, service.FormatEventType(t)) {
			return t, nil
		}
	}
	return domain.ParseEventType(v)
}

func parseEventStatus(v string) (domain.EventStatus, error) {
	for _, st := range domain.EventStatuses {
		if strings.EqualFold(v, string(st)) || strings.EqualFold(v, service.FormatEventStatus(st)) {
			return st, nil
		}
	}
	return domain.ParseEventStatus(v)
}

func parseGuestStatus(v string) (domain.GuestStatus, error) {
	for _, st := range domain.GuestStatuses {
		if strings.EqualFold(v, string(st)) || strings.EqualFold(v, service.FormatGuestStatus(st)) {
			return st, nil
		}
	}
	return domain.ParseGuestStatus(v)
}

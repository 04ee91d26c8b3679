package service

import (
	"fmt"
	"time"

	"github.com/msomdec/family-events/internal/domain"
)

var eventTypeLabels = map[domain.EventType]string{
	domain.EventTypeBirthday: "Aniversário",
	domain.EventTypeLunch:    "Almoço",
	domain.EventTypeDinner:   "Jantar",
	domain.EventTypeBarbecue: "Churrasco",
}

var eventTypeIcons = map[domain.EventType]string{
	domain.EventTypeBirthday: "🎂",
	domain.EventTypeLunch:    "🍽️",
	domain.EventTypeDinner:   "🍷",
	domain.EventTypeBarbecue: "🥩",
}

var eventStatusLabels = map[domain.EventStatus]string{
	domain.EventStatusPending:  "Pendente",
	domain.EventStatusApproved: "Aprovado",
	domain.EventStatusRejected: "Rejeitado",
	domain.EventStatusCanceled: "Cancelado",
}

var guestStatusLabels = map[domain.GuestStatus]string{
	domain.GuestStatusPending:   "Pendente",
	domain.GuestStatusConfirmed: "Confirmado",
	domain.GuestStatusDeclined:  "Recusado",
}

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatEventType returns the pt-BR label of t, or t itself when unknown.
func FormatEventType(t domain.EventType) string {
	if label, ok := eventTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// EventTypeIcon returns the emoji shown next to an event of type t.
func EventTypeIcon(t domain.EventType) string {
	if icon, ok := eventTypeIcons[t]; ok {
		return icon
	}
	return "📅"
}

// FormatEventStatus returns the pt-BR label of s.
func FormatEventStatus(s domain.EventStatus) string {
	if label, ok := eventStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// FormatGuestStatus returns the pt-BR label of s.
func FormatGuestStatus(s domain.GuestStatus) string {
	if label, ok := guestStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// FormatDate renders t as dd/MM/yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatTime renders t as HH:mm.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatDateTime renders t as "dd/MM/yyyy, HH:mm".
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006, 15:04")
}

// FormatLongDate renders t as "15 de maio de 2025".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// Package notify shows transient confirmation and error messages.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Toast is one message. Description may be empty.
type Toast struct {
	Title       string
	Description string
	Variant     Variant
}

type Notifier interface {
	Notify(t Toast)
}

// Messages shown by the app.
var (
	ReadingSaved   = Toast{Title: "Medição registrada!", Description: "Sua glicemia foi salva com sucesso."}
	ReadingDeleted = Toast{Title: "Medição deletada", Description: "Registro removido com sucesso."}
	ProfileUpdated = Toast{Title: "Perfil atualizado!", Description: "Suas informações foram salvas com sucesso."}
	ProfileDeleted = Toast{Title: "Perfil excluído", Description: "Seus dados foram removidos do dispositivo."}
	SettingsSaved  = Toast{Title: "Configurações salvas!", Description: "Seu GlicoSaúde foi personalizado com base no seu perfil."}
)

// ReadingSaveFailed carries the failure reason as its description.
func ReadingSaveFailed(reason string) Toast {
	return Error("Erro ao salvar medição", reason)
}

// Error builds a destructive toast.
func Error(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: VariantDestructive}
}

var (
	successColor     = lipgloss.Color("#8BC34A")
	destructiveColor = lipgloss.Color("#e53935")
	mutedColor       = lipgloss.Color("#9aa5b1")
)

// Terminal writes toasts as bordered boxes.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer

	box         lipgloss.Style
	title       lipgloss.Style
	description lipgloss.Style
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out: out,
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(successColor).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Bold(true),
		description: lipgloss.NewStyle().
			Foreground(mutedColor),
	}
}

func (n *Terminal) Notify(t Toast) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, n.Render(t))
}

// Render returns the styled toast without writing it.
func (n *Terminal) Render(t Toast) string {
	box, title := n.box, n.title
	if t.Variant == VariantDestructive {
		box = box.BorderForeground(destructiveColor)
		title = title.Foreground(destructiveColor)
	}

	body := title.Render(t.Title)
	if t.Description != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, n.description.Render(t.Description))
	}
	return box.Render(body)
}

// Recorder keeps every toast in memory.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Last returns the most recent toast.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

// Discard drops every toast.
type Discard struct{}

func (Discard) Notify(Toast) {}

package main

import (
	"chat-sync/domain"
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"
)

// renderer prints the chat list to a terminal.
// Records are printed once, in store order; an edited record is printed again.
type renderer struct {
	out     io.Writer
	colours bool
	printed map[string]int
}

func newRenderer(out io.Writer, colours bool) *renderer {
	return &renderer{out: out, colours: colours, printed: make(map[string]int)}
}

func (r *renderer) render(messages []domain.Message) {
	for _, msg := range messages {
		if version, ok := r.printed[msg.ID]; ok && version == msg.Version {
			continue
		}
		r.printed[msg.ID] = msg.Version
		fmt.Fprintln(r.out, r.line(msg))
	}
}

func (r *renderer) line(msg domain.Message) string {
	stamp := msg.CreatedAt
	if at, err := msg.CreatedTime(); err == nil {
		stamp = at.Local().Format(time.TimeOnly)
	}
	stamp = "[" + stamp + "]"
	if r.colours {
		stamp = color.Gray.Render(stamp)
	}
	return stamp + " " + msg.Body
}

func (r *renderer) error(err error) {
	text := "! " + err.Error()
	if r.colours {
		text = color.New(color.FgRed, color.OpBold).Render(text)
	}
	fmt.Fprintln(r.out, text)
}

func (r *renderer) info(text string) {
	if r.colours {
		text = color.Cyan.Render(text)
	}
	fmt.Fprintln(r.out, text)
}

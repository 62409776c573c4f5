package client

import "sync"

// InputBuffer holds the text the user is composing.
type InputBuffer struct {
	mu   sync.Mutex
	text string
}

func (b *InputBuffer) Set(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
}

func (b *InputBuffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

func (b *InputBuffer) Clear() {
	b.Set("")
}

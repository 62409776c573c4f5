package runtime

import (
	"chat-sync/contract"
	"sync"
)

// Registry tracks the live subscribers of the chat.
// One room only: every subscriber receives every created message.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.EventSink // map subscriber -> Sink
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]contract.EventSink),
	}
}

// GetSinks returns the sinks of every connected subscriber.
// Returns nil when nobody is connected.
func (r *Registry) GetSinks() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var activeSinks []contract.EventSink
	for _, sink := range r.sessions {
		activeSinks = append(activeSinks, sink)
	}
	return activeSinks
}

// Subscribe registers a subscriber's connection, replacing any previous one.
func (r *Registry) Subscribe(subscriberID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[subscriberID] = sink
}

func (r *Registry) Unsubscribe(subscriberID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, subscriberID)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

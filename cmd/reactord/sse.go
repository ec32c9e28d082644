package main

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/loopworks/reactor/pkg/events"
)

// ssePublisher fans out engine progress events to per-session subscriber
// channels that the /events/:id handler drains over Server-Sent Events.
// It never blocks the engine: a slow or absent subscriber just misses
// events rather than stalling the run.
type ssePublisher struct {
	mu   sync.Mutex
	subs map[string][]chan []byte
}

func newSSEPublisher() *ssePublisher {
	return &ssePublisher{subs: make(map[string][]chan []byte)}
}

func (p *ssePublisher) subscribe(sessionID string) chan []byte {
	ch := make(chan []byte, 16)
	p.mu.Lock()
	p.subs[sessionID] = append(p.subs[sessionID], ch)
	p.mu.Unlock()
	return ch
}

func (p *ssePublisher) unsubscribe(sessionID string, ch chan []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	subs := p.subs[sessionID]
	for i, c := range subs {
		if c == ch {
			p.subs[sessionID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
}

func (p *ssePublisher) publish(sessionID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subs[sessionID] {
		select {
		case ch <- data:
		default:
		}
	}
}

func (p *ssePublisher) PublishProgress(_ context.Context, payload events.ProgressPayload) error {
	p.publish(payload.SessionID, payload)
	return nil
}

func (p *ssePublisher) PublishTool(_ context.Context, payload events.ToolPayload) error {
	p.publish(payload.SessionID, payload)
	return nil
}

func (p *ssePublisher) PublishCompletion(_ context.Context, payload events.CompletionPayload) error {
	p.publish(payload.SessionID, payload)
	return nil
}

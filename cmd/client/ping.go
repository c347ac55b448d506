package main

import (
	"sync"
	"time"
)

// pingTracker mede a latência de um ping por vez. Um pong que chega depois
// do timeout é ignorado e não contamina a próxima medição.
type pingTracker struct {
	mu      sync.Mutex
	started time.Time
	result  chan time.Duration
}

func newPingTracker() *pingTracker {
	return &pingTracker{result: make(chan time.Duration, 1)}
}

// start abre uma medição nova, descartando qualquer resultado antigo.
func (p *pingTracker) start(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-p.result:
	default:
	}
	p.started = now
}

// pong é chamado pelo PongHandler; nunca bloqueia o readLoop.
func (p *pingTracker) pong(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started.IsZero() {
		return
	}
	select {
	case p.result <- now.Sub(p.started):
	default:
	}
	p.started = time.Time{}
}

// cancel encerra a medição em aberto (timeout ou erro de escrita).
func (p *pingTracker) cancel() {
	p.mu.Lock()
	p.started = time.Time{}
	p.mu.Unlock()
}

// wait espera o pong até timeout.
func (p *pingTracker) wait(timeout time.Duration) (time.Duration, bool) {
	select {
	case latency := <-p.result:
		return latency, true
	case <-time.After(timeout):
		p.cancel()
		return 0, false
	}
}

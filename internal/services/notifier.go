package services

import (
	"sync"

	"github.com/abrezinsky/mastersboard/internal/logger"
)

// Notification levels
const (
	LevelError   = "error"
	LevelSuccess = "success"
)

// Notifier surfaces a one-line message to the viewer. Calls are synchronous:
// the message has been handed over when the call returns.
type Notifier interface {
	ShowError(msg string)
	ShowSuccess(msg string)
}

// Broadcaster defines the interface for broadcasting messages to clients
type Broadcaster interface {
	BroadcastMessage(msgType string, payload interface{})
}

// Notification is one message shown to a viewer
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Notifiers fans a message out to every sink in order
type Notifiers []Notifier

func (n Notifiers) ShowError(msg string) {
	for _, s := range n {
		s.ShowError(msg)
	}
}

func (n Notifiers) ShowSuccess(msg string) {
	for _, s := range n {
		s.ShowSuccess(msg)
	}
}

// LogNotifier writes notifications to the structured log
type LogNotifier struct {
	Log logger.Logger
}

func (l LogNotifier) ShowError(msg string) {
	l.Log.Error("Notification", "level", LevelError, "message", msg)
}

func (l LogNotifier) ShowSuccess(msg string) {
	l.Log.Info("Notification", "level", LevelSuccess, "message", msg)
}

// BroadcastNotifier pushes notifications to every connected viewer
type BroadcastNotifier struct {
	Broadcaster Broadcaster
}

func (b BroadcastNotifier) ShowError(msg string) {
	b.Broadcaster.BroadcastMessage("notification", Notification{Level: LevelError, Message: msg})
}

func (b BroadcastNotifier) ShowSuccess(msg string) {
	b.Broadcaster.BroadcastMessage("notification", Notification{Level: LevelSuccess, Message: msg})
}

// Recorder keeps notifications so a request can echo them in its response
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) ShowError(msg string) {
	r.add(LevelError, msg)
}

func (r *Recorder) ShowSuccess(msg string) {
	r.add(LevelSuccess, msg)
}

func (r *Recorder) add(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Level: level, Message: msg})
}

// Notifications returns a copy of everything recorded so far
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the most recent notification
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

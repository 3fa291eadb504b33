package services

import (
	"fmt"
	"log"
	"sync/atomic"
)

// Notifier shows short-lived status messages to the user. Loading returns
// an id that Dismiss later removes.
type Notifier interface {
	Loading(message string) string
	Success(message string)
	Error(message string)
	Dismiss(id string)
}

// NopNotifier discards every notification
type NopNotifier struct{}

func (NopNotifier) Loading(string) string { return "" }
func (NopNotifier) Success(string)        {}
func (NopNotifier) Error(string)          {}
func (NopNotifier) Dismiss(string)        {}

// LogNotifier writes notifications to the standard logger
type LogNotifier struct {
	seq atomic.Int64
}

func (n *LogNotifier) Loading(message string) string {
	id := fmt.Sprintf("toast-%d", n.seq.Add(1))
	log.Printf("[%s] %s", id, message)
	return id
}

func (n *LogNotifier) Success(message string) {
	log.Printf("✅ %s", message)
}

func (n *LogNotifier) Error(message string) {
	log.Printf("❌ %s", message)
}

func (n *LogNotifier) Dismiss(id string) {
	if id != "" {
		log.Printf("[%s] dismissed", id)
	}
}

package server

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/df07/go-ppm-raytracer/pkg/core"
)

// DefaultConsoleSize is how many messages the server keeps for /api/console
const DefaultConsoleSize = 200

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// Console keeps the most recent messages in a fixed-size ring
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	next     int
	full     bool
}

// NewConsole creates a console holding at most size messages
func NewConsole(size int) *Console {
	if size <= 0 {
		size = DefaultConsoleSize
	}
	return &Console{messages: make([]ConsoleMessage, size)}
}

// Append stores msg, evicting the oldest message when full
func (c *Console) Append(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages[c.next] = msg
	c.next = (c.next + 1) % len(c.messages)
	if c.next == 0 {
		c.full = true
	}
}

// Messages returns a copy of the stored messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.full {
		return append([]ConsoleMessage{}, c.messages[:c.next]...)
	}
	out := make([]ConsoleMessage, 0, len(c.messages))
	out = append(out, c.messages[c.next:]...)
	return append(out, c.messages[:c.next]...)
}

// WebLogger implements core.Logger by recording messages on a console
type WebLogger struct {
	renderID string
	console  *Console
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, console *Console) core.Logger {
	return &WebLogger{
		renderID: renderID,
		console:  console,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to the server log
	log.Printf("[%s] %s", wl.renderID, message)

	if wl.console != nil {
		wl.console.Append(ConsoleMessage{
			RenderID:  wl.renderID,
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		})
	}
}

package server

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	console := NewConsole(10)
	logger := NewWebLogger("test-render-123", console)

	testMessage := "Test log message"
	logger.Printf("%s\n", testMessage)

	messages := console.Messages()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	msg := messages[0]
	if msg.Message != testMessage+"\n" {
		t.Errorf("Expected message '%s', got '%s'", testMessage+"\n", msg.Message)
	}
	if msg.RenderID != "test-render-123" {
		t.Errorf("Expected render ID 'test-render-123', got '%s'", msg.RenderID)
	}
	if msg.Level != "info" {
		t.Errorf("Expected level 'info', got '%s'", msg.Level)
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
	}
}

func TestWebLogger_FormattedMessages(t *testing.T) {
	console := NewConsole(10)
	logger := NewWebLogger("test-render-format", console)

	logger.Printf("Rendered %dx%d with %d workers\n", 400, 225, 8)

	expected := "Rendered 400x225 with 8 workers\n"
	if got := console.Messages()[0].Message; got != expected {
		t.Errorf("Expected formatted message '%s', got '%s'", expected, got)
	}
}

func TestWebLogger_NilConsole(t *testing.T) {
	// Logging without a console must not panic
	logger := NewWebLogger("test-render-nil", nil)
	logger.Printf("Test message with nil console\n")
}

func TestConsole_KeepsMostRecent(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		count    int
		expected []string
	}{
		{"empty", 3, 0, []string{}},
		{"partial", 3, 2, []string{"0", "1"}},
		{"exactly full", 3, 3, []string{"0", "1", "2"}},
		{"wrapped", 3, 5, []string{"2", "3", "4"}},
		{"wrapped twice", 2, 5, []string{"3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			console := NewConsole(tt.size)
			for i := 0; i < tt.count; i++ {
				console.Append(ConsoleMessage{Message: fmt.Sprint(i)})
			}

			messages := console.Messages()
			if len(messages) != len(tt.expected) {
				t.Fatalf("Expected %d messages, got %d", len(tt.expected), len(messages))
			}
			for i, want := range tt.expected {
				if messages[i].Message != want {
					t.Errorf("Message %d: expected '%s', got '%s'", i, want, messages[i].Message)
				}
			}
		})
	}
}

func TestConsole_DefaultSize(t *testing.T) {
	console := NewConsole(0)
	for i := 0; i < DefaultConsoleSize+5; i++ {
		console.Append(ConsoleMessage{Message: fmt.Sprint(i)})
	}
	if got := len(console.Messages()); got != DefaultConsoleSize {
		t.Errorf("Expected %d messages, got %d", DefaultConsoleSize, got)
	}
}

func TestConsole_ConcurrentAppend(t *testing.T) {
	console := NewConsole(50)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			logger := NewWebLogger(fmt.Sprintf("render-%d", w), console)
			for i := 0; i < 20; i++ {
				logger.Printf("message %d\n", i)
			}
		}(w)
	}
	wg.Wait()

	if got := len(console.Messages()); got != 50 {
		t.Errorf("Expected a full console of 50 messages, got %d", got)
	}
}

// Package flash stores one-time notices in the session, shown on the next
// rendered page after a redirect.
package flash

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// Message is a single flash notice.
type Message struct {
	Level string
	Text  string
}

func init() {
	// Flashes travel through the gob-encoded session store.
	gob.Register(Message{})
}

// Success queues a success notice.
func Success(c *gin.Context, text string) {
	add(c, Message{Level: LevelSuccess, Text: text})
}

// Error queues an error notice.
func Error(c *gin.Context, text string) {
	add(c, Message{Level: LevelError, Text: text})
}

// Info queues an informational notice.
func Info(c *gin.Context, text string) {
	add(c, Message{Level: LevelInfo, Text: text})
}

// Pop returns the queued notices and clears them from the session.
func Pop(c *gin.Context) []Message {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	// Flashes() removed them from the session; persist the removal.
	_ = session.Save()

	messages := make([]Message, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(Message); ok {
			messages = append(messages, m)
		}
	}
	return messages
}

func add(c *gin.Context, m Message) {
	session := sessions.Default(c)
	session.AddFlash(m)
	_ = session.Save()
}

package server

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ConsoleMessage is a log line streamed to the browser console
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// WebLogger implements core.Logger for a single render. Info messages go to the
// server log and to the render's console channel; debug messages only to the
// server log, since per-tile progress already arrives as tile events.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	log         *zap.SugaredLogger
}

// NewWebLogger creates a logger for one render. log may be nil.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, log *zap.SugaredLogger) *WebLogger {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		log:         log.With("render", renderID),
	}
}

// Infof logs to the server and forwards the message to the browser
func (wl *WebLogger) Infof(format string, args ...interface{}) {
	wl.log.Infof(format, args...)
	wl.send("info", fmt.Sprintf(format, args...))
}

// Debugf logs to the server only
func (wl *WebLogger) Debugf(format string, args ...interface{}) {
	wl.log.Debugf(format, args...)
}

// send never blocks; messages are dropped when the channel is full
func (wl *WebLogger) send(level, message string) {
	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
	}
}

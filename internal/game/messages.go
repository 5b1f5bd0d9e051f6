package game

import "strings"

// MsgPriority controls the color of a message in the comms log.
type MsgPriority uint8

const (
	MsgInfo      MsgPriority = iota // cyan
	MsgWarning                      // yellow
	MsgCritical                     // red
	MsgDiscovery                    // green
	MsgSocial                       // white
)

// Message is a single line in the comms log.
type Message struct {
	Text     string
	Priority MsgPriority
	Tick     uint64
}

// MessageLog is a bounded FIFO of wrapped message lines.
type MessageLog struct {
	Messages []Message
	Width    int
	maxSize  int
	tick     uint64
}

// NewMessageLog creates a log that keeps the most recent maxSize lines,
// wrapping text at width columns.
func NewMessageLog(maxSize, width int) *MessageLog {
	if width <= 0 {
		width = 55
	}
	if maxSize <= 0 {
		maxSize = 1
	}
	return &MessageLog{
		Messages: make([]Message, 0, maxSize),
		Width:    width,
		maxSize:  maxSize,
	}
}

// Stamp sets the tick recorded on subsequent messages.
func (l *MessageLog) Stamp(tick uint64) { l.tick = tick }

// Add appends a message, evicting the oldest lines when full.
func (l *MessageLog) Add(text string, priority MsgPriority) {
	for _, line := range wrapText(text, l.Width) {
		msg := Message{Text: line, Priority: priority, Tick: l.tick}
		if len(l.Messages) >= l.maxSize {
			copy(l.Messages, l.Messages[1:])
			l.Messages[len(l.Messages)-1] = msg
		} else {
			l.Messages = append(l.Messages, msg)
		}
	}
}

// Recent returns the last n lines (or fewer if the log is shorter).
func (l *MessageLog) Recent(n int) []Message {
	n = min(n, len(l.Messages))
	return l.Messages[len(l.Messages)-n:]
}

func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

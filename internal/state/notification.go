package state

import "sync"

// NotificationLevel represents the severity of a notification.
type NotificationLevel int

const (
	// LevelInfo represents informational notifications
	LevelInfo NotificationLevel = iota
	// LevelWarning represents warnings
	LevelWarning
	// LevelError represents failed background mutations
	LevelError
)

func (l NotificationLevel) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a single non-blocking message for the user.
type Notification struct {
	Level   NotificationLevel
	Message string
}

// NotificationState queues non-blocking notifications. Coordinators push
// into it from any goroutine; the CLI or TUI drains it.
type NotificationState struct {
	mu            sync.Mutex
	notifications []Notification
}

// NewNotificationState creates an empty queue.
func NewNotificationState() *NotificationState {
	return &NotificationState{notifications: []Notification{}}
}

// Add appends a notification with the given level and message.
func (s *NotificationState) Add(level NotificationLevel, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, Notification{Level: level, Message: message})
}

// Notify satisfies the coordinators' notifier interface with an error-level entry.
func (s *NotificationState) Notify(message string) {
	s.Add(LevelError, message)
}

// Clear removes all notifications.
func (s *NotificationState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = []Notification{}
}

// ClearLevel removes all notifications of a specific level.
func (s *NotificationState) ClearLevel(level NotificationLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := []Notification{}
	for _, n := range s.notifications {
		if n.Level != level {
			filtered = append(filtered, n)
		}
	}
	s.notifications = filtered
}

// All returns a copy of the current notifications.
func (s *NotificationState) All() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Drain returns all notifications and empties the queue.
func (s *NotificationState) Drain() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notifications
	s.notifications = []Notification{}
	return out
}

// HasAny returns true if there are any notifications.
func (s *NotificationState) HasAny() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications) > 0
}

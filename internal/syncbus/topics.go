package syncbus

import "time"

// Topics the display clients subscribe to.
const (
	// TopicConfigUpdated announces that display settings changed.
	TopicConfigUpdated = "sui-lan/config/update"

	// TopicNewInspiration nudges displays to re-fetch content.
	TopicNewInspiration = "sui-lan/inspiration/new"
)

// ConfigUpdatedEvent is published after a settings save. The write is the
// source of truth; this event is an at-most-once hint.
type ConfigUpdatedEvent struct {
	Status         string `json:"status"`
	Timestamp      string `json:"timestamp"`
	DeviceLocation string `json:"device_location"`
}

// InspirationEvent is the low-traffic heartbeat prompting a re-poll.
type InspirationEvent struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	RandomNumber int    `json:"randomNumber"`
}

// NewConfigUpdatedEvent builds the event for a settings change.
func NewConfigUpdatedEvent(deviceLocation string) ConfigUpdatedEvent {
	if deviceLocation == "" {
		deviceLocation = "unknown"
	}
	return ConfigUpdatedEvent{
		Status:         "Settings updated",
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		DeviceLocation: deviceLocation,
	}
}

// NewInspirationEvent builds the nudge event for a given roll.
func NewInspirationEvent(roll int) InspirationEvent {
	return InspirationEvent{
		Status:       "Random inspiration update triggered!",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		RandomNumber: roll,
	}
}

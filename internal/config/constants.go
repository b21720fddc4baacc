package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./musedeck.db"

	// DefaultMQTTClientIDPrefix prefixes the random suffix appended per connection
	DefaultMQTTClientIDPrefix = "musedeck_notifier"
)

package config

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 8188

	// DefaultDatabasePath is the default path for the library database
	DefaultDatabasePath = "./library.db"

	// DefaultLogOutput is where logs go unless LOG_OUTPUT says otherwise
	DefaultLogOutput = "stderr"
	DefaultLogLevel  = "info"

	// Default chart canvas size in pixels
	DefaultChartWidth  = 640
	DefaultChartHeight = 480
)

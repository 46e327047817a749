package logger

import "log/slog"

// Component-specific logger functions

// HTTP returns a logger for the HTTP surface
func HTTP() *slog.Logger {
	return WithComponent("http")
}

// Store returns a logger for database operations
func Store() *slog.Logger {
	return WithComponent("store")
}

// Task returns a logger for task operations
func Task() *slog.Logger {
	return WithComponent("task")
}

// Stats returns a logger for statistics aggregation
func Stats() *slog.Logger {
	return WithComponent("stats")
}

// Auth returns a logger for authentication operations
func Auth() *slog.Logger {
	return WithComponent("auth")
}

// CLI returns a logger for CLI operations
func CLI() *slog.Logger {
	return WithComponent("cli")
}

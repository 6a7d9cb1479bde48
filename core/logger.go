package core

// Logger logs messages with optional context args.
// Args may include an error, a map[string]interface{} of extras,
// or the session Identity of the affected user.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

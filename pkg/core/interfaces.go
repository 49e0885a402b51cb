package core

// Logger is the logging sink shared by the renderer, the CLI and the web server
type Logger interface {
	Printf(format string, args ...interface{})
}

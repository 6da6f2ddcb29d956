/*
Package log provides structured logging for clusterview using zerolog.

A single package-level zerolog.Logger is configured once by Init. Until then
it discards everything, so packages may create child loggers at construction
time without emitting output during tests.

# Configuration

	log.Init(log.Config{
		Level:      log.ParseLevel("debug"),
		JSONOutput: false,
		Output:     os.Stderr,
	})

Level filters messages below the threshold (debug, info, warn, error).
ParseLevel accepts any casing and falls back to info. JSONOutput selects
JSON lines instead of the human-readable console writer.

# Context Loggers

Long-lived components keep a child logger carrying their name:

	logger := log.WithComponent("dispatcher")
	logger.Warn().
		Str("kind", "pod").
		Str("request_id", id).
		Msg("Operation failed")

WithView tags the logger of a mounted poll view. Console output looks like:

	10:30AM WRN Operation failed component=dispatcher kind=pod request_id=...

Info and Warn log a bare message on the global logger for one-off messages
from the command layer.
*/
package log

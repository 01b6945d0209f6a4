// Package subprocess runs the gemini CLI as a child process and streams its
// combined stdout and stderr as lines.
//
// A Runner launches the process with stdin connected to the null device and
// both output streams wired to a single pipe. One reader goroutine scans the
// pipe and feeds an unbounded queue; the iterator returned by Runner.Stream
// drains that queue. When a line reports turn completion the reader waits a
// short grace period, asks the process to terminate, and stops reading.
//
// Cleanup is unconditional. However the iteration ends, the process is
// waited on with a bounded timeout and killed when it does not exit, the
// reader is joined, and any lines still queued are delivered.
package subprocess

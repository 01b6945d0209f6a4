package subprocess

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/wagiedev/gemini-mcp-go/internal/cli"
	"github.com/wagiedev/gemini-mcp-go/internal/config"
	"github.com/wagiedev/gemini-mcp-go/internal/errors"
)

// initialScanBufferSize is the starting buffer for reading CLI output lines.
// The scanner grows it up to the configured maximum line size.
const initialScanBufferSize = 64 * 1024

// errConsumerStopped reports that the caller stopped iterating.
var errConsumerStopped = stderrors.New("consumer stopped")

// Runner launches commands and streams their combined output.
type Runner struct {
	log         *slog.Logger
	timing      config.Timing
	maxLineSize int
}

// Compile-time verification that Runner implements the Streamer interface.
var _ config.Streamer = (*Runner)(nil)

// NewRunner creates a Runner. Zero-valued options fall back to defaults.
func NewRunner(log *slog.Logger, options *config.Options) *Runner {
	options = options.Normalize()

	return &Runner{
		log:         log.With("component", "subprocess_runner"),
		timing:      options.Timing,
		maxLineSize: options.MaxLineSize,
	}
}

// Stream launches cmd and returns a single-pass sequence of its output lines.
//
// The process starts when iteration begins. A launch failure is yielded as
// the only element, with an empty line. Lines are yielded in the order the
// process wrote them, with trailing whitespace removed. Stopping the
// iteration early, or cancelling ctx, asks the process to terminate; when
// ctx is cancelled its error is yielded last. A read failure, such as a line
// longer than the maximum line size, is yielded after the lines read before
// it.
//
// The process is always reaped before the iteration returns.
func (r *Runner) Stream(ctx context.Context, cmd config.Command) iter.Seq2[string, error] {
	var used atomic.Bool

	return func(yield func(string, error) bool) {
		if used.Swap(true) {
			yield("", errors.ErrStreamConsumed)

			return
		}

		p, err := r.start(cmd)
		if err != nil {
			r.log.Error("Failed to start CLI process", "error", err)
			yield("", err)

			return
		}

		// Covers panics in yield; the explicit calls below run first otherwise.
		defer p.shutdown(true)

		if err := p.forward(ctx, yield); err != nil {
			p.shutdown(true)

			if !stderrors.Is(err, errConsumerStopped) {
				yield("", err)
			}

			return
		}

		p.shutdown(false)

		residual := p.queue.drain()
		if len(residual) > 0 {
			p.log.Debug("Delivering residual lines", "count", len(residual))
		}

		for _, line := range residual {
			if !yield(line, nil) {
				return
			}
		}

		if err := p.readErr(); err != nil {
			yield("", err)
		}
	}
}

// start launches the child with stdout and stderr sharing one pipe and
// starts the reader and waiter goroutines.
func (r *Runner) start(cmd config.Command) (*process, error) {
	if cmd.Name == "" {
		return nil, errors.ErrEmptyCommand
	}

	path := cli.ResolveExecutable(r.log, cmd.Name)

	out, in, err := os.Pipe()
	if err != nil {
		return nil, &errors.LaunchError{Path: path, Err: fmt.Errorf("create output pipe: %w", err)}
	}

	//nolint:gosec // G204: Subprocess launching with dynamic args is expected for CLI invocation
	c := exec.Command(path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = nil
	c.Stdout = in
	c.Stderr = in

	if err := c.Start(); err != nil {
		_ = out.Close()
		_ = in.Close()

		if stderrors.Is(err, exec.ErrNotFound) || stderrors.Is(err, fs.ErrNotExist) {
			return nil, &errors.CLINotFoundError{Name: cmd.Name, Err: err}
		}

		return nil, &errors.LaunchError{Path: path, Err: err}
	}

	// The child holds its own copy of the write end; ours must be closed so
	// the reader sees EOF when the child exits.
	_ = in.Close()

	p := &process{
		log:        r.log.With("pid", c.Process.Pid),
		timing:     r.timing,
		cmd:        c,
		out:        out,
		queue:      newLineQueue(),
		exited:     make(chan struct{}),
		readerDone: make(chan struct{}),
	}

	p.log.Info("CLI process started", "path", path, "dir", cmd.Dir)

	go p.wait()
	go p.read(r.maxLineSize)

	return p, nil
}

// process is one running invocation. It is owned by a single Stream call.
type process struct {
	log    *slog.Logger
	timing config.Timing
	cmd    *exec.Cmd
	out    *os.File
	queue  *lineQueue

	exited     chan struct{} // closed once cmd.Wait returns
	waitErr    error         // valid after exited is closed
	readerDone chan struct{} // closed after the reader has closed the queue
	scanErr    error         // valid after readerDone is closed

	closeOutOnce sync.Once
	shutdownOnce sync.Once
}

// wait is the only caller of cmd.Wait.
func (p *process) wait() {
	p.waitErr = p.cmd.Wait()
	close(p.exited)
}

// read scans the output pipe into the queue until EOF or turn completion.
// It closes the queue exactly once on every path.
func (p *process) read(maxLineSize int) {
	defer close(p.readerDone)
	defer p.queue.close()
	defer p.closeOutput()

	count := 0

	err := scanLines(p.out, maxLineSize, func(line string) bool {
		p.queue.push(line)
		count++

		if !IsTurnCompleted(line) {
			return true
		}

		p.log.Debug("Turn completed, terminating CLI process", "grace_period", p.timing.GracePeriod)
		time.Sleep(p.timing.GracePeriod)
		p.terminate()

		return false
	})
	if err != nil && !stderrors.Is(err, os.ErrClosed) {
		p.log.Warn("Error reading CLI output", "error", err)
		p.scanErr = err
	}

	p.log.Debug("Output reader stopped", "line_count", count)
}

// forward yields queued lines until the end sentinel, or until the process
// has exited and the reader has finished.
func (p *process) forward(ctx context.Context, yield func(string, error) bool) error {
	ticker := time.NewTicker(p.timing.PollInterval)
	defer ticker.Stop()

	for {
		line, ok, closed := p.queue.tryPop()
		if ok {
			if !yield(line, nil) {
				p.log.Debug("Yield returned false, stopping iteration")

				return errConsumerStopped
			}

			continue
		}

		if closed {
			return nil
		}

		select {
		case <-p.queue.ready():
		case <-ticker.C:
			if p.hasExited() && p.readerFinished() {
				p.log.Debug("Process exited and reader finished without end marker")

				return nil
			}
		case <-ctx.Done():
			p.log.Debug("Context cancelled", "error", ctx.Err())

			return ctx.Err()
		}
	}
}

// shutdown reaps the process and joins the reader. Only the first call has
// any effect. When abandoned, the process is asked to terminate first.
func (p *process) shutdown(abandoned bool) {
	p.shutdownOnce.Do(func() {
		if abandoned {
			p.log.Debug("Line consumer went away, terminating CLI process")
			p.terminate()
		}

		p.awaitExit()
		p.joinReader()
	})
}

// awaitExit waits for the process with a bounded timeout, then kills it and
// waits without bound.
func (p *process) awaitExit() {
	timer := time.NewTimer(p.timing.ExitTimeout)
	defer timer.Stop()

	select {
	case <-p.exited:
	case <-timer.C:
		p.log.Warn("CLI process did not exit in time, killing", "timeout", p.timing.ExitTimeout)

		if err := p.cmd.Process.Kill(); err != nil && !stderrors.Is(err, os.ErrProcessDone) {
			p.log.Debug("Kill failed", "error", err)
		}

		<-p.exited
	}

	if p.waitErr != nil {
		exitCode := -1

		if exitErr, ok := stderrors.AsType[*exec.ExitError](p.waitErr); ok {
			exitCode = exitErr.ExitCode()
		}

		p.log.Debug("CLI process exited", "exit_code", exitCode, "error", p.waitErr)

		return
	}

	p.log.Info("CLI process exited successfully")
}

// joinReader waits for the reader with a bounded timeout. On timeout the
// output pipe is closed, which unblocks the reader's pending read.
func (p *process) joinReader() {
	timer := time.NewTimer(p.timing.JoinTimeout)
	defer timer.Stop()

	select {
	case <-p.readerDone:
	case <-timer.C:
		p.log.Warn("Output reader did not finish in time, closing output pipe", "timeout", p.timing.JoinTimeout)
		p.closeOutput()
	}
}

// terminate requests graceful exit unless the process is already reaped.
func (p *process) terminate() {
	if p.hasExited() {
		return
	}

	if err := terminateProcess(p.cmd.Process); err != nil && !stderrors.Is(err, os.ErrProcessDone) {
		p.log.Debug("Terminate request failed", "error", err)
	}
}

func (p *process) closeOutput() {
	p.closeOutOnce.Do(func() {
		_ = p.out.Close()
	})
}

func (p *process) hasExited() bool {
	select {
	case <-p.exited:
		return true
	default:
		return false
	}
}

// readErr returns the error that stopped the reader early, once the reader
// has finished.
func (p *process) readErr() error {
	if !p.readerFinished() {
		return nil
	}

	return p.scanErr
}

func (p *process) readerFinished() bool {
	select {
	case <-p.readerDone:
		return true
	default:
		return false
	}
}

// scanLines calls fn for each line of r with trailing whitespace removed,
// until EOF or fn returns false.
func scanLines(r io.Reader, maxLineSize int, fn func(line string) bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(initialScanBufferSize, maxLineSize)), maxLineSize)

	for scanner.Scan() {
		if !fn(strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)) {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan output: %w", err)
	}

	return nil
}

// Package geminimcp runs the Gemini CLI as a Model Context Protocol tool.
//
// The package exposes two layers. Stream is a bounded, cancellable adapter
// around a long-running subprocess: it yields the combined stdout and stderr
// of the process line by line, stops the process shortly after it reports
// turn completion, and always reaps it. NewServer and Run wrap that adapter
// in an MCP server with a single "gemini" tool.
//
// # Serving
//
// Run serves the gemini tool over stdin/stdout until the client disconnects:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := geminimcp.Run(ctx, geminimcp.WithLogger(logger)); err != nil {
//	    log.Fatal(err)
//	}
//
// # Streaming a command
//
// Stream can drive any line-oriented process:
//
//	cmd := geminimcp.Command{
//	    Name: "gemini",
//	    Args: []string{"--prompt", "hello", "-o", "stream-json"},
//	    Dir:  "/path/to/workspace",
//	}
//
//	for line, err := range geminimcp.Stream(ctx, cmd) {
//	    if err != nil {
//	        return err
//	    }
//
//	    fmt.Println(line)
//	}
//
// The process starts when iteration begins and the sequence can be ranged
// over once. Breaking out of the loop or cancelling ctx terminates the
// process.
//
// # Logging
//
// Logging is disabled by default. Use WithLogger to enable it:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	}))
//
// stdout carries the MCP transport, so loggers used with Run must not write
// to it.
package geminimcp

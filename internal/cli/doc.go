// Package cli provides executable discovery, prompt escaping, and command
// building for the gemini CLI binary.
//
// # Discovery
//
// ResolveExecutable turns a bare executable name into an absolute path when
// it can be found on PATH. Some shells keep same-named scripts and binaries
// side by side, and launching by absolute path removes the ambiguity. Names
// that cannot be resolved are returned unchanged so that the launch itself
// reports the failure.
//
// # Command Building
//
//	args := cli.BuildArgs(&cli.Request{Prompt: "hello", Model: "gemini-2.5-pro"})
//	// --prompt hello -o stream-json --model gemini-2.5-pro
//
// # Prompt Escaping
//
// On Windows the prompt is escaped with EscapeWindows before it is placed on
// the command line. PreparePrompt applies the escaping only on that platform.
package cli

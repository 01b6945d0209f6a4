package cli

// Request describes a single gemini invocation.
type Request struct {
	// Prompt is the task text passed with --prompt.
	Prompt string

	// Sandbox runs the CLI in sandbox mode.
	Sandbox bool

	// Model selects the model. Empty uses the CLI default.
	Model string

	// SessionID resumes an existing session. Empty starts a new one.
	SessionID string
}

// BuildArgs constructs the gemini command arguments, excluding the executable.
func BuildArgs(req *Request) []string {
	args := []string{
		"--prompt", req.Prompt,
		"-o", "stream-json",
	}

	if req.Sandbox {
		args = append(args, "--sandbox")
	}

	if req.Model != "" {
		args = append(args, "--model", req.Model)
	}

	if req.SessionID != "" {
		args = append(args, "--resume", req.SessionID)
	}

	return args
}

// Package runner executes submitted FlexTools module code in a
// subprocess against a live project and reports the outcome to the
// pattern learning store.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	kberr "flexkb/internal/errors"
	"flexkb/internal/learn"
)

// resultMarker separates harness noise from the JSON result on stdout.
const resultMarker = "===FLEXKB_RESULT_JSON==="

// DefaultTimeout bounds a job when the caller gives none.
const DefaultTimeout = 300 * time.Second

// Job is one execution request.
type Job struct {
	ID           string
	Code         string
	Project      string
	WriteEnabled bool
	Timeout      time.Duration
}

// Message is one captured report line.
type Message struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Ref     any    `json:"ref,omitempty"`
}

// Summary aggregates report counts for a run.
type Summary struct {
	InfoCount     int `json:"info_count"`
	WarningCount  int `json:"warning_count"`
	ErrorCount    int `json:"error_count"`
	TotalMessages int `json:"total_messages"`
}

// Result is the structured outcome of a job. Timeout and harness
// failures produce a Result, not an error.
type Result struct {
	JobID        string    `json:"job_id"`
	Success      bool      `json:"success"`
	Project      string    `json:"project,omitempty"`
	WriteEnabled bool      `json:"write_enabled"`
	Messages     []Message `json:"messages,omitempty"`
	Summary      *Summary  `json:"summary,omitempty"`
	Error        string    `json:"error,omitempty"`
	Warnings     []string  `json:"warnings,omitempty"`
	ExitCode     int       `json:"exit_code"`
	Stderr       string    `json:"stderr,omitempty"`
	RawOutput    string    `json:"raw_output,omitempty"`
	TimedOut     bool      `json:"timed_out,omitempty"`
}

// harnessResult mirrors the JSON the Python harness prints.
type harnessResult struct {
	Success  bool      `json:"success"`
	Project  string    `json:"project"`
	Messages []Message `json:"messages"`
	Summary  *Summary  `json:"summary"`
	Error    string    `json:"error"`
}

// Runner executes jobs with the configured interpreter.
type Runner struct {
	interpreter string
	timeout     time.Duration
	store       *learn.Store
	logger      *slog.Logger
}

// New builds a runner. store may be nil to skip outcome recording.
func New(interpreter string, timeout time.Duration, store *learn.Store, logger *slog.Logger) *Runner {
	if interpreter == "" {
		interpreter = "python3"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{interpreter: interpreter, timeout: timeout, store: store, logger: logger}
}

// Run executes one job. The subprocess is killed when the timeout
// expires and the job reports a timed-out result; there is no retry.
func (r *Runner) Run(ctx context.Context, job Job) Result {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	timeout := job.Timeout
	if timeout <= 0 {
		timeout = r.timeout
	}

	result := Result{
		JobID:        job.ID,
		Project:      job.Project,
		WriteEnabled: job.WriteEnabled,
		Warnings:     modeWarnings(job.WriteEnabled),
	}

	script, err := os.CreateTemp("", "flexkb-module-*.py")
	if err != nil {
		result.Error = fmt.Sprintf("failed to create temporary script: %v", err)
		return result
	}
	defer os.Remove(script.Name())

	if _, err := script.WriteString(buildScript(job)); err != nil {
		script.Close()
		result.Error = fmt.Sprintf("failed to write temporary script: %v", err)
		return result
	}
	script.Close()

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r.logger.Info("Running module",
		"job_id", job.ID, "project", job.Project, "write_enabled", job.WriteEnabled)

	cmd := exec.CommandContext(runCtx, r.interpreter, script.Name())
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	result.Stderr = stderr.String()
	result.ExitCode = -1
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if runCtx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.Error = kberr.New(kberr.Timeout,
			fmt.Sprintf("execution timed out after %s", timeout)).Error()
		r.record(job, result)
		return result
	}

	parseMarkerOutput(stdout.String(), &result)
	if result.Error == "" && runErr != nil && !result.Success {
		result.Error = fmt.Sprintf("subprocess failed: %v", runErr)
	}

	r.record(job, result)
	r.logger.Info("Module finished",
		"job_id", job.ID, "success", result.Success, "exit_code", result.ExitCode)
	return result
}

// parseMarkerOutput extracts the harness JSON following the marker.
func parseMarkerOutput(stdout string, result *Result) {
	idx := strings.Index(stdout, resultMarker)
	if idx < 0 {
		result.Error = "no result marker found in output"
		result.RawOutput = stdout
		return
	}

	payload := strings.TrimSpace(stdout[idx+len(resultMarker):])
	var hr harnessResult
	if err := json.Unmarshal([]byte(payload), &hr); err != nil {
		result.Error = fmt.Sprintf("failed to parse result JSON: %v", err)
		result.RawOutput = stdout
		return
	}

	result.Success = hr.Success
	result.Messages = hr.Messages
	result.Summary = hr.Summary
	if hr.Error != "" {
		result.Error = hr.Error
	}
}

// record reports the outcome to the learn store.
func (r *Runner) record(job Job, result Result) {
	if r.store == nil {
		return
	}
	outcome := learn.Outcome{
		Code:    job.Code,
		Success: result.Success,
	}
	if !result.Success {
		outcome.ErrorMsg = result.Error
		outcome.ErrorKind = errorKind(result)
	}
	if err := r.store.Record(outcome); err != nil {
		r.logger.Warn("Failed to record run outcome", "job_id", job.ID, "error", err.Error())
	}
}

// errorKind derives a coarse classification for the failure histogram.
func errorKind(result Result) string {
	if result.TimedOut {
		return "Timeout"
	}
	// Python tracebacks end with "SomeError: detail"; take the
	// exception class of the last such line.
	lines := strings.Split(strings.TrimSpace(result.Error), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if name, _, ok := strings.Cut(line, ":"); ok {
			name = strings.TrimSpace(name)
			if name != "" && !strings.ContainsAny(name, " \t") && strings.HasSuffix(name, "Error") {
				return name
			}
		}
	}
	return "ExecutionError"
}

func modeWarnings(writeEnabled bool) []string {
	if writeEnabled {
		return []string{
			"*** WRITE MODE ENABLED ***",
			"Changes WILL be made to the database!",
			"Make sure you have a backup of your project!",
		}
	}
	return []string{
		"Running in READ-ONLY mode (dry-run)",
		"No changes will be made to the database.",
		"Set write_enabled=True to enable modifications.",
	}
}

// buildScript prepends the job configuration to the harness. Strings
// are embedded with Go quoting, which Python string literals accept.
func buildScript(job Job) string {
	write := "False"
	if job.WriteEnabled {
		write = "True"
	}
	return fmt.Sprintf("PROJECT_NAME = %q\nWRITE_ENABLED = %s\nMODULE_CODE = %q\n\n%s",
		job.Project, write, job.Code, harnessScript)
}

// Package errors provides structured error types for vqsweep operations.
package errors

import (
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindConfiguration represents configuration validation errors, fatal before any execution.
	KindConfiguration ErrorKind = iota
	// KindMissingTool represents a required external tool that is unavailable.
	KindMissingTool
	// KindNoFilesFound represents no suitable source videos found.
	KindNoFilesFound
	// KindSourceProbe represents a failure probing a source asset.
	KindSourceProbe
	// KindStageFailure represents a nonzero exit from an identified chain stage.
	KindStageFailure
	// KindTimeout represents a chain exceeding its wall-clock budget.
	KindTimeout
	// KindMissingOutput represents an expected output file that does not exist.
	KindMissingOutput
	// KindEmptyOutput represents an expected output file with zero size.
	KindEmptyOutput
	// KindReportMissing represents a quality report file that does not exist.
	KindReportMissing
	// KindReportUnparsable represents a quality report that could not be decoded.
	KindReportUnparsable
	// KindReportEmpty represents a quality report with zero frame entries.
	KindReportEmpty
	// KindBitrateProbe represents a failed bitrate probe against an artifact.
	KindBitrateProbe
	// KindCommand represents external command execution errors.
	KindCommand
	// KindIO represents I/O errors.
	KindIO
	// KindCancelled represents user-cancelled operations.
	KindCancelled
	// KindInternal represents invariant violations inside the pipeline.
	KindInternal
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "Configuration error"
	case KindMissingTool:
		return "Missing tool"
	case KindNoFilesFound:
		return "No files found"
	case KindSourceProbe:
		return "Source probe error"
	case KindStageFailure:
		return "Stage failure"
	case KindTimeout:
		return "Timeout"
	case KindMissingOutput:
		return "Missing output"
	case KindEmptyOutput:
		return "Empty output"
	case KindReportMissing:
		return "Report missing"
	case KindReportUnparsable:
		return "Report unparsable"
	case KindReportEmpty:
		return "Report empty"
	case KindBitrateProbe:
		return "Bitrate probe error"
	case KindCommand:
		return "Command error"
	case KindIO:
		return "I/O error"
	case KindCancelled:
		return "Operation cancelled"
	case KindInternal:
		return "Internal error"
	default:
		return "Unknown error"
	}
}

// CommandErrorKind represents the type of command error.
type CommandErrorKind int

const (
	// CommandStart means the command failed to start.
	CommandStart CommandErrorKind = iota
	// CommandWait means waiting for the command failed.
	CommandWait
	// CommandFailed means the command returned non-zero exit status.
	CommandFailed
)

// CommandError represents an error from executing an external command.
type CommandError struct {
	Command    string
	Kind       CommandErrorKind
	ExitCode   int
	Stderr     string
	Underlying error
}

func (e *CommandError) Error() string {
	switch e.Kind {
	case CommandStart:
		return fmt.Sprintf("failed to execute %s: %v", e.Command, e.Underlying)
	case CommandWait:
		return fmt.Sprintf("failed to wait for %s: %v", e.Command, e.Underlying)
	case CommandFailed:
		if e.Stderr != "" {
			return fmt.Sprintf("command %s failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("command %s failed with exit code %d", e.Command, e.ExitCode)
	default:
		return fmt.Sprintf("command %s error: %v", e.Command, e.Underlying)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Underlying
}

// CoreError is the main error type for vqsweep operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewConfigurationError creates a configuration validation error.
func NewConfigurationError(message string) *CoreError {
	return &CoreError{Kind: KindConfiguration, Message: message}
}

// NewMissingToolError creates an error naming the missing tool and the feature
// that needs it.
func NewMissingToolError(tool, feature string) *CoreError {
	return &CoreError{Kind: KindMissingTool, Message: fmt.Sprintf("%s is required for %s but was not found", tool, feature)}
}

// NewNoFilesFoundError creates an error for when no source videos are found.
func NewNoFilesFoundError(dir string) *CoreError {
	return &CoreError{Kind: KindNoFilesFound, Message: fmt.Sprintf("no suitable video files found in %s", dir)}
}

// NewSourceProbeError creates an error for a failed source probe.
func NewSourceProbeError(source string, underlying error) *CoreError {
	return &CoreError{Kind: KindSourceProbe, Message: fmt.Sprintf("could not probe %s", source), Underlying: underlying}
}

// NewStageFailureError creates an error attributed to a single chain stage.
func NewStageFailureError(stage string, index int, cmdErr *CommandError) *CoreError {
	return &CoreError{Kind: KindStageFailure, Message: fmt.Sprintf("stage %d (%s) failed", index, stage), Underlying: cmdErr}
}

// NewTimeoutError creates an error for a chain that exceeded its budget.
func NewTimeoutError(budget time.Duration) *CoreError {
	return &CoreError{Kind: KindTimeout, Message: fmt.Sprintf("chain did not finish within %s", budget)}
}

// NewMissingOutputError creates an error for an absent expected output.
func NewMissingOutputError(path string) *CoreError {
	return &CoreError{Kind: KindMissingOutput, Message: fmt.Sprintf("expected output %s does not exist", path)}
}

// NewEmptyOutputError creates an error for a zero-byte expected output.
func NewEmptyOutputError(path string) *CoreError {
	return &CoreError{Kind: KindEmptyOutput, Message: fmt.Sprintf("expected output %s is empty", path)}
}

// NewReportMissingError creates an error for an absent quality report.
func NewReportMissingError(path string) *CoreError {
	return &CoreError{Kind: KindReportMissing, Message: fmt.Sprintf("quality report %s does not exist", path)}
}

// NewReportUnparsableError creates an error for an undecodable quality report.
func NewReportUnparsableError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindReportUnparsable, Message: fmt.Sprintf("could not parse quality report %s", path), Underlying: underlying}
}

// NewReportEmptyError creates an error for a quality report with no frames.
func NewReportEmptyError(path string) *CoreError {
	return &CoreError{Kind: KindReportEmpty, Message: fmt.Sprintf("quality report %s contains no frame entries", path)}
}

// NewBitrateProbeError creates an error for a failed bitrate probe.
func NewBitrateProbeError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindBitrateProbe, Message: fmt.Sprintf("could not probe bitrate of %s", path), Underlying: underlying}
}

// NewCommandError creates a new command execution error.
func NewCommandError(cmd string, kind CommandErrorKind, underlying error) *CoreError {
	cmdErr := &CommandError{
		Command:    cmd,
		Kind:       kind,
		Underlying: underlying,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewCommandStartError creates an error for when a command fails to start.
func NewCommandStartError(cmd string, err error) *CoreError {
	return NewCommandError(cmd, CommandStart, err)
}

// NewCommandWaitError creates an error for when waiting for a command fails.
func NewCommandWaitError(cmd string, err error) *CoreError {
	return NewCommandError(cmd, CommandWait, err)
}

// NewCommandFailedError creates an error for when a command returns non-zero exit status.
func NewCommandFailedError(cmd string, exitCode int, stderr string) *CoreError {
	cmdErr := &CommandError{
		Command:  cmd,
		Kind:     CommandFailed,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewIOError creates a new I/O error.
func NewIOError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindIO, Message: message, Underlying: underlying}
}

// NewCancelledError creates an error for user-cancelled operations.
func NewCancelledError() *CoreError {
	return &CoreError{Kind: KindCancelled, Message: "operation was cancelled by the user"}
}

// NewInternalError creates an error for a violated pipeline invariant.
func NewInternalError(message string) *CoreError {
	return &CoreError{Kind: KindInternal, Message: message}
}

// IsKind checks if the error has the specified kind.
func IsKind(err error, kind ErrorKind) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost CoreError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind, true
	}
	return 0, false
}

// IsCancelled checks if the error is a cancellation error.
func IsCancelled(err error) bool {
	return IsKind(err, KindCancelled)
}

// IsMissingTool checks if the error is a missing-tool error.
func IsMissingTool(err error) bool {
	return IsKind(err, KindMissingTool)
}

// WrapExecError wraps an exec.ExitError into a CoreError.
func WrapExecError(cmd string, err error, stderr string) *CoreError {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return NewCommandFailedError(cmd, exitErr.ExitCode(), stderr)
	}
	return NewCommandStartError(cmd, err)
}

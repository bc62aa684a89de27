// Package errors provides the error kinds the editor uses to decide how a failure is
// surfaced to the user.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Standard errors package errors that we re-export for convenience
var (
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	DialogCancelled
	// File error kinds
	FileNotFound
	FileAccessDenied
	FileNotText
	FileReadFailed
	FileWriteFailed
	DirectoryReadFailed
	NoActiveFile
	NoActiveFolder
	// Process error kinds
	ProcessSpawnFailed
	// Metrics error kinds
	MetricsUnavailable
	// Config error kinds
	InvalidConfig
)

var kindNames = map[ErrorKind]string{
	Unknown:             "unknown",
	DialogCancelled:     "dialog cancelled",
	FileNotFound:        "file not found",
	FileAccessDenied:    "file access denied",
	FileNotText:         "file is not text",
	FileReadFailed:      "file read failed",
	FileWriteFailed:     "file write failed",
	DirectoryReadFailed: "directory read failed",
	NoActiveFile:        "no active file",
	NoActiveFolder:      "no active folder",
	ProcessSpawnFailed:  "process spawn failed",
	MetricsUnavailable:  "metrics unavailable",
	InvalidConfig:       "invalid configuration",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Common error constants for frequently occurring errors
var (
	ErrCancelled      = &ApplicationError{msg: "dialog cancelled", kind: DialogCancelled}
	ErrNoActiveFile   = &ApplicationError{msg: "no file is associated with the buffer", kind: NoActiveFile}
	ErrNoActiveFolder = &ApplicationError{msg: "no folder is open", kind: NoActiveFolder}
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *ApplicationError) Unwrap() error {
	return e.err
}

func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// SpawnError represents a failure to start an external program
type SpawnError struct {
	ApplicationError
	command string
}

// NewSpawnError creates a new process spawn error
func NewSpawnError(command string, err error) *SpawnError {
	return &SpawnError{
		ApplicationError: ApplicationError{
			msg:  "failed to start",
			err:  err,
			kind: ProcessSpawnFailed,
		},
		command: command,
	}
}

func (e *SpawnError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s %s: %v", e.msg, e.command, e.err)
	}
	return fmt.Sprintf("%s %s", e.msg, e.command)
}

// Command returns the program that failed to start
func (e *SpawnError) Command() string {
	return e.command
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidConfig,
		},
		param: param,
	}
}

func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{msg: msg, kind: Unknown}
}

// NewKind creates a new error of the given kind
func NewKind(kind ErrorKind, msg string, err error) error {
	return &ApplicationError{msg: msg, err: err, kind: kind}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{msg: msg, err: err, kind: KindOf(err)}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{msg: fmt.Sprintf(format, args...), err: err, kind: KindOf(err)}
}

// FromOSError classifies an error returned by the os package for path. fallback is
// used when the cause is neither a missing file nor a permission problem.
func FromOSError(msg, path string, fallback ErrorKind, err error) *FileError {
	kind := fallback
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = FileNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = FileAccessDenied
	}
	return NewFileError(msg, path, kind, err)
}

type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first classified error in err's chain,
// or Unknown.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsCancelled reports whether err means the user dismissed a dialog.
func IsCancelled(err error) bool {
	return KindOf(err) == DialogCancelled
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	return KindOf(err) == FileNotFound
}

// IsFileAccessDenied checks if the error is a file access denied error
func IsFileAccessDenied(err error) bool {
	return KindOf(err) == FileAccessDenied
}

// IsNotText checks if the error reports undecodable file content
func IsNotText(err error) bool {
	return KindOf(err) == FileNotText
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

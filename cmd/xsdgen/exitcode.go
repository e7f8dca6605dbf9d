package main

import (
	"errors"

	"github.com/agentflare-ai/go-xsdgen/codegen"
	"github.com/agentflare-ai/go-xsdgen/config"
)

// Exit codes
const (
	ExitSuccess           = 0  // Generation completed
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic
	ExitConfigError       = 10 // Missing or invalid project configuration
	ExitLookupError       = 20 // Requested root element does not exist
	ExitUnsupported       = 21 // Schema construct the generator does not model
	ExitUnmappedPrimitive = 22 // Built-in type without a C# mapping
)

var (
	// errInvalidConfig marks configuration problems found after loading
	errInvalidConfig = errors.New("invalid configuration")

	// errUsage marks command line errors
	errUsage = errors.New("usage error")
)

// exitCodeForError maps an error returned by a command to the process exit
// code
func exitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, errUsage):
		return ExitUsageError
	case errors.Is(err, config.ErrConfigNotFound), errors.Is(err, errInvalidConfig):
		return ExitConfigError
	case errors.Is(err, codegen.ErrRootNotFound):
		return ExitLookupError
	case codegen.IsUnsupported(err):
		return ExitUnsupported
	case errors.Is(err, codegen.ErrUnmappedPrimitive):
		return ExitUnmappedPrimitive
	}
	return ExitGeneralError
}

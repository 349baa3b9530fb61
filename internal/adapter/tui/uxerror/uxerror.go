// Package uxerror translates raw errors into user-friendly messages with
// recovery hints for the TUI and the command line.
package uxerror

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"dorkboard/internal/adapter/tui/theme"
	"dorkboard/internal/domain"
)

// FriendlyError is a user-facing error with suggestions for recovery.
type FriendlyError struct {
	Title   string   // short heading, e.g. "No Target"
	Message string   // one-liner explanation
	Hints   []string // actionable recovery suggestions
	Raw     string   // original error text (for debug)
}

// Render formats the FriendlyError as a short multi-line block.
func (fe FriendlyError) Render() string {
	var sb strings.Builder
	sb.WriteString(fe.Title)
	if fe.Message != "" {
		sb.WriteString("\n  ")
		sb.WriteString(fe.Message)
	}
	if len(fe.Hints) > 0 {
		sb.WriteString("\n  Suggestions:")
		for _, h := range fe.Hints {
			sb.WriteString(fmt.Sprintf("\n    %s %s", theme.SymbolBullet, h))
		}
	}
	return sb.String()
}

type errorPattern struct {
	match   func(err error) bool
	produce func(err error) FriendlyError
}

var patterns = []errorPattern{
	// Domain sentinels first so errors.Is works through wrapping.
	{
		match: isErr(domain.ErrEmptyTarget),
		produce: constantError("No Target",
			"Enter a domain to generate its search links.",
			[]string{"Type a domain such as example.com and press Enter"}),
	},
	{
		match: isErr(domain.ErrCategoryNotFound),
		produce: func(err error) FriendlyError {
			return FriendlyError{
				Title:   "Unknown Category",
				Message: err.Error(),
				Hints:   []string{"Run 'dorkboard catalog list' to see category IDs"},
				Raw:     err.Error(),
			}
		},
	},
	// Duplicates also match ErrCatalogInvalid; the specific title wins.
	{
		match: isErr(domain.ErrDuplicate),
		produce: func(err error) FriendlyError {
			return FriendlyError{
				Title:   "Duplicate Catalog ID",
				Message: err.Error(),
				Hints:   []string{"Category and dork IDs must be unique across the catalog"},
				Raw:     err.Error(),
			}
		},
	},
	{
		match: isErr(domain.ErrCatalogInvalid),
		produce: func(err error) FriendlyError {
			return FriendlyError{
				Title:   "Invalid Catalog",
				Message: err.Error(),
				Hints: []string{
					"Run 'dorkboard catalog validate <file>' for details",
					"Every template needs a {target} placeholder",
					"Unset catalog.path to use the built-in catalog",
				},
				Raw: err.Error(),
			}
		},
	},
	{
		match: isErr(domain.ErrConfigLoad),
		produce: func(err error) FriendlyError {
			return FriendlyError{
				Title:   "Configuration Error",
				Message: err.Error(),
				Hints:   []string{"Check the file passed with --config or DORKBOARD_CONFIG"},
				Raw:     err.Error(),
			}
		},
	},
	{
		match: isErr(fs.ErrNotExist),
		produce: constantError("File Not Found",
			"A configured file does not exist.",
			[]string{"Check catalog.path and --config", "Relative catalog paths resolve against the config file"}),
	},
	{
		match: isErr(fs.ErrPermission),
		produce: constantError("Permission Denied",
			"A configured file could not be read.",
			[]string{"Check file ownership and mode (config files must not be world-writable)"}),
	},
	// Listener failures surface as plain net errors.
	{
		match: containsAny("address already in use", "bind:"),
		produce: constantError("Address In Use",
			"The server could not bind its listen address.",
			[]string{"Pick another port with server.addr or DORKBOARD_SERVER_ADDR"}),
	},
}

// Humanize converts a raw error into a FriendlyError with recovery hints.
func Humanize(err error) FriendlyError {
	if err == nil {
		return FriendlyError{Title: "Unknown Error", Raw: "nil"}
	}
	for _, p := range patterns {
		if p.match(err) {
			return p.produce(err)
		}
	}
	return FriendlyError{
		Title:   "Unexpected Error",
		Message: err.Error(),
		Hints:   []string{"Try again", "Run with --log-level debug for more details"},
		Raw:     err.Error(),
	}
}

func isErr(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

// containsAny returns a match func that checks if the error string contains
// any of the given substrings (case-insensitive).
func containsAny(substrs ...string) func(error) bool {
	return func(err error) bool {
		lower := strings.ToLower(err.Error())
		for _, s := range substrs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

// constantError returns a produce func that always returns the same FriendlyError.
func constantError(title, message string, hints []string) func(error) FriendlyError {
	return func(err error) FriendlyError {
		return FriendlyError{
			Title:   title,
			Message: message,
			Hints:   hints,
			Raw:     err.Error(),
		}
	}
}

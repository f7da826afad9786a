package pathutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant                     = "~"
	tildeForwardSlashPrefixConstant         = "~/"
	homeDirectoryUnavailableMessageConstant = "home directory unavailable"
	homeDirectoryLookupTemplateConstant     = "%w: %w"
)

var tildeWithPathSeparatorPrefix = tildeSymbolConstant + string(os.PathSeparator)

// ErrHomeDirectoryUnavailable indicates a home shorthand could not be resolved.
var ErrHomeDirectoryUnavailable = errors.New(homeDirectoryUnavailableMessageConstant)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander converts user home shortcuts to absolute paths.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewHomeExpander constructs a HomeExpander using the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// HasHomeShorthand reports whether the path starts with a home directory shorthand.
func HasHomeShorthand(candidatePath string) bool {
	if candidatePath == tildeSymbolConstant {
		return true
	}
	return strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant) || strings.HasPrefix(candidatePath, tildeWithPathSeparatorPrefix)
}

// Expand resolves leading tilde prefixes to the user's home directory and leaves the
// path untouched when the home directory cannot be determined.
func (expander *HomeExpander) Expand(candidatePath string) string {
	expandedPath, expansionError := expander.Resolve(candidatePath)
	if expansionError != nil {
		return candidatePath
	}
	return expandedPath
}

// Resolve resolves leading tilde prefixes to the user's home directory and reports
// lookup failures for paths that need the home directory.
func (expander *HomeExpander) Resolve(candidatePath string) (string, error) {
	if expander == nil {
		return candidatePath, nil
	}
	if !HasHomeShorthand(candidatePath) {
		return candidatePath, nil
	}

	resolvedHomeDirectory, resolutionError := expander.resolveHomeDirectory()
	if resolutionError != nil {
		return candidatePath, resolutionError
	}

	if candidatePath == tildeSymbolConstant {
		return resolvedHomeDirectory, nil
	}

	if strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant) {
		relativePath := strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant)
		return filepath.Join(resolvedHomeDirectory, relativePath), nil
	}

	relativePath := strings.TrimPrefix(candidatePath, tildeWithPathSeparatorPrefix)
	return filepath.Join(resolvedHomeDirectory, relativePath), nil
}

func (expander *HomeExpander) resolveHomeDirectory() (string, error) {
	expander.initializationGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
		if expander.homeDirectoryError == nil && len(expander.homeDirectory) == 0 {
			expander.homeDirectoryError = ErrHomeDirectoryUnavailable
		}
	})
	if expander.homeDirectoryError != nil {
		if errors.Is(expander.homeDirectoryError, ErrHomeDirectoryUnavailable) {
			return "", expander.homeDirectoryError
		}
		return "", fmt.Errorf(homeDirectoryLookupTemplateConstant, ErrHomeDirectoryUnavailable, expander.homeDirectoryError)
	}
	return expander.homeDirectory, nil
}

package platform

import (
	"context"
	"errors"
	"regexp"
)

const (
	environmentNotConfiguredMessageConstant = "platform environment not configured"
)

// ErrEnvironmentNotConfigured indicates a Detector was built without an Environment.
var ErrEnvironmentNotConfigured = errors.New(environmentNotConfiguredMessageConstant)

var (
	windowsNamePattern = regexp.MustCompile(`(?i)windows`)
	linuxNamePattern   = regexp.MustCompile(`(?i)linux`)
	macNamePattern     = regexp.MustCompile(`(?i)(mac|darwin)`)
)

// Detect classifies an operating system name. Patterns are applied in order:
// Windows, Linux, then Mac; any other name is TagOther. TagUnix is never produced.
func Detect(operatingSystemName string) Tag {
	switch {
	case windowsNamePattern.MatchString(operatingSystemName):
		return TagWindows
	case linuxNamePattern.MatchString(operatingSystemName):
		return TagLinux
	case macNamePattern.MatchString(operatingSystemName):
		return TagMac
	default:
		return TagOther
	}
}

// Detector answers platform questions about an Environment.
type Detector struct {
	environment Environment
}

// Description summarizes a host for display.
type Description struct {
	OperatingSystemName    string
	Tag                    Tag
	OperatingSystemVersion string
	Architecture           string
	Shell                  ShellSpecification
	Supported              bool
}

// NewDetector constructs a Detector reading the supplied environment.
func NewDetector(environment Environment) (*Detector, error) {
	if environment == nil {
		return nil, ErrEnvironmentNotConfigured
	}
	return &Detector{environment: environment}, nil
}

// Detect classifies the environment's operating system name.
func (detector *Detector) Detect() Tag {
	return Detect(detector.environment.OperatingSystemName())
}

// IsWindows reports whether the environment is classified as Windows.
func (detector *Detector) IsWindows() bool {
	return detector.Detect() == TagWindows
}

// IsMac reports whether the environment is classified as Mac OS.
func (detector *Detector) IsMac() bool {
	return detector.Detect() == TagMac
}

// IsLinux reports whether the environment is classified as Linux.
func (detector *Detector) IsLinux() bool {
	return detector.Detect() == TagLinux
}

// Describe gathers the name, tag, version, architecture, and shell of the environment.
func (detector *Detector) Describe(executionContext context.Context) (Description, error) {
	operatingSystemName := detector.environment.OperatingSystemName()
	tag := Detect(operatingSystemName)

	version, versionError := detector.environment.OperatingSystemVersion(executionContext)
	if versionError != nil {
		return Description{}, versionError
	}

	architecture, architectureError := detector.environment.Architecture(executionContext)
	if architectureError != nil {
		return Description{}, architectureError
	}

	description := Description{
		OperatingSystemName:    operatingSystemName,
		Tag:                    tag,
		OperatingSystemVersion: version,
		Architecture:           architecture,
	}

	if shell, shellError := tag.Shell(); shellError == nil {
		description.Shell = shell
		description.Supported = true
	}

	return description, nil
}

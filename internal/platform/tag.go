package platform

import (
	"errors"
	"fmt"
	"strings"
)

const (
	tagWindowsNameConstant              = "windows"
	tagMacNameConstant                  = "mac"
	tagLinuxNameConstant                = "linux"
	tagUnixNameConstant                 = "unix"
	tagOtherNameConstant                = "other"
	tagWindowsDisplayNameConstant       = "Windows"
	tagMacDisplayNameConstant           = "Mac OS"
	tagLinuxDisplayNameConstant         = "Linux"
	tagUnixDisplayNameConstant          = "Unix"
	tagOtherDisplayNameConstant         = "Other"
	windowsShellExecutableConstant      = "cmd.exe"
	windowsShellFlagConstant            = "/c"
	bashShellExecutableConstant         = "/bin/bash"
	bashShellFlagConstant               = "-c"
	windowsLineSeparatorConstant        = "\r\n"
	defaultLineSeparatorConstant        = "\n"
	unsupportedPlatformMessageConstant  = "unsupported operating system"
	unsupportedPlatformTemplateConstant = "%w: %s"
	unknownTagNameTemplateConstant      = "unknown platform %q (expected one of %s)"
	tagNameListSeparatorConstant        = ", "
	invalidTagDisplayNameConstant       = "Invalid"
)

// ErrUnsupportedPlatform indicates the platform does not map to a runnable shell configuration.
var ErrUnsupportedPlatform = errors.New(unsupportedPlatformMessageConstant)

// Tag is the closed classification of a host operating system.
type Tag int

// Supported platform tags.
const (
	TagOther Tag = iota
	TagWindows
	TagMac
	TagLinux
	TagUnix
)

// ShellSpecification pairs a shell executable with the flag that makes it run a command string.
type ShellSpecification struct {
	ExecutablePath string
	InvocationFlag string
}

var windowsShell = ShellSpecification{ExecutablePath: windowsShellExecutableConstant, InvocationFlag: windowsShellFlagConstant}

var bashShell = ShellSpecification{ExecutablePath: bashShellExecutableConstant, InvocationFlag: bashShellFlagConstant}

var tagNames = map[Tag]string{
	TagWindows: tagWindowsNameConstant,
	TagMac:     tagMacNameConstant,
	TagLinux:   tagLinuxNameConstant,
	TagUnix:    tagUnixNameConstant,
	TagOther:   tagOtherNameConstant,
}

// TagNames lists the identifiers accepted by ParseTag in declaration order.
func TagNames() []string {
	return []string{tagWindowsNameConstant, tagMacNameConstant, tagLinuxNameConstant, tagUnixNameConstant, tagOtherNameConstant}
}

// ParseTag resolves a case-insensitive tag identifier such as "linux".
func ParseTag(name string) (Tag, error) {
	normalizedName := strings.ToLower(strings.TrimSpace(name))
	for tag, tagName := range tagNames {
		if tagName == normalizedName {
			return tag, nil
		}
	}
	return TagOther, fmt.Errorf(unknownTagNameTemplateConstant, name, strings.Join(TagNames(), tagNameListSeparatorConstant))
}

// Name returns the lowercase identifier of the tag.
func (tag Tag) Name() string {
	if name, exists := tagNames[tag]; exists {
		return name
	}
	return tagOtherNameConstant
}

// String returns the display name of the tag.
func (tag Tag) String() string {
	switch tag {
	case TagWindows:
		return tagWindowsDisplayNameConstant
	case TagMac:
		return tagMacDisplayNameConstant
	case TagLinux:
		return tagLinuxDisplayNameConstant
	case TagUnix:
		return tagUnixDisplayNameConstant
	case TagOther:
		return tagOtherDisplayNameConstant
	default:
		return invalidTagDisplayNameConstant
	}
}

// Shell selects the shell specification for the tag.
func (tag Tag) Shell() (ShellSpecification, error) {
	switch tag {
	case TagWindows:
		return windowsShell, nil
	case TagMac, TagLinux, TagUnix:
		return bashShell, nil
	default:
		return ShellSpecification{}, fmt.Errorf(unsupportedPlatformTemplateConstant, ErrUnsupportedPlatform, tag)
	}
}

// Supported reports whether the tag maps to a shell specification.
func (tag Tag) Supported() bool {
	_, shellError := tag.Shell()
	return shellError == nil
}

// LineSeparator returns the line terminator native to the tag.
func (tag Tag) LineSeparator() string {
	if tag == TagWindows {
		return windowsLineSeparatorConstant
	}
	return defaultLineSeparatorConstant
}

// Prefix returns the shell executable followed by its invocation flag.
func (specification ShellSpecification) Prefix() []string {
	return []string{specification.ExecutablePath, specification.InvocationFlag}
}

package platform

import (
	"context"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// Environment exposes the host state consulted when selecting a shell and resolving paths.
type Environment interface {
	// OperatingSystemName returns the raw operating system name, for example "linux" or "Windows 10".
	OperatingSystemName() string
	// HomeDirectory returns the current user's home directory.
	HomeDirectory() (string, error)
	// OperatingSystemVersion returns the kernel or platform version.
	OperatingSystemVersion(executionContext context.Context) (string, error)
	// Architecture returns the machine architecture reported by the kernel.
	Architecture(executionContext context.Context) (string, error)
}

// HostEnvironment reads host state from the running process and gopsutil.
type HostEnvironment struct{}

// NewHostEnvironment constructs an Environment backed by the current host.
func NewHostEnvironment() HostEnvironment {
	return HostEnvironment{}
}

// OperatingSystemName returns runtime.GOOS.
func (HostEnvironment) OperatingSystemName() string {
	return runtime.GOOS
}

// HomeDirectory returns os.UserHomeDir.
func (HostEnvironment) HomeDirectory() (string, error) {
	return os.UserHomeDir()
}

// OperatingSystemVersion returns the kernel version reported by gopsutil.
func (HostEnvironment) OperatingSystemVersion(executionContext context.Context) (string, error) {
	return host.KernelVersionWithContext(executionContext)
}

// Architecture returns the kernel architecture reported by gopsutil.
func (HostEnvironment) Architecture(executionContext context.Context) (string, error) {
	return host.KernelArch()
}

// StaticEnvironment reports fixed values and is used to simulate other hosts.
type StaticEnvironment struct {
	Name        string
	Home        string
	HomeError   error
	Version     string
	MachineArch string
}

// OperatingSystemName returns the configured name.
func (environment StaticEnvironment) OperatingSystemName() string {
	return environment.Name
}

// HomeDirectory returns the configured home directory or error.
func (environment StaticEnvironment) HomeDirectory() (string, error) {
	if environment.HomeError != nil {
		return "", environment.HomeError
	}
	return environment.Home, nil
}

// OperatingSystemVersion returns the configured version.
func (environment StaticEnvironment) OperatingSystemVersion(context.Context) (string, error) {
	return environment.Version, nil
}

// Architecture returns the configured architecture.
func (environment StaticEnvironment) Architecture(context.Context) (string, error) {
	return environment.MachineArch, nil
}

// WithOperatingSystemName wraps an environment so it reports a different operating system name.
func WithOperatingSystemName(environment Environment, operatingSystemName string) Environment {
	if environment == nil {
		environment = NewHostEnvironment()
	}
	return overriddenNameEnvironment{Environment: environment, name: operatingSystemName}
}

type overriddenNameEnvironment struct {
	Environment
	name string
}

func (environment overriddenNameEnvironment) OperatingSystemName() string {
	return environment.name
}

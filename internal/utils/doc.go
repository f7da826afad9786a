// Package utils exposes reusable helpers consumed by the CLI and the executor.
//
// It houses ConfigurationLoader (Viper with embedded defaults and environment
// overrides), LoggerFactory (zap with optional lumberjack rotation), the
// FlushingWriter used for live output mirroring, and CommandContextAccessor.
package utils

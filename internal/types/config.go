package types

import ierr "github.com/gymflow/gymflow/internal/errors"

// RunMode is the deployment mode the binary was started in
type RunMode string

const (
	RunModeLocal RunMode = "local"
	RunModeAPI   RunMode = "api"
)

func (m RunMode) Validate() error {
	switch m {
	case RunModeLocal, RunModeAPI:
		return nil
	default:
		return ierr.NewError("invalid deployment mode").
			WithHint("deployment.mode must be one of: local, api").
			WithReportableDetails(map[string]interface{}{
				"mode": string(m),
			}).
			Mark(ierr.ErrValidation)
	}
}

// LogLevel controls logger verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

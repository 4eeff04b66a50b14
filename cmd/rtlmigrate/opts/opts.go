package opts

import (
	"github.com/walteh/rtlmigrate/pkg/config"
	"github.com/walteh/rtlmigrate/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	ConfigPath string
	Logger     *log.Logger
}

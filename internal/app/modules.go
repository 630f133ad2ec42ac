package app

import (
	"github.com/vk/phasegrid/internal/registry"
	"github.com/vk/phasegrid/modules/env_vars"
	"github.com/vk/phasegrid/modules/http_request"
	"github.com/vk/phasegrid/modules/print"
	"github.com/vk/phasegrid/modules/set_var"
	"github.com/vk/phasegrid/modules/sleep"
)

// coreModules is the definitive list of all modules that are compiled into
// the phasegrid binary.
var coreModules = []registry.Module{
	&env_vars.Module{},
	&http_request.Module{},
	&print.Module{},
	&set_var.Module{},
	&sleep.Module{},
}

package reporting

import (
	"github.com/lazisku/maal/internal/reporting/repository"
	"github.com/lazisku/maal/internal/reporting/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reporting.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

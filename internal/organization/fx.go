package organization

import (
	"github.com/lazisku/maal/internal/organization/repository"
	"github.com/lazisku/maal/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

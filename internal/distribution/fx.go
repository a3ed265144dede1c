package distribution

import (
	"github.com/lazisku/maal/internal/distribution/repository"
	"github.com/lazisku/maal/internal/distribution/service"
	"go.uber.org/fx"
)

var Module = fx.Module("distribution.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package zakat

import (
	"github.com/lazisku/maal/internal/zakat/repository"
	"github.com/lazisku/maal/internal/zakat/service"
	"go.uber.org/fx"
)

var Module = fx.Module("zakat.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

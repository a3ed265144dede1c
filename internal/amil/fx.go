package amil

import (
	"github.com/lazisku/maal/internal/amil/repository"
	"github.com/lazisku/maal/internal/amil/service"
	"go.uber.org/fx"
)

var Module = fx.Module("amil.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package infaq

import (
	"github.com/lazisku/maal/internal/infaq/repository"
	"github.com/lazisku/maal/internal/infaq/service"
	"go.uber.org/fx"
)

var Module = fx.Module("infaq.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package asset

import (
	"github.com/lazisku/maal/internal/asset/repository"
	"github.com/lazisku/maal/internal/asset/service"
	"go.uber.org/fx"
)

var Module = fx.Module("asset.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package nucoin

import (
	"github.com/lazisku/maal/internal/nucoin/repository"
	"github.com/lazisku/maal/internal/nucoin/service"
	"go.uber.org/fx"
)

var Module = fx.Module("nucoin.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package wallet

import (
	"github.com/lazisku/maal/internal/wallet/repository"
	"github.com/lazisku/maal/internal/wallet/service"
	"go.uber.org/fx"
)

var Module = fx.Module("wallet.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

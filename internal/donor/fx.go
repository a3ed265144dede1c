package donor

import (
	"github.com/lazisku/maal/internal/donor/repository"
	"github.com/lazisku/maal/internal/donor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("donor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package nonhalal

import (
	"github.com/lazisku/maal/internal/nonhalal/repository"
	"github.com/lazisku/maal/internal/nonhalal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("nonhalal.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

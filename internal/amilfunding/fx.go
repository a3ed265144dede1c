package amilfunding

import (
	"github.com/lazisku/maal/internal/amilfunding/repository"
	"github.com/lazisku/maal/internal/amilfunding/service"
	"go.uber.org/fx"
)

var Module = fx.Module("amilfunding.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

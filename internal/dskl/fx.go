package dskl

import (
	"github.com/lazisku/maal/internal/dskl/repository"
	"github.com/lazisku/maal/internal/dskl/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dskl.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

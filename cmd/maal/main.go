package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/clock"
	"github.com/lazisku/maal/internal/config"
	"github.com/lazisku/maal/internal/migration"
	"github.com/lazisku/maal/internal/observability"
	"github.com/lazisku/maal/internal/server"
	"github.com/lazisku/maal/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

package cli

import (
	"github.com/sirupsen/logrus"

	"github.com/amescasi/studyloop/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address. Defaults to the configured server address."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.Server.Addr()
	}

	return server.New(ctx.Store, ctx.Engine, logger).Run(addr)
}

package main

import (
	"context"

	"github.com/dkhristov/userhub/internal/client/cli"
	"github.com/dkhristov/userhub/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(context.Background())
}

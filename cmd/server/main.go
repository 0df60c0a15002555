package main

import (
	"context"
	"log"

	"github.com/kartik7022/FlowEngine/internal/config"
	"github.com/kartik7022/FlowEngine/internal/container"
	"github.com/kartik7022/FlowEngine/internal/server"

	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		container.Module,
		fx.Invoke(func(
			lc fx.Lifecycle,
			cfg *config.Config,
			srv *server.Server,
		) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.Printf("Starting FlowEngine registry on port %s", cfg.Server.Port)

					// Start server in background
					go func() {
						if err := srv.Start(context.Background()); err != nil {
							log.Printf("Server error: %v", err)
						}
					}()

					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.Println("Shutting down FlowEngine registry")
					return srv.Stop()
				},
			})
		}),
	)

	app.Run()
}

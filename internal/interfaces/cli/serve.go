package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	httpapi "github.com/turtacn/molgraph/internal/interfaces/http"
)

type serveOptions struct {
	host string
	port int
}

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the molgraph HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "listen host (default: server.host)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "listen port (default: server.port)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	a := cliCtx.App

	serverCfg := a.Config.Server
	if cmd.Flags().Changed("host") {
		serverCfg.Host = opts.host
	}
	if cmd.Flags().Changed("port") {
		serverCfg.Port = opts.port
	}

	gin.SetMode(serverCfg.Mode)
	router := httpapi.NewRouter(httpapi.RouterConfigFromApp(a, Version))
	srv := httpapi.NewServer(serverCfg, router, cliCtx.Logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

//Personal.AI order the ending

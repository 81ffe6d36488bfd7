package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"healthwatch/internal/app/server"
	"healthwatch/internal/utils/logger"

	"github.com/spf13/cobra"
)

var runAddress string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP сервер",
	Long: `Применяет миграции, при пустой таблице объявлений добавляет примеры
и обслуживает API до получения SIGINT или SIGTERM.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if runAddress != "" {
			cfg.Server.RunAddress = runAddress
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := server.New(ctx, cfg, log)
		if err != nil {
			log.Error("failed to start", logger.Err(err))
			return err
		}
		return app.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&runAddress, "address", "a", "", "адрес сервера, перекрывает RUN_ADDRESS")
}

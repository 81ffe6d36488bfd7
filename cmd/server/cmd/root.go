// cmd/server/cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"healthwatch/internal/app/server/config"
	"healthwatch/internal/utils/logger"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "healthwatch",
	Short: "Healthwatch - API полевого эпиднадзора",
	Long: `Healthwatch принимает от медработников отчёты о случаях заболевания,
результаты анализов воды и публикует объявления для сообщества.

Конфигурация берётся из переменных окружения, файла .env и,
при указании --config, из конфигурационного файла.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	log = logger.New(cfg.Env)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (yaml, json, toml)")

	rootCmd.AddCommand(serveCmd, migrateCmd, userCmd)
}

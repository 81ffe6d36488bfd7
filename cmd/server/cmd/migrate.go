package cmd

import (
	"fmt"

	"healthwatch/internal/infrastructure/migration"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|version]",
	Short:     "Применить, откатить или показать версию схемы",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "version"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DB.DatabaseURI == "" {
			return fmt.Errorf("DATABASE_URI не задан")
		}

		mg := migration.NewMigration(cfg, migration.DefaultEngine, log)

		action := "up"
		if len(args) == 1 {
			action = args[0]
		}

		switch action {
		case "down":
			return mg.Down()
		case "version":
			st, err := mg.Status()
			if err != nil {
				return err
			}
			if !st.Applied {
				fmt.Fprintln(cmd.OutOrStdout(), "Миграции не применялись")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Версия схемы: %d (dirty=%t)\n", st.Version, st.Dirty)
			return nil
		}
		return mg.Up()
	},
}

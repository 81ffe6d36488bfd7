package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"healthwatch/internal/app/server"
	"healthwatch/internal/domain/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	userName  string
	userEmail string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Управление учётными записями",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Создать учётную запись медработника",
	Long: `Создаёт учётную запись напрямую в хранилище, минуя HTTP.
Пароль запрашивается в терминале; при перенаправленном вводе читается первая строка.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		password, err := readPassword(cmd.OutOrStdout(), cmd.InOrStdin())
		if err != nil {
			return err
		}

		stores, err := server.OpenStores(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("ошибка подключения к хранилищу: %w", err)
		}
		defer stores.Close()

		svc := user.NewService(stores.Users, user.NewPasswordValidator(), log, cfg.Auth.BcryptCost)
		u, err := svc.Register(cmd.Context(), userName, userEmail, password)
		if err != nil {
			return fmt.Errorf("ошибка создания пользователя: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Пользователь создан: %s <%s> id=%s\n", u.Name, u.Email, u.ID)
		return nil
	},
}

func readPassword(out io.Writer, in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "Введите пароль: ")
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("ошибка чтения пароля: %w", err)
		}

		fmt.Fprint(out, "Повторите пароль: ")
		confirm, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("ошибка чтения пароля: %w", err)
		}

		if string(password) != string(confirm) {
			return "", fmt.Errorf("пароли не совпадают")
		}
		return string(password), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	userAddCmd.Flags().StringVarP(&userName, "name", "n", "", "имя")
	userAddCmd.Flags().StringVarP(&userEmail, "email", "e", "", "email")
	_ = userAddCmd.MarkFlagRequired("name")
	_ = userAddCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userAddCmd)
}

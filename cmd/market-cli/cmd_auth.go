package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	loginPassword string

	signupPassword string
	signupConfirm  string
	signupNickname string
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Войти и сохранить сессию",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := runContext()
		defer cancel()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		password := loginPassword
		if password == "" {
			if password, err = readLine("Password: "); err != nil {
				return err
			}
		}

		user, err := a.Service.SignIn(ctx, args[0], password)
		if err != nil {
			return err
		}

		fmt.Printf("Signed in as %s\n", user.Nickname)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup <email>",
	Short: "Зарегистрироваться и войти",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := runContext()
		defer cancel()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		confirm := signupConfirm
		if confirm == "" {
			confirm = signupPassword
		}

		user, err := a.Service.SignUp(ctx, args[0], signupNickname, signupPassword, confirm)
		if err != nil {
			return err
		}

		fmt.Printf("Signed up as %s\n", user.Nickname)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти и очистить сессию",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := runContext()
		defer cancel()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if err := a.Service.SignOut(ctx); err != nil {
			return err
		}

		fmt.Println("Signed out")
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Показать профиль текущего пользователя",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := runContext()
		defer cancel()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		user, err := a.Service.Me(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Nickname: %s\n", user.Nickname)
		if user.Image != "" {
			fmt.Printf("Image:    %s\n", user.Image)
		}
		return nil
	},
}

func readLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted if omitted)")

	signupCmd.Flags().StringVar(&signupNickname, "nickname", "", "nickname")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "password")
	signupCmd.Flags().StringVar(&signupConfirm, "confirm", "", "password confirmation (defaults to --password)")
	_ = signupCmd.MarkFlagRequired("nickname")
	_ = signupCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, meCmd)
}

package command

import (
	"fmt"

	"mangareader/cmd/cli/authentication"

	"github.com/spf13/cobra"
)

// authCmd represents the auth command for authentication related subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Sign up, log in and log out. The session is stored in the OS keyring.`,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := newClient().Signup(ctx, email, username, password); err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}
		printSuccess(cmd.OutOrStdout(), "Account created. Run `mangareader auth login` to continue.")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		session, err := newClient().Login(ctx, username, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if err := saveSession(session, ""); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}
		printSuccess(cmd.OutOrStdout(), "Logged in as "+session.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.DeleteTokens(); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

func init() {
	authCmd.AddCommand(signupCmd, loginCmd, logoutCmd)

	signupCmd.Flags().StringP("email", "e", "", "email address")
	signupCmd.Flags().StringP("username", "u", "", "username")
	signupCmd.Flags().StringP("password", "p", "", "password (at least 8 characters)")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("username")
	_ = signupCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringP("username", "u", "", "username")
	loginCmd.Flags().StringP("password", "p", "", "password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}

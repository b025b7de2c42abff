package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crucial707/qa-forum/cmd/cli/config"
	"github.com/crucial707/qa-forum/internal/client"
)

// InitAuth registers register, login, logout and whoami on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd(), whoamiCmd())
}

// ==========================
// Register
// ==========================
func registerCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Long:  "Register a new user. Passwords need at least 8 characters including a number.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := promptMissing(cmd, &username, &password); err != nil {
				return err
			}
			s, err := cfg.Client().Register(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			return saveSession(cmd, cfg, s, "Registered")
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

// ==========================
// Login
// ==========================
func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := promptMissing(cmd, &username, &password); err != nil {
				return err
			}
			s, err := cfg.Client().Login(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			return saveSession(cmd, cfg, s, "Logged in")
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

// ==========================
// Logout / Whoami
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Store().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			s, ok, err := cfg.Store().Load()
			if err != nil {
				return err
			}
			if !ok {
				return config.ErrNotLoggedIn
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", s.Username, s.ID)
			return nil
		},
	}
}

func saveSession(cmd *cobra.Command, cfg config.Config, s client.Session, verb string) error {
	if err := cfg.Store().Save(s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s as %s. Session stored in %s\n", verb, s.Username, cfg.SessionFile)
	return nil
}

// promptMissing reads the username and password from stdin when the flags
// did not provide them.
func promptMissing(cmd *cobra.Command, username, password *string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	if *username == "" {
		v, err := prompt(in, out, "Username: ")
		if err != nil {
			return err
		}
		*username = v
	}
	if *password == "" {
		v, err := prompt(in, out, "Password: ")
		if err != nil {
			return err
		}
		*password = v
	}
	if *username == "" || *password == "" {
		return errors.New("username and password are required")
	}
	return nil
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

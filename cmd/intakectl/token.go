package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bondspire/intake-api/internal/auth"
	"github.com/bondspire/intake-api/internal/config"
)

var (
	tokenSubject string
	tokenEmail   string
	tokenRole    string
	tokenTTL     time.Duration
	tokenSecret  string
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Operator identifier stored in the token (required)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Operator email stored in the token")
	tokenCmd.Flags().StringVar(&tokenRole, "role", auth.RoleAdmin, "Role claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to JWT_TTL)")
	tokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "Signing secret (defaults to JWT_SECRET)")

	_ = tokenCmd.MarkFlagRequired("subject")

	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the admin listings",
	Long: `Mint an HS256 bearer token accepted by /admin/submissions and /admin/subscriptions.

Examples:
  intakectl token --subject ops-1 --email ops@wearebondspire.com
  intakectl token --subject ops-1 --ttl 1h`,
	RunE: runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	secret := tokenSecret
	if secret == "" {
		secret = cfg.JWTSecret
	}
	if secret == "" {
		return errors.New("no signing secret: set JWT_SECRET or pass --secret")
	}
	ttl := tokenTTL
	if ttl <= 0 {
		ttl = cfg.TokenTTL
	}

	token, err := auth.NewJWTManager(secret, ttl).GenerateToken(tokenSubject, tokenEmail, tokenRole)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

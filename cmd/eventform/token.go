package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/yanxingzhi/event-form-multi/internal/gauth"
)

var tokenScope string

// tokenCmd checks the service-account setup by running one exchange. The
// token is printed to stdout and never logged.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Exchange a signed assertion for an access token and print it.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		cred, err := gauth.NewCredential(cfg.GoogleClientEmail, cfg.GooglePrivateKey)
		if err != nil {
			return err
		}
		client := gauth.NewClient(cred,
			gauth.WithHTTPClient(&http.Client{Timeout: cfg.UpstreamTimeout}),
			gauth.WithTokenURL(cfg.GoogleTokenURL),
		)

		token, err := client.AccessToken(cmd.Context(), tokenScope)
		if err != nil {
			return err
		}
		logger.Debug().Str("scope", tokenScope).Msg("token exchange succeeded")
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenScope, "scope", gauth.ScopeSpreadsheetsReadOnly, "OAuth scope to request")
}

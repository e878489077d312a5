package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"store_admin_dashboard/internal/middleware"
)

var tokenUserID string

// tokenCmd 签发本地调试用的 Bearer Token
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for local use",
	Long: `Sign an access token for the given user id with the configured jwt secret.
Production identities come from the external auth provider.

Example:
  dashboard token --user user_123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenUserID == "" {
			return errors.New("--user 不能为空")
		}

		_, _, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		tok, err := middleware.GenerateAccessToken(tokenUserID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUserID, "user", "u", "", "用户 ID (token subject)")
}

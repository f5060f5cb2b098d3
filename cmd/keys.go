package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/nexus-docs/internal/apikeys"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Inspect reader API keys",
}

var keysVerifyCmd = &cobra.Command{
	Use:   "verify <secret>",
	Short: "Verify an API key secret against the configured signing secret",
	Long: `Checks the signature of an API key secret offline and prints the key id
and owning namespace. It does not check whether the key has been revoked.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Auth.KeySigningSecret == "" {
			return fmt.Errorf("auth.key_signing_secret is not set; keys signed with a random secret cannot be verified")
		}
		signer, err := apikeys.NewSigner(cfg.Auth.KeySigningSecret)
		if err != nil {
			return err
		}

		claims, err := signer.Parse(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "valid\n")
		fmt.Fprintf(out, "  key id:    %s\n", claims.KeyID())
		fmt.Fprintf(out, "  namespace: %s\n", claims.Namespace())
		if claims.IssuedAt != nil {
			fmt.Fprintf(out, "  issued:    %s\n", claims.IssuedAt.Time.UTC().Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	keysCmd.AddCommand(keysVerifyCmd)
	rootCmd.AddCommand(keysCmd)
}

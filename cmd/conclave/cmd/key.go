package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stellar/go/keypair"

	"conclave.io/conclave/cmd/conclave/common"
)

var (
	keyCmd      *cobra.Command
	generateCmd *cobra.Command

	flagPublicKeyOnly bool
)

func init() {
	keyCmd = &cobra.Command{
		Use:   "key",
		Short: "Keypair management",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate keypair",
		Run: func(c *cobra.Command, args []string) {
			kp, err := keypair.Random()
			if err != nil {
				common.PrintError(c, err)
			}

			if flagPublicKeyOnly {
				fmt.Printf("%s\n", kp.Address())
				return
			}

			fmt.Printf("       Secret Seed: %s\n", kp.Seed())
			fmt.Printf("    Public Address: %s\n", kp.Address())
		},
	}
	generateCmd.Flags().BoolVar(&flagPublicKeyOnly, "publicKey", false, "print only the public address")

	keyCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(keyCmd)
}

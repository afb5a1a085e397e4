package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/runner"
	"conclave.io/conclave/lib/storage"

	cmdcommon "conclave.io/conclave/cmd/conclave/common"
)

var genesisCmd *cobra.Command

func init() {
	genesisCmd = &cobra.Command{
		Use:   "genesis <genesis file>",
		Short: "initialize a new election store",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			flagName, err := MakeGenesis(args[0], flagStorageConfigString)
			if len(flagName) != 0 || err != nil {
				cmdcommon.PrintFlagsError(c, flagName, err)
			}

			fmt.Println("successfully initialized the election store")
		},
	}

	genesisCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")

	rootCmd.AddCommand(genesisCmd)
}

// MakeGenesis seeds a fresh store from the genesis file. It is public
// so `run --genesis` can perform the same bootstrap with the same
// defaults and error messages.
func MakeGenesis(genesisPath, storageString string) (string, error) {
	conf, err := runner.LoadGenesisConfig(genesisPath)
	if err != nil {
		return "<genesis file>", err
	}

	if _, err := conf.Config(); err != nil {
		return "<genesis file>", err
	}

	if len(storageString) == 0 {
		storageString = common.GetENVValue("CONCLAVE_STORAGE", "")
		if len(storageString) == 0 {
			currentDirectory, err := os.Getwd()
			if err != nil {
				return "--storage", err
			}
			if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
				return "--storage", err
			}
			storageString = fmt.Sprintf("file://%s/db", currentDirectory)
		}
	}

	storageConfig, err := storage.NewConfigFromString(storageString)
	if err != nil {
		return "--storage", err
	}

	st := &storage.LevelDBBackend{}
	if err := st.Init(storageConfig); err != nil {
		return "--storage", err
	}
	defer st.Close()

	if err := conf.Apply(st); err != nil {
		return "<genesis file>", err
	}

	return "", nil
}

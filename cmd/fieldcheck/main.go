// Command fieldcheck validates records against YAML schema definitions.
//
//	fieldcheck validate --schema users.yaml users.json more-users.yaml
//	fieldcheck jsonschema --schema users.yaml
//	fieldcheck store --schema users.yaml users.json
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/cobrau"
	"github.com/untillpro/goutils/logger"
)

var version = "0.1.0"

// out receives command output; tests replace it.
var out io.Writer = os.Stdout

// path to the YAML schema definition (flag --schema)
var schemaPath string

func main() {
	if err := execRootCmd(os.Args, version); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func execRootCmd(args []string, ver string) error {
	rootCmd := cobrau.PrepareRootCmd(
		"fieldcheck",
		"Validate records against document schema definitions",
		args,
		ver,
		newValidateCmd(),
		newJSONSchemaCmd(),
		newStoreCmd(),
	)
	rootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "", "Path to the YAML schema definition")
	return cobrau.ExecCommandAndCatchInterrupt(rootCmd)
}

func requireSchemaFlag(cmd *cobra.Command, args []string) error {
	if schemaPath == "" {
		return errSchemaFlag
	}
	return nil
}

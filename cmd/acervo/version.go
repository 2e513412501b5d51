package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	acervo "github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of acervo",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "acervo version %s\n", strings.TrimSpace(acervo.Version))
		},
	}
}

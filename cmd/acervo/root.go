package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	acervo "github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/navigator"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose    bool
	configPath string
	dataDir    string
	adapter    string
	storageKey string
	readOnly   bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "acervo",
		Short: "Portal BDG de Inovações e Lições Aprendidas",
		Long: `acervo keeps the company archive of innovations and lessons learned in a
single local JSON collection, with a point-based ranking of contributors.
Run "acervo ui" for the interactive portal.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&g.configPath, "config", acervo.ConfigFile, "Path to the config file")
	flags.StringVar(&g.dataDir, "data-dir", "", "Vault directory (overrides config)")
	flags.StringVar(&g.adapter, "adapter", "", "Storage adapter: fs or memory (overrides config)")
	flags.StringVar(&g.storageKey, "key", "", "Storage key (overrides config)")
	flags.BoolVar(&g.readOnly, "read-only", false, "Open the vault read-only")

	rootCmd.AddCommand(
		newListCmd(g),
		newShowCmd(g),
		newCreateCmd(g),
		newEditCmd(g),
		newDeleteCmd(g),
		newRankingCmd(g),
		newExportCmd(g),
		newUICmd(g),
		newVersionCmd(),
	)
	return rootCmd
}

// openPortal loads the config, applies flag overrides and opens a session.
// Only long-running commands follow external changes.
func openPortal(cmd *cobra.Command, g *globalFlags, follow bool, extra ...acervo.Option) (*acervo.Portal, error) {
	cfg, err := acervo.LoadConfig(g.configPath)
	if err != nil {
		return nil, err
	}

	if g.dataDir != "" {
		cfg.DataDir = g.dataDir
	}
	if g.adapter != "" {
		cfg.Adapter = g.adapter
	}
	if g.storageKey != "" {
		cfg.StorageKey = g.storageKey
	}
	if cmd.Flags().Changed("read-only") {
		cfg.ReadOnly = g.readOnly
	}

	opts := []acervo.Option{
		acervo.WithLogger(slog.Default()),
		acervo.WithConfirm(stdinConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())),
	}
	if !follow {
		opts = append(opts, acervo.WithWatch(false))
	}
	opts = append(opts, extra...)

	portal, err := acervo.OpenConfig(cmd.Context(), cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	return portal, nil
}

// stdinConfirmer asks on out and reads a yes/no answer from in.
func stdinConfirmer(in io.Reader, out io.Writer) navigator.Confirmer {
	return navigator.ConfirmFunc(func(_ context.Context, prompt string) bool {
		fmt.Fprintf(out, "%s [s/N] ", prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "s", "sim", "y", "yes":
			return true
		}
		return false
	})
}

// Package cli wires the mesai subcommands: the backend server and the two
// terminal frontends.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/sadopc/mesai/internal/api"
	"github.com/sadopc/mesai/internal/server"
	"github.com/sadopc/mesai/internal/store"
	"github.com/sadopc/mesai/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	defaultAddr = ":8080"
	defaultAPI  = "http://localhost:8080"
)

// NewRootCmd creates the top-level "mesai" command and its subcommands.
// Flags override environment variables, which override defaults.
func NewRootCmd() *cobra.Command {
	// A missing .env is fine; env vars may come from anywhere.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "mesai",
		Short:         "Çalışma takip panosu: backend, yönetici ve personel arayüzleri",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newAdminCmd(),
		newConsoleCmd(),
	)

	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newServeCmd() *cobra.Command {
	var addr, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "REST API sunucusunu başlat",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = os.Getenv("MESAI_DB")
			}
			if dbPath == "" {
				var err error
				dbPath, err = store.DefaultDBPath()
				if err != nil {
					return fmt.Errorf("resolve db path: %w", err)
				}
			}

			st, err := store.New(dbPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			if addr == "" {
				addr = envOr("MESAI_ADDR", defaultAddr)
			}
			return server.New(st).ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "dinlenecek adres (varsayılan "+defaultAddr+")")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite veritabanı yolu")
	return cmd
}

func newAdminCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Yönetici panosunu aç",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				apiURL = envOr("MESAI_API", defaultAPI)
			}
			return runTUI(tui.NewAdmin(api.New(apiURL)))
		},
	}

	bindAPIFlag(cmd.Flags(), &apiURL)
	return cmd
}

func newConsoleCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Personel konsolunu aç",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				apiURL = envOr("MESAI_API", defaultAPI)
			}
			return runTUI(tui.NewConsole(api.New(apiURL)))
		},
	}

	bindAPIFlag(cmd.Flags(), &apiURL)
	return cmd
}

// bindAPIFlag registers the shared backend-address flag on a frontend command.
func bindAPIFlag(fs *pflag.FlagSet, apiURL *string) {
	fs.StringVar(apiURL, "api", "", "backend adresi (varsayılan "+defaultAPI+")")
}

func runTUI(m tea.Model) error {
	if !isTerminal() {
		return fmt.Errorf("bir terminal gerekli (stdout bir tty değil)")
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

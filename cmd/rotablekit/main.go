package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rotablekit/internal/config"
	"rotablekit/internal/evalclient"
	"rotablekit/internal/monitor"
	"rotablekit/internal/obslog"
	"rotablekit/internal/orchestrator"
	"rotablekit/internal/tui"
	"rotablekit/internal/wire"
)

var (
	configFile string
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rotablekit",
		Short: "Rotable kit logistics decision engine",
		Long: `A round-based decision engine that plays a 720-hour rotable kit
logistics game against an evaluation server.`,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "v", false, "Verbose logging")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(monitorCmd())
	rootCmd.AddCommand(statusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Play a full session against the eval server",
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			titleColor.Println("\n╭───────────────────────────────╮")
			titleColor.Println("│  rotablekit                    │")
			titleColor.Println("│  rotable kit logistics engine  │")
			titleColor.Println("╰───────────────────────────────╯")
			fmt.Println()

			cfg, err := config.Load(configFile)
			if err != nil {
				color.Red("config error: %v", err)
				os.Exit(1)
			}

			log, err := obslog.New(debug)
			if err != nil {
				color.Red("logger error: %v", err)
				os.Exit(1)
			}
			defer log.Sync()

			client := evalclient.New(cfg.ServerURL, cfg.APIKey)
			store := monitor.NewStore()
			orch := orchestrator.New(cfg, log, client, store)

			go func() {
				if err := http.ListenAndServe(cfg.MonitorAddr, monitor.New(store)); err != nil {
					log.Warn("monitor server stopped", zap.Error(err))
				}
			}()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := orch.Run(ctx); err != nil {
				color.Red("run failed: %v", err)
				os.Exit(1)
			}
			color.Green("session complete")
		},
	}
}

func monitorCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Attach a terminal dashboard to a running session",
		Run: func(cmd *cobra.Command, args []string) {
			if err := tui.Run(addr); err != nil {
				color.Red("monitor error: %v", err)
				os.Exit(1)
			}
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "http://localhost:8090", "Monitoring HTTP base URL")
	return cmd
}

func statusCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the last few rounds of a running session as a table",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := http.Get(addr + "/history?limit=10")
			if err != nil {
				color.Red("request failed: %v", err)
				os.Exit(1)
			}
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				color.Red("read failed: %v", err)
				os.Exit(1)
			}
			var history []monitor.RoundSummary
			if err := wire.Unmarshal(body, &history); err != nil {
				color.Red("decode failed: %v", err)
				os.Exit(1)
			}

			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"Hour", "Anomalies", "Est. Cost"}),
			)
			for _, h := range history {
				_ = table.Append([]string{
					fmt.Sprintf("%d", h.Hour),
					fmt.Sprintf("%d", len(h.Anomalies)),
					fmt.Sprintf("%.2f", h.EstimatedCost),
				})
			}
			_ = table.Render()
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "http://localhost:8090", "Monitoring HTTP base URL")
	return cmd
}

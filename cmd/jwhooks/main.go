package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/donut/jw-webhooks/internal/version"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "jwhooks",
		Short:   "Manage JW Player webhook registrations",
		Version: version.Get(),
	}

	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(unregisterCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(syncCmd())

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}

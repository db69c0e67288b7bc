package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/de-tools/aws-profile-manager/pkg/runtime/terminal"
	"github.com/de-tools/aws-profile-manager/pkg/services/config"
	"github.com/de-tools/aws-profile-manager/pkg/services/manager"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("APM_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Manager: manager.NewFromPaths(cfg.Paths()),
		Output:  os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

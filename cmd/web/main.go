package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/aws-profile-manager/pkg/server"
	"github.com/de-tools/aws-profile-manager/pkg/services/config"
	"github.com/de-tools/aws-profile-manager/pkg/services/manager"
	"github.com/de-tools/aws-profile-manager/pkg/services/role"
	s3svc "github.com/de-tools/aws-profile-manager/pkg/services/s3"
)

var (
	cfgPath string
	withAWS bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the AWS profile manager",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the application config file (APM_* env vars apply on top)")
	rootCmd.Flags().BoolVar(&withAWS, "with-aws", false,
		"Enable the role assumption and S3 browsing endpoints (requires AWS connectivity)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	// Optional; the config layer reads APM_* variables either way.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	paths := cfg.Paths()
	mgr := manager.NewFromPaths(paths)

	deps := server.Dependencies{
		Manager: mgr,
		Logger:  logger,
	}

	if withAWS {
		ctx := logger.WithContext(cmd.Context())
		stsClient, err := role.NewSTSClient(ctx)
		if err != nil {
			return fmt.Errorf("failed to create STS client: %w", err)
		}
		deps.Assumer = role.NewAssumer(stsClient, paths)

		s3Client, presignClient, err := s3svc.NewClient(ctx)
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		deps.Explorer = s3svc.NewExplorer(s3Client, presignClient)
	}

	logger.Info().
		Str("base_file", paths.BaseFile).
		Str("credentials_file", paths.CredentialsFile).
		Str("config_file", paths.ConfigFile).
		Msg("managing AWS files")

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	api := server.NewWebAPI(logger, server.Config{
		Addr:         addr,
		Dependencies: deps,
	})

	return api.Start()
}

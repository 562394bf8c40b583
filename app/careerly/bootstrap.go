package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yoockh/careerly/config"
	"github.com/yoockh/careerly/internal/bootstrap"
	"github.com/yoockh/careerly/internal/logger"
	"github.com/yoockh/careerly/internal/utils"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "One-shot setup: storage bucket, schema, seed data, status migration",
	Long:  "Runs a setup step against the service-role database (POSTGRES_SERVICE_URI) or the resume bucket (GCS_BUCKET). Every step is safe to repeat.",
}

var hashAdminKeyCmd = &cobra.Command{
	Use:   "hash-admin-key <key>",
	Short: "Print the bcrypt hash to put in ADMIN_KEY_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := utils.HashSecret(strings.TrimSpace(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	steps := []struct {
		use   string
		short string
		run   func(ctx context.Context, svc *bootstrap.Service) (any, error)
	}{
		{"bucket", "Create the resume bucket if it does not exist", func(ctx context.Context, svc *bootstrap.Service) (any, error) {
			return svc.EnsureBucket(ctx)
		}},
		{"schema", "Create the extension, tables and indexes", func(ctx context.Context, svc *bootstrap.Service) (any, error) {
			return svc.CreateSchema(ctx)
		}},
		{"seed", "Insert the demo company and its jobs", func(ctx context.Context, svc *bootstrap.Service) (any, error) {
			return svc.Seed(ctx)
		}},
		{"waitlist", "Allow WAITLIST in the application status constraint", func(ctx context.Context, svc *bootstrap.Service) (any, error) {
			return svc.AddWaitlistStatus(ctx)
		}},
	}

	for _, st := range steps {
		bootstrapCmd.AddCommand(&cobra.Command{
			Use:   st.use,
			Short: st.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				env := config.LoadEnv()
				log := logger.New(env.LogLevel)
				ctx := cmd.Context()
				if ctx == nil {
					ctx = context.Background()
				}

				svc, closeFn := openBootstrap(ctx, env, log)
				defer closeFn()

				res, err := st.run(ctx, svc)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			},
		})
	}

	rootCmd.AddCommand(bootstrapCmd, hashAdminKeyCmd)
}

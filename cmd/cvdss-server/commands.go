package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cvdss/cvdss/internal/config"
	"github.com/cvdss/cvdss/internal/domain/account"
	"github.com/cvdss/cvdss/internal/domain/patient"
	"github.com/cvdss/cvdss/internal/platform/db"
	"github.com/cvdss/cvdss/migrations"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register a patient or physician account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			userType, _ := cmd.Flags().GetString("type")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := account.NewService(account.NewUserRepo(pool), zerolog.Nop())
			user, err := svc.Register(ctx, account.RegisterRequest{
				Username: username,
				Password: password,
				UserType: userType,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q with id %d\n", user.UserType, user.Username, user.ID)
			return nil
		},
	}
	createCmd.Flags().String("username", "", "Login name")
	createCmd.Flags().String("password", "", "Password (at least 8 characters)")
	createCmd.Flags().String("type", account.UserTypePatient, "Account type: patient or physician")
	createCmd.MarkFlagRequired("username")
	createCmd.MarkFlagRequired("password")
	cmd.AddCommand(createCmd)

	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "Assign a patient to a physician",
		RunE: func(cmd *cobra.Command, args []string) error {
			physicianID, _ := cmd.Flags().GetInt64("physician")
			patientID, _ := cmd.Flags().GetInt64("patient")
			if physicianID <= 0 || patientID <= 0 {
				return fmt.Errorf("--physician and --patient must be positive ids")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			accounts := account.NewService(account.NewUserRepo(pool), zerolog.Nop())
			physician, err := accounts.GetUser(ctx, physicianID)
			if err != nil {
				return fmt.Errorf("physician %d: %w", physicianID, err)
			}
			if physician.UserType != account.UserTypePhysician {
				return fmt.Errorf("user %d is a %s, not a physician", physicianID, physician.UserType)
			}

			svc := patient.NewService(patient.NewRepo(pool), nil, zerolog.Nop())
			if err := svc.LinkPatient(ctx, physicianID, patientID); err != nil {
				return fmt.Errorf("patient %d: %w", patientID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Linked patient %d to physician %d\n", patientID, physicianID)
			return nil
		},
	}
	linkCmd.Flags().Int64("physician", 0, "Physician user id")
	linkCmd.Flags().Int64("patient", 0, "Patient user id")
	cmd.AddCommand(linkCmd)

	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, migrations.FS).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) successfully.\n", count)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, migrations.FS).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}
			printMigrationStatus(cmd.OutOrStdout(), statuses)
			return nil
		},
	})

	return cmd
}

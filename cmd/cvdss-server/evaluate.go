package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cvdss/cvdss/internal/config"
	"github.com/cvdss/cvdss/internal/domain/cvd"
	"github.com/cvdss/cvdss/internal/platform/db"
	"github.com/cvdss/cvdss/internal/platform/predictor"
)

func evaluateCmd() *cobra.Command {
	var (
		profilePath string
		audience    string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a clinical profile from a JSON file",
		Long: "Evaluate a clinical profile with the configured predictor and print the report.\n" +
			"Use --profile - to read the profile from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.ValidatePredictor(); err != nil {
				return err
			}
			pred, err := predictor.New(cfg)
			if err != nil {
				return err
			}
			return runEvaluate(cmd.Context(), evaluateOptions{
				predictor:   pred,
				profilePath: profilePath,
				audience:    audience,
				asJSON:      asJSON,
				in:          cmd.InOrStdin(),
				out:         cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().StringVar(&profilePath, "profile", "", "Path to the profile JSON, or - for stdin")
	cmd.Flags().StringVar(&audience, "audience", string(cvd.AudiencePatient), "Report wording: patient or physician")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.MarkFlagRequired("profile")
	return cmd
}

type evaluateOptions struct {
	predictor   cvd.Predictor
	profilePath string
	audience    string
	asJSON      bool
	in          io.Reader
	out         io.Writer
}

func runEvaluate(ctx context.Context, opts evaluateOptions) error {
	audience, err := cvd.ParseAudience(opts.audience)
	if err != nil {
		return err
	}
	profile, err := readProfile(opts.profilePath, opts.in)
	if err != nil {
		return err
	}

	report, err := cvd.NewEngine(opts.predictor).Evaluate(ctx, profile.ClampBloodPressure(), audience)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(opts.out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			*cvd.RiskReport
			Sections []cvd.Section `json:"sections"`
		}{report, report.Sections()})
	}
	renderReport(opts.out, report)
	return nil
}

func readProfile(path string, stdin io.Reader) (cvd.ClinicalProfile, error) {
	var p cvd.ClinicalProfile
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return p, fmt.Errorf("open profile: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return p, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// renderReport prints the sections in report order, one finding per line
// prefixed with its severity.
func renderReport(w io.Writer, r *cvd.RiskReport) {
	for i, s := range r.Sections() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, s.Title)
		fmt.Fprintln(w, strings.Repeat("-", len(s.Title)))
		for _, f := range s.Findings {
			fmt.Fprintf(w, "[%s] %s\n", strings.ToUpper(string(f.Severity)), f.Message)
		}
	}
}

func printMigrationStatus(w io.Writer, statuses []db.MigrationStatus) {
	fmt.Fprintf(w, "%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
	fmt.Fprintln(w, "---------- ---------------------------------------- ---------- --------------------")
	for _, s := range statuses {
		status := "pending"
		appliedAt := ""
		if s.Applied {
			status = "applied"
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
		}
		fmt.Fprintf(w, "%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
	}
}

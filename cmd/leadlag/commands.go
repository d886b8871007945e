package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	configPath    string
	providerFlag  string
	estimatorFlag string
	skipCheck     bool

	rootCmd = &cobra.Command{
		Use:           "leadlag",
		Short:         "Estimate the lead-lag between two asynchronously sampled price series",
		SilenceUsage:  true,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Load data, verify the estimator, scan the lag grid and report the lead-lag",
		RunE:  runEstimate,
	}

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Only compare the configured estimator against the reference on the diagnostic grid",
		RunE:  runCheck,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the YAML config")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "override data.provider (synthetic, binance, csv)")
	rootCmd.PersistentFlags().StringVar(&estimatorFlag, "estimator", "", "override estimation.estimator (sweep, reference)")
	runCmd.Flags().BoolVar(&skipCheck, "skip-check", false, "skip the reference consistency check")
	rootCmd.AddCommand(runCmd, checkCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx, p, log, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := p.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("estimation failed")
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Est. lead lag = %g\n", res.LeadLag)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, p, log, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	ds, err := p.Load(ctx)
	if err != nil {
		return err
	}
	if err := p.Check(ctx, ds); err != nil {
		log.Error().Err(err).Msg("consistency check failed")
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "consistency check passed")
	return nil
}

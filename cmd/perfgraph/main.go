package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/christophergentle/perfgraph/internal/axis"
	"github.com/christophergentle/perfgraph/internal/chart"
	"github.com/christophergentle/perfgraph/internal/config"
	"github.com/christophergentle/perfgraph/internal/publish"
	"github.com/christophergentle/perfgraph/internal/render"
	"github.com/christophergentle/perfgraph/internal/series"
	"github.com/christophergentle/perfgraph/internal/style"
)

type options struct {
	configPath string
	csvPath    string
	axis       string
	profile    string
	output     string
	logLevel   string
	s3Bucket   string
	s3Key      string
}

func main() {
	if err := newRootCmd(&options{}).Execute(); err != nil {
		logrus.WithError(err).Fatal("perfgraph failed")
	}
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "perfgraph",
		Short: "Render an annotated benchmark history chart",
		Long: `perfgraph draws one series of (date, seconds, label) samples as an
annotated line chart and saves it as a PNG.

Samples come from a YAML chart file (--config), a CSV file (--csv), or the
built-in solver benchmark history.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			logrus.SetLevel(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML chart definition file")
	flags.StringVar(&opts.csvPath, "csv", "", "CSV samples file (date,value[,label])")
	flags.StringVar(&opts.axis, "axis", "ordinal", "x axis strategy: ordinal or temporal")
	flags.StringVar(&opts.profile, "profile", style.DefaultName, "style profile name")
	flags.StringVarP(&opts.output, "output", "o", chart.DefaultOutputPath, "output PNG path")
	flags.StringVar(&opts.s3Bucket, "s3-bucket", "", "upload the image to this S3 bucket")
	flags.StringVar(&opts.s3Key, "s3-key", "", "S3 object key (default: output file name)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "profiles",
		Short: "List the named style profiles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range style.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	})

	return rootCmd
}

// job is a fully resolved render request
type job struct {
	samples  []series.Sample
	strategy axis.Strategy
	profile  style.Profile
	output   string
	upload   config.UploadConfig
}

// resolve merges the chart file, the CSV file and the flags. Flags that
// were set explicitly win over the chart file.
func resolve(cmd *cobra.Command, opts *options) (*job, error) {
	cfg := &config.Config{
		Output:  opts.output,
		Axis:    opts.axis,
		Profile: opts.profile,
	}
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		changed := cmd.Flags().Changed
		if changed("output") {
			cfg.Output = opts.output
		}
		if changed("axis") {
			cfg.Axis = opts.axis
		}
		if changed("profile") {
			cfg.Profile = opts.profile
		}
	}
	if opts.s3Bucket != "" {
		cfg.Upload.Bucket = opts.s3Bucket
	}
	if opts.s3Key != "" {
		cfg.Upload.Key = opts.s3Key
	}

	j := &job{output: cfg.Output, upload: cfg.Upload}
	var err error
	if j.strategy, err = cfg.Strategy(); err != nil {
		return nil, err
	}
	if j.profile, err = cfg.StyleProfile(); err != nil {
		return nil, err
	}

	switch {
	case opts.csvPath != "":
		if j.samples, err = config.LoadSamplesCSV(opts.csvPath); err != nil {
			return nil, err
		}
	case len(cfg.Samples) > 0:
		j.samples = cfg.Samples
	default:
		logrus.Debug("No samples given, using the built-in benchmark history")
		j.samples = config.DefaultSamples()
	}
	return j, nil
}

func run(cmd *cobra.Command, opts *options) error {
	j, err := resolve(cmd, opts)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"samples": len(j.samples),
		"axis":    j.strategy.String(),
		"profile": j.profile.Name,
	}).Debug("Rendering chart")

	renderer := chart.New(render.LogReporter{Logger: logrus.StandardLogger()})
	if _, err := renderer.RenderSamples(j.samples, j.strategy, j.profile, j.output); err != nil {
		return err
	}

	if j.upload.Bucket == "" {
		return nil
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	uploader, err := publish.NewS3Uploader(ctx, j.upload.Bucket)
	if err != nil {
		return err
	}
	uri, err := uploader.UploadImage(ctx, j.upload.Key, j.output)
	if err != nil {
		return err
	}
	logrus.Infof("Uploaded chart to %s", uri)
	return nil
}

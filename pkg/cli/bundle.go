package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/cli/config"
	"github.com/m-mizutani/texpack/pkg/domain/model"
	"github.com/m-mizutani/texpack/pkg/infra/sink"
	"github.com/m-mizutani/texpack/pkg/usecase"
	"github.com/m-mizutani/texpack/pkg/utils/errs"
	"github.com/m-mizutani/texpack/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdBundle() *cli.Command {
	var (
		modelURL   string
		output     string
		fetchCfg   config.Fetch
		catalogCfg config.Catalog
		bundleCfg  config.Bundle
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "model",
			Aliases:     []string{"m"},
			Usage:       "URL of the model binary",
			Required:    true,
			Destination: &modelURL,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output directory or gs://bucket/prefix",
			Value:       ".",
			Destination: &output,
			Sources:     cli.EnvVars("TEXPACK_OUTPUT"),
		},
	}
	flags = append(flags, fetchCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, bundleCfg.Flags()...)

	return &cli.Command{
		Name:    "bundle",
		Aliases: []string{"b"},
		Usage:   "Download a model with its textures and write the archive",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)
			logger.Debug("Bundle configuration", "fetch", fetchCfg, "catalog", catalogCfg.Sources)

			f, closeFetcher, err := fetchCfg.NewFetcher(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeFetcher(); err != nil {
					logger.Warn("Failed to close fetcher", "error", err)
				}
			}()

			texturesMap, err := catalogCfg.Load(ctx, f)
			if err != nil {
				return err
			}

			writer, closeWriter, err := sink.New(ctx, output)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeWriter(); err != nil {
					logger.Warn("Failed to close output", "error", err)
				}
			}()

			uc := usecase.NewBundle(f, bundleCfg.Options(&fetchCfg)...)
			result, err := uc.Bundle(ctx, modelURL, texturesMap)
			if err != nil {
				errs.Handle(ctx, err)
				return goerr.Wrap(err, "failed to bundle model", goerr.V("kind", model.KindOf(err)))
			}

			dest, err := writer.Write(ctx, result.Filename, result.Data)
			if err != nil {
				return goerr.Wrap(err, "failed to write archive")
			}

			printSummary(os.Stdout, result, dest)
			return nil
		},
	}
}

func cmdInspect() *cli.Command {
	var (
		modelURL   string
		fetchCfg   config.Fetch
		catalogCfg config.Catalog
		bundleCfg  config.Bundle
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "model",
			Aliases:     []string{"m"},
			Usage:       "URL of the model binary",
			Required:    true,
			Destination: &modelURL,
		},
	}
	flags = append(flags, fetchCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, bundleCfg.Flags()...)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Show texture references of a model and how they resolve, as JSON",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			f, closeFetcher, err := fetchCfg.NewFetcher(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeFetcher()
			}()

			texturesMap, err := catalogCfg.Load(ctx, f)
			if err != nil {
				return err
			}

			uc := usecase.NewBundle(f, bundleCfg.Options(&fetchCfg)...)
			plan, err := uc.Inspect(ctx, modelURL, texturesMap)
			if err != nil {
				errs.Handle(ctx, err)
				return goerr.Wrap(err, "failed to inspect model", goerr.V("kind", model.KindOf(err)))
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(plan); err != nil {
				return goerr.Wrap(err, "failed to encode plan")
			}
			return nil
		},
	}
}

// printSummary writes a human readable report of result
func printSummary(w io.Writer, result *model.BundleResult, dest string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(w, "%s %s\n", green("✔ Created"), dest)
	fmt.Fprintf(w, "  model:    %s\n", result.Model)
	fmt.Fprintf(w, "  textures: %d\n", len(result.Textures))
	for _, name := range result.Textures {
		fmt.Fprintf(w, "    %s\n", faint(name))
	}

	if len(result.Diagnostics) == 0 {
		return
	}

	fmt.Fprintf(w, "%s %d texture(s) skipped\n", yellow("⚠"), len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		switch d.Kind {
		case model.DiagTextureUnresolved:
			fmt.Fprintf(w, "    %s: %s\n", d.Filename, yellow("not in catalog"))
		case model.DiagTextureFetchFailed:
			fmt.Fprintf(w, "    %s: %s (%s)\n", d.Filename, yellow("download failed"), d.URL)
		default:
			fmt.Fprintf(w, "    %s: %s\n", d.Filename, d.Kind)
		}
	}
}

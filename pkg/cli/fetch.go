package cli

import (
	"context"
	"net/http"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hoard/pkg/cli/config"
	"github.com/m-mizutani/hoard/pkg/domain/model"
	"github.com/m-mizutani/hoard/pkg/infra/archive"
	"github.com/m-mizutani/hoard/pkg/infra/download"
	"github.com/m-mizutani/hoard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdFetch() *cli.Command {
	var fetchCfg config.Fetch

	return &cli.Command{
		Name:      "fetch",
		Aliases:   []string{"f"},
		Usage:     "Download and unpack dataset archives",
		ArgsUsage: "[dataset...]",
		Flags:     fetchCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			datasets, err := resolveDatasets(c.Args().Slice())
			if err != nil {
				return err
			}

			httpClient := &http.Client{Timeout: fetchCfg.Timeout}
			dl, err := download.Select(
				download.NewResumable(
					download.WithHTTPClient(httpClient),
					download.WithRetries(int(fetchCfg.Retry)),
				),
				download.NewSimple(httpClient),
			)
			if err != nil {
				return err
			}

			logger.Info("starting fetch",
				"datasets", len(datasets),
				"dest_dir", fetchCfg.DestDir,
				"mechanism", dl.Name(),
			)

			uc := usecase.NewFetch(dl, archive.NewTarGz(),
				usecase.WithReporter(consoleReporter{}),
			)

			// Strictly sequential: one dataset at a time
			for _, ds := range datasets {
				if _, err := uc.Fetch(ctx, ds, fetchCfg.DestDir); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

// resolveDatasets maps CLI arguments to registry entries. With no arguments
// every builtin dataset is fetched.
func resolveDatasets(names []string) ([]model.Dataset, error) {
	if len(names) == 0 {
		return model.Builtin(), nil
	}

	datasets := make([]model.Dataset, 0, len(names))
	for _, name := range names {
		ds, ok := model.Lookup(name)
		if !ok {
			return nil, goerr.New("unknown dataset", goerr.V("name", name))
		}
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

// consoleReporter prints human-readable progress lines to stdout
type consoleReporter struct{}

func (consoleReporter) Stage(dataset string, stage model.Stage) {
	switch stage {
	case model.StageDownload:
		color.New(color.FgCyan).Printf("Downloading %s...\n", dataset)
	case model.StageExtract:
		color.New(color.FgCyan).Printf("Unpacking %s...\n", dataset)
	case model.StageCleanup:
		color.New(color.FgCyan).Printf("Deleting %s archive...\n", dataset)
	case model.StageDone:
		color.New(color.FgGreen).Printf("Done! (%s)\n", dataset)
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/hoard/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdList() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List available datasets",
		Action: func(ctx context.Context, c *cli.Command) error {
			for _, ds := range model.Builtin() {
				color.New(color.Bold).Printf("%s\n", ds.Name)
				fmt.Printf("  %s\n  %s\n", ds.Description, ds.URL)
			}
			return nil
		},
	}
}

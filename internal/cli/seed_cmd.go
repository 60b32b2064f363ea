package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeabis/zeabis/internal/cli/formatter"
	"github.com/zeabis/zeabis/internal/seed"
)

func newSeedCmd(app *App) *cobra.Command {
	var file string
	var check bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo data, or a seed file, into the database",
		Long: `Load the bundled demo data set, or the YAML seed file given with --file.

The file is validated as a whole before anything is written; --check stops
after validation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var f *seed.File
			var err error
			if file != "" {
				f, err = seed.LoadFile(file)
			} else {
				f, err = seed.Demo()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if errs := seed.Validate(f); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintln(out, formatter.StyleRed.Render("✖ ")+e.Error())
				}
				return fmt.Errorf("seed has %d problems", len(errs))
			}
			if check {
				fmt.Fprintln(out, formatter.StyleGreen.Render("✔ ")+"seed is valid")
				return nil
			}

			res, err := seed.Apply(cmd.Context(), app.Services, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.StyleGreen.Render("✔ ")+"Seeded "+res.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file (default: bundled demo data)")
	cmd.Flags().BoolVar(&check, "check", false, "validate only")
	return cmd
}

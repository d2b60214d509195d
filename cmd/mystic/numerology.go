package main

import (
	"strings"

	"github.com/deppfellow/mystic-backend/internal/lib/utils"
	"github.com/deppfellow/mystic-backend/internal/numerology"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// newNumerologyCmd creates the 'numerology' subcommand, which runs the engine
// locally and prints the same body the API returns.
func newNumerologyCmd() *cobra.Command {
	var (
		name    string
		dob     string
		reading bool
	)

	cmd := &cobra.Command{
		Use:   "numerology",
		Short: "Compute life path, expression and soul urge numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name = strings.TrimSpace(name)
			dob = strings.TrimSpace(dob)
			if name == "" || dob == "" {
				return errors.New("Name and dob required")
			}

			var body any = numerology.Compute(name, dob)
			if reading {
				body = numerology.Compute(name, dob).Interpret()
			}

			return utils.PrintJSON(cmd.OutOrStdout(), body)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&dob, "dob", "", "birth date as YYYY-MM-DD")
	cmd.Flags().BoolVar(&reading, "reading", false, "include the meaning of each number")

	return cmd
}

package main

import (
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/deppfellow/mystic-backend/internal/handler"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// newLambdaCmd creates the 'lambda' subcommand, which serves one endpoint per
// function deployment.
func newLambdaCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Serve one handler on the AWS Lambda runtime",
		Long: "Serve one handler on the AWS Lambda runtime.\n\n" +
			"The handler comes from --handler, or from MYSTIC_LAMBDA__HANDLER when the flag is absent.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap()
			if err != nil {
				return err
			}

			if name == "" {
				name = app.server.Config.Lambda.Handler
			}

			invoke, err := lambdaHandler(app.handlers, name)
			if err != nil {
				return err
			}

			app.server.Logger.Info().Str("handler", name).Msg("starting lambda handler")

			lambda.StartWithOptions(invoke, lambda.WithContext(cmd.Context()))

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "handler", "", "handler to serve: chat, compatibility, horoscope, numerology, reading, tarot or zodiac")

	return cmd
}

func lambdaHandler(h *handler.Handlers, name string) (handler.LambdaFunc, error) {
	endpoints := h.Fortune.Endpoints()

	endpoint, ok := endpoints[name]
	if !ok {
		names := make([]string, 0, len(endpoints))
		for n := range endpoints {
			names = append(names, n)
		}
		sort.Strings(names)

		return nil, errors.Errorf("unknown handler %q, expected one of: %s", name, strings.Join(names, ", "))
	}

	return h.Fortune.Lambda(endpoint), nil
}

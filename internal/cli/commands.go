// internal/cli/commands.go
package cli

import (
	"errors"
	"fmt"

	stderrors "sales-hunter-workers/internal/common/errors"
	"sales-hunter-workers/internal/models"
	analyzedealportfolio "sales-hunter-workers/internal/workers/intelligence/analyze-deal-portfolio"
	analyzewinloss "sales-hunter-workers/internal/workers/intelligence/analyze-win-loss"
	assesscustomerhealth "sales-hunter-workers/internal/workers/intelligence/assess-customer-health"
	detectbuyingsignals "sales-hunter-workers/internal/workers/intelligence/detect-buying-signals"
	evaluatealertrules "sales-hunter-workers/internal/workers/intelligence/evaluate-alert-rules"
	maprelationships "sales-hunter-workers/internal/workers/intelligence/map-relationships"

	"github.com/spf13/cobra"
)

func newHealthCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health [file]",
		Short: "Assess customer health from engagement, contract and usage facts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input assesscustomerhealth.Input
			if err := readInput(cmd, args, &input); err != nil {
				return err
			}
			if err := assesscustomerhealth.ValidateInput(&input); err != nil {
				return explain(err)
			}
			return writeOutput(cmd, opts, assesscustomerhealth.AssessHealth(&input))
		},
	}
}

func newWinLossCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "win-loss [file]",
		Short: "Explain a closed deal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var deal models.DealData
			if err := readInput(cmd, args, &deal); err != nil {
				return err
			}
			if err := analyzewinloss.ValidateDeal(deal); err != nil {
				return explain(err)
			}
			return writeOutput(cmd, opts, analyzewinloss.Output{
				DealID:       deal.ID,
				Outcome:      deal.Outcome,
				DealInsights: analyzewinloss.AnalyzeDeal(deal),
			})
		},
	}
}

func newPortfolioCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio [file]",
		Short: "Aggregate win rates and reasons over a JSON array of deals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var deals []models.DealData
			if err := readInput(cmd, args, &deals); err != nil {
				return err
			}
			for i, deal := range deals {
				if err := analyzewinloss.ValidateDeal(deal); err != nil {
					return fmt.Errorf("deal %d: %w", i, explain(err))
				}
			}
			return writeOutput(cmd, opts, analyzedealportfolio.AnalyzePortfolio(deals))
		},
	}
}

func newRelationshipsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "relationships [file]",
		Short: "Infer committee roles, influence and coverage from a JSON array of contacts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var contacts []models.Contact
			if err := readInput(cmd, args, &contacts); err != nil {
				return err
			}
			return writeOutput(cmd, opts, maprelationships.AnalyzeContacts(contacts))
		},
	}
}

type signalsInput struct {
	Prospect *models.Prospect `json:"prospect"`
	Signals  []models.Signal  `json:"signals"`
}

func newSignalsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "signals [file]",
		Short: "Detect buying signals from {prospect, signals}",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input signalsInput
			if err := readInput(cmd, args, &input); err != nil {
				return err
			}
			return writeOutput(cmd, opts, detectbuyingsignals.DetectFromRecords(input.Prospect, input.Signals))
		},
	}
}

func newPriorityCommand(opts *options) *cobra.Command {
	var severity, category string
	cmd := &cobra.Command{
		Use:   "priority",
		Short: "Print the display priority of an alert severity and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sev := models.AlertSeverity(severity)
			cat := models.AlertCategory(category)
			return writeOutput(cmd, opts, map[string]interface{}{
				"severity":    sev,
				"category":    cat,
				"priority":    evaluatealertrules.CalculateAlertPriority(sev, cat),
				"actionItems": evaluatealertrules.ActionItemsFor(cat),
			})
		},
	}
	cmd.Flags().StringVar(&severity, "severity", string(models.SeverityMedium), "alert severity")
	cmd.Flags().StringVar(&category, "category", string(models.CategoryBuyingSignal), "alert category")
	return cmd
}

// explain surfaces the details of a validation StandardError, which Error() omits.
func explain(err error) error {
	var stdErr *stderrors.StandardError
	if errors.As(err, &stdErr) && stdErr.Details != "" {
		return fmt.Errorf("%s: %s", stdErr.Code, stdErr.Details)
	}
	return err
}

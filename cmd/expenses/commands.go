package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"expenses/internal/cli"
	"expenses/internal/core"
)

func initCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the expense store with its header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			location := a.cfg.CSVPath
			switch a.cfg.Backend {
			case "sqlite":
				location = a.cfg.SQLitePath
			case "memory":
				location = "memory"
			}
			cli.RenderInitialized(cmd.OutOrStdout(), location)
			return nil
		},
	}
}

func addCmd(a *app) *cobra.Command {
	var (
		category string
		amount   string
		note     string
		date     string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Long: `Record an expense. The category is a name or its number from
'expenses categories'; the date defaults to today.`,
		Example: `  expenses add --category food --amount 12.50 --note lunch
  expenses add --category 5 --amount 900 --date 2024-05-03`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := core.ParseCategory(category)
			if err != nil {
				return err
			}
			value, err := core.ParseAmount(amount)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				if err := core.ValidateName(name); err != nil {
					return err
				}
				if note == "" {
					note = name
				}
			}

			// Only add publishes events.
			a.svc.SetPublisher(cli.ConnectPublisher(cmd.Context(), a.cfg, a.base))

			e, err := a.svc.Record(cmd.Context(), core.Expense{
				Date:     date,
				Category: c,
				Amount:   value,
				Note:     note,
			})
			if err != nil {
				return err
			}
			cli.RenderSaved(cmd.OutOrStdout(), e)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or number")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "positive amount")
	cmd.Flags().StringVarP(&note, "note", "n", "", "optional note")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&name, "name", "", "expense name, used as the note when no note is given")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every recorded expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.svc.List(cmd.Context())
			if err != nil {
				return err
			}
			cli.RenderExpenses(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

func summaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Total spending per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			totals, err := a.svc.CategorySummary(cmd.Context())
			if err != nil {
				return err
			}
			cli.RenderCategoryTotals(cmd.OutOrStdout(), totals)
			return nil
		},
	}
}

func monthlyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "monthly YYYY-MM",
		Short:   "Total spending per category for one month",
		Example: "  expenses monthly 2024-05",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overview, err := a.svc.MonthlySummary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cli.RenderMonthOverview(cmd.OutOrStdout(), overview)
			return nil
		},
	}
}

func highestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "highest",
		Short: "Show the highest single expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, found, err := a.svc.Highest(cmd.Context())
			if err != nil {
				return err
			}
			cli.RenderHighest(cmd.OutOrStdout(), e, found)
			return nil
		},
	}
}

func exportCmd(a *app) *cobra.Command {
	var (
		output string
		sheet  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the category summary report",
		Long: `Write the category totals to a CSV report. With --sheet the same rows
are also published to the configured Google spreadsheet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			dest := output
			if dest == "" {
				dest = a.cfg.ReportPath
			}

			totals, err := a.svc.ExportReport(ctx, dest)
			if err != nil {
				return err
			}
			if totals.Empty() {
				fmt.Fprintln(out, cli.InfoStyle.Render(cli.MsgNothingToExport))
				return nil
			}
			cli.RenderExported(out, dest)

			if !sheet {
				return nil
			}
			writer, err := cli.OpenReportWriter(ctx, a.cfg, a.base)
			if err != nil {
				return err
			}
			ref, err := a.svc.PublishReport(ctx, writer, totals)
			if err != nil {
				return err
			}
			cli.RenderPublished(out, ref)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "report file (default $EXPENSES_REPORT_FILE or expense_summary_report.csv)")
	cmd.Flags().BoolVar(&sheet, "sheet", false, "also publish the report to Google Sheets")

	return cmd
}

func categoriesCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the expense categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli.RenderCategories(cmd.OutOrStdout())
			return nil
		},
	}
}

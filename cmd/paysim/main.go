package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/paysim/internal/calculation"
	"github.com/rgehrsitz/paysim/internal/compare"
	"github.com/rgehrsitz/paysim/internal/config"
	"github.com/rgehrsitz/paysim/internal/domain"
	"github.com/rgehrsitz/paysim/internal/output"
	"github.com/rgehrsitz/paysim/internal/taxrules"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "paysim %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "paysim",
	Short: "Paycheck Simulation CLI",
	Long:  "Paycheck, withholding, and year-to-date simulation for a compensation plan",
}

// rulesProvider builds the tax rules provider, layering year files from
// --rules-dir over the compiled-in defaults.
func rulesProvider(cmd *cobra.Command) (taxrules.Provider, error) {
	dir, _ := cmd.Flags().GetString("rules-dir")
	if dir == "" {
		return taxrules.NewDefaultProvider(), nil
	}
	return taxrules.LoadDir(dir)
}

func loadScenario(cmd *cobra.Command, path string) (*config.Scenario, error) {
	parser := config.NewInputParser()
	scenario, err := parser.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if year, _ := cmd.Flags().GetInt("year"); year != 0 {
		scenario.Year = year
		if err := parser.ValidateScenario(scenario); err != nil {
			return nil, err
		}
	}
	return scenario, nil
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario-file]",
	Short: "Replay every pay period of a calendar year and report YTD totals",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenario, err := loadScenario(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}
		provider, err := rulesProvider(cmd)
		if err != nil {
			log.Fatal(err)
		}

		sim := calculation.NewSequenceSimulator(provider)
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			sim.SetLogger(simpleCLILogger{})
		}
		result, err := sim.Simulate(scenario.ToSequenceInput())
		if err != nil {
			log.Fatal(err)
		}

		format, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(format)
		if f == nil {
			log.Fatalf("unsupported format: %s", format)
		}
		data, err := f.Format(result)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(data))
	},
}

var projectCmd = &cobra.Command{
	Use:   "project [scenario-file]",
	Short: "Project one hypothetical paycheck from the comp plan",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenario, err := loadScenario(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}
		provider, err := rulesProvider(cmd)
		if err != nil {
			log.Fatal(err)
		}
		rules, err := provider.RulesFor(scenario.Year)
		if err != nil {
			log.Fatal(err)
		}

		in := scenario.ToSequenceInput()
		date := in.ReferencePayDate
		gross, ok := in.CompHistory.GrossAsOf(date)
		if !ok {
			if in.CompPlan == nil {
				log.Fatal(domain.NewConfigNotFoundError("no comp plan resolves for %s", date.Format("2006-01-02")))
			}
			gross = in.CompPlan.GrossPerPeriod
		}
		withholding := domain.DefaultWithholding()
		if in.Withholding != nil {
			withholding = *in.Withholding
		}
		stubIn := calculation.StubInput{
			Date:                   date,
			Gross:                  gross,
			Frequency:              in.Frequency,
			Withholding:            withholding,
			PretaxBenefits:         in.Benefits.PretaxTotal(),
			ImputedIncome:          in.Benefits.ImputedIncome,
			ContributionReducesFIT: true,
			DeferralLimit:          rules.DeferralLimit(in.CatchUpEligible),
		}
		if election, ok := in.RegularElections.AsOf(date); ok {
			stubIn.DesiredContribution = election.DesiredContribution(gross)
			stubIn.ContributionReducesFIT = election.Type.ReducesFITTaxable()
		}

		modeler := calculation.NewStubModeler(rules)
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			modeler.Logger = simpleCLILogger{}
		}
		res, err := modeler.ModelPeriod(stubIn)
		if err != nil {
			log.Fatal(err)
		}
		printProjection(date.Format("2006-01-02"), res)
	},
}

func printProjection(date string, res *domain.ModelResult) {
	fmt.Printf("PROJECTED PAYCHECK %s (rules year %d)\n", date, res.RulesYear)
	fmt.Println("---------------------------------------------")
	fmt.Printf("Gross:               %s\n", output.FormatCurrency(res.Current.Gross))
	fmt.Printf("Pretax benefits:     %s\n", output.FormatCurrency(res.Current.Deductions.FullyPretax))
	fmt.Printf("401(k):              %s\n", output.FormatCurrency(res.Current.Deductions.Retirement))
	fmt.Printf("Post-tax deductions: %s\n", output.FormatCurrency(res.Current.Deductions.PostTax))
	fmt.Printf("FIT withheld:        %s\n", output.FormatCurrency(res.Current.Withheld.FIT))
	fmt.Printf("SS withheld:         %s\n", output.FormatCurrency(res.Current.Withheld.SS))
	fmt.Printf("Medicare withheld:   %s\n", output.FormatCurrency(res.Current.Withheld.Medicare))
	fmt.Printf("Net pay:             %s\n", output.FormatCurrency(res.Current.NetPay))
	for _, w := range res.Warnings {
		fmt.Printf("note: %s\n", w)
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate [scenario-file]",
	Short: "Diff an observed pay-stub record against the model",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenario, err := loadScenario(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}
		if scenario.Observed == nil {
			log.Fatal("scenario file has no observed record to validate")
		}
		provider, err := rulesProvider(cmd)
		if err != nil {
			log.Fatal(err)
		}

		comparator := compare.NewComparator(provider)
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			comparator.Logger = simpleCLILogger{}
		}

		var report *compare.ValidationReport
		if useSequence, _ := cmd.Flags().GetBool("sequence"); useSequence {
			report, err = comparator.ValidateAgainstSequence(scenario.ToSequenceInput(), *scenario.Observed)
		} else {
			report, err = comparator.ValidateRecord(*scenario.Observed)
		}
		if err != nil {
			log.Fatal(err)
		}

		if format, _ := cmd.Flags().GetString("format"); format == "json" {
			data, err := compare.FormatJSON(report)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(string(data))
			return
		}
		fmt.Print(compare.FormatTable(report))
	},
}

func init() {
	rootCmd.PersistentFlags().String("rules-dir", "", "Directory of year-named tax rule files (2025.yaml, ...)")
	rootCmd.PersistentFlags().Int("year", 0, "Override the scenario file's calendar year")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("format", "console", "Output format (console, json, csv)")

	validateCmd.Flags().Bool("sequence", false, "Reconstruct the full year instead of validating the record in isolation")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

package claims

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"cosmossdk.io/log"
)

// Runner executes demo scenarios and prints their outcomes.
type Runner struct {
	logger log.Logger
}

// NewRunner creates a new scenario runner.
func NewRunner(logger log.Logger) *Runner {
	return &Runner{logger: logger}
}

// RunAll executes every scenario, each against a fresh environment.
func (r *Runner) RunAll() error {
	for _, scenario := range DemoScenarios() {
		if err := r.run(scenario); err != nil {
			return err
		}
	}
	return nil
}

// RunNamed executes a single scenario by name.
func (r *Runner) RunNamed(name string) error {
	for _, scenario := range DemoScenarios() {
		if scenario.Name == name {
			return r.run(scenario)
		}
	}
	return fmt.Errorf("unknown scenario %q", name)
}

func (r *Runner) run(scenario Scenario) error {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("  INSURENET CLAIM RESOLUTION DEMO: %s\n", scenario.Name)
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println(scenario.Description)
	fmt.Println()

	env, err := NewEnvironment(r.logger)
	if err != nil {
		return err
	}

	claim, err := scenario.Run(env)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "claim\t%d\n", claim.ID)
	fmt.Fprintf(w, "status\t%s\n", claim.Status)
	fmt.Fprintf(w, "amount\t%s%s\n", claim.Amount, DemoDenom)
	fmt.Fprintf(w, "votes\t%d yes / %d no\n", claim.YesVotes, claim.NoVotes)
	if claim.Resolution != "" {
		fmt.Fprintf(w, "resolved by\t%s\n", claim.Resolution)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(env.Bank.Movements) > 0 {
		fmt.Println("\nescrow movements:")
		for _, movement := range env.Bank.Movements {
			fmt.Printf("  %s\n", movement)
		}
	}

	return nil
}

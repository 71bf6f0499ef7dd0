package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/njchilds90/funcalg"
)

type evalOptions struct {
	file     string
	xs       []float64
	from, to float64
	steps    int
	order    int
	simplify bool
	latex    bool
	workers  int
}

func newEvalCommand() *cobra.Command {
	o := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a function tree, or its derivative, at sample points",
		Long: `Reads a function tree written as YAML or JSON in the tool object format
(see "funcalg spec") and prints its value at each sample point. Points come
from --x, or from --steps evenly spaced intervals of [--from, --to].`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&o.file, "file", "f", "", "YAML or JSON function tree")
	fs.Float64SliceVar(&o.xs, "x", nil, "Sample points")
	fs.Float64Var(&o.from, "from", 0, "Start of the sampled interval")
	fs.Float64Var(&o.to, "to", 1, "End of the sampled interval")
	fs.IntVar(&o.steps, "steps", 0, "Number of intervals between --from and --to")
	fs.IntVar(&o.order, "order", 0, fmt.Sprintf("Derivative order to evaluate (at most %d)", funcalg.MaxOrder))
	fs.BoolVar(&o.simplify, "simplify", false, "Simplify the function before printing and evaluating")
	fs.BoolVar(&o.latex, "latex", false, "Print the function as LaTeX")
	fs.IntVar(&o.workers, "workers", 0, "Goroutines used for sampling (0 means GOMAXPROCS)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (o *evalOptions) points() ([]float64, error) {
	if len(o.xs) > 0 {
		return o.xs, nil
	}
	if o.steps <= 0 {
		return nil, fmt.Errorf("either --x or a positive --steps is required")
	}
	xs := make([]float64, o.steps+1)
	for i := range xs {
		xs[i] = o.from + (o.to-o.from)*float64(i)/float64(o.steps)
	}
	return xs, nil
}

func (o *evalOptions) run(cmd *cobra.Command) error {
	if o.order < 0 || o.order > funcalg.MaxOrder {
		return fmt.Errorf("--order must be between 0 and %d, got %d", funcalg.MaxOrder, o.order)
	}
	f, err := loadFunc(o.file)
	if err != nil {
		return err
	}
	xs, err := o.points()
	if err != nil {
		return err
	}

	d := funcalg.Derivative(f, o.order)
	if o.simplify {
		d = funcalg.Simplify(d)
	}
	render := funcalg.String
	if o.latex {
		render = funcalg.LaTeX
	}

	out := cmd.OutOrStdout()
	if o.order == 0 {
		fmt.Fprintf(out, "f(x) = %s\n", render(d))
	} else {
		fmt.Fprintf(out, "f(x) = %s\n", render(f))
		fmt.Fprintf(out, "f^(%d)(x) = %s\n", o.order, render(d))
	}

	klog.V(1).Infof("sampling %s at %d points", o.file, len(xs))
	ys, err := funcalg.SampleConcurrent(cmd.Context(), d, xs, o.workers)
	if err != nil {
		return err
	}
	for i, x := range xs {
		fmt.Fprintf(out, "%g\t%g\n", x, ys[i])
	}
	return nil
}

// loadFunc reads a function tree from a YAML or JSON file.
func loadFunc(path string) (funcalg.Func, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f, err := funcalg.ParseJSON(j)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

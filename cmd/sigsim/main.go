// Command sigsim is a small playground for the sigsim library: it runs the
// two-input AND walkthrough and prints gate truth tables through the push
// engine.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sigware/sigsim"
	"github.com/sigware/sigsim/siglib"
)

var rootCmd = &cobra.Command{
	Use:   "sigsim",
	Short: "Build and run boolean logic circuits.",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			log.SetLevel(log.DebugLevel)
		}
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the two-input AND gate walkthrough.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a := sigsim.NewSignal(false)
		b := sigsim.NewSignal(false)
		out := sigsim.NewSignal(false)
		and, err := siglib.And([]sigsim.Bit{a, b}, out)
		if err != nil {
			return err
		}
		eng := sigsim.NewEngine(sigsim.Logger(log.StandardLogger()))
		if err := eng.Add(and); err != nil {
			return err
		}
		if err := eng.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = eng.Stop() }()

		show := func(desc string) error {
			if err := eng.Settle(ctx); err != nil {
				return err
			}
			fmt.Printf("%-14s a=%s b=%s out=%s\n", desc, a, b, out)
			return nil
		}
		if err := show("initial"); err != nil {
			return err
		}
		a.Set(true)
		if err := show("set a=1"); err != nil {
			return err
		}
		b.Set(true)
		return show("set b=1")
	},
}

var tableCmd = &cobra.Command{
	Use:   "table [not|buf|and|nand|or|nor|xor|xnor]",
	Short: "Print a gate's truth table.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("inputs")
		return printTable(cmd.Context(), strings.ToLower(args[0]), n)
	},
}

func printTable(ctx context.Context, name string, n int) error {
	if name == "not" || name == "buf" {
		n = 1
	}
	ins := make([]*sigsim.Signal, n)
	bits := make([]sigsim.Bit, n)
	for i := range ins {
		ins[i] = sigsim.NewSignal(false)
		bits[i] = ins[i]
	}
	out := sigsim.NewSignal(false)

	var elem sigsim.Element
	var err error
	switch name {
	case "not":
		elem, err = siglib.NewNot(bits[0], out)
	case "buf":
		elem, err = siglib.Buffer(bits[0], out)
	case "and":
		elem, err = siglib.And(bits, out)
	case "nand":
		elem, err = siglib.Nand(bits, out)
	case "or":
		elem, err = siglib.Or(bits, out)
	case "nor":
		elem, err = siglib.Nor(bits, out)
	case "xor":
		elem, err = siglib.Xor(bits, out)
	case "xnor":
		elem, err = siglib.Xnor(bits, out)
	default:
		return fmt.Errorf("unknown gate %q", name)
	}
	if err != nil {
		return err
	}

	eng := sigsim.NewEngine(sigsim.Logger(log.StandardLogger()))
	if err := eng.Add(elem); err != nil {
		return err
	}
	if err := eng.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = eng.Stop() }()

	for i := 0; i < n; i++ {
		fmt.Printf("in%d ", i)
	}
	fmt.Println("| out")
	for i := 0; i < 1<<uint(n); i++ {
		for bit := 0; bit < n; bit++ {
			v := i&(1<<uint(n-1-bit)) != 0
			ins[bit].Set(v)
			fmt.Printf("%3d ", b2i(v))
		}
		if err := eng.Settle(ctx); err != nil {
			return err
		}
		fmt.Printf("| %3d\n", b2i(out.Get()))
	}
	return nil
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	tableCmd.Flags().IntP("inputs", "n", 2, "number of gate inputs")
	rootCmd.AddCommand(demoCmd, tableCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"ctfmt"
	"ctfmt/internal/diag"
	"ctfmt/internal/diagfmt"
	"ctfmt/internal/driver"
)

var planCmd = &cobra.Command{
	Use:   "plan [flags] <template> [type]...",
	Short: "Show the compiled token plan of a template",
	Long: `Compile a template for the given argument types (Go type syntax, e.g.
int, []string, map[string]float64, char, time.Time) and print its tokens`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	planCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
}

// planDump is the serialized form of a plan.
type planDump struct {
	Template string        `json:"template" msgpack:"template"`
	Args     []string      `json:"args" msgpack:"args"`
	Tokens   []ctfmt.Token `json:"tokens" msgpack:"tokens"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	template, typeNames := args[0], args[1:]
	argTypes, err := driver.ParseTypes(typeNames)
	if err != nil {
		return err
	}
	plan, err := compileOrReport(cmd, template, argTypes)
	if err != nil {
		return err
	}
	dump := planDump{Template: template, Args: typeNames, Tokens: plan.Tokens()}
	if dump.Args == nil {
		dump.Args = []string{}
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "pretty":
		_, err = io.WriteString(out, renderPlanTable(dump)+"\n")
		return err
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dump)
	case "msgpack":
		return msgpack.NewEncoder(out).Encode(dump)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or msgpack)", format)
	}
}

// compileOrReport prints a compile diagnostic the way check does.
func compileOrReport(cmd *cobra.Command, template string, argTypes []reflect.Type) (*ctfmt.Plan, error) {
	plan, err := ctfmt.Compile(template, argTypes...)
	if err == nil {
		return plan, nil
	}
	var ce *ctfmt.Error
	if !errors.As(err, &ce) {
		return nil, err
	}
	bag := diag.NewBag(1)
	bag.Add(ce.Diagnostic())
	opts := diagfmt.PrettyOpts{Color: sess.color, ShowFixits: true}
	if perr := diagfmt.Pretty(cmd.ErrOrStderr(), bag, opts); perr != nil {
		return nil, perr
	}
	return nil, errReported
}

func renderPlanTable(dump planDump) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	field := cell.Foreground(lipgloss.Color("6"))

	rows := make([][]string, 0, len(dump.Tokens))
	for _, tok := range dump.Tokens {
		arg := ""
		if tok.Kind == "field" {
			arg = strconv.Itoa(tok.Arg)
		}
		rows = append(rows, []string{
			tok.Kind,
			strconv.Itoa(tok.Offset),
			strconv.Itoa(tok.Size),
			strconv.Quote(tok.Text),
			arg,
			tok.Type,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KIND", "OFFSET", "SIZE", "TEXT", "ARG", "TYPE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == 0:
				return header
			case row-1 >= 0 && row-1 < len(rows) && rows[row-1][0] == "field":
				return field
			default:
				return cell
			}
		})
	return t.Render()
}

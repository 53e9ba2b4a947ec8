package main

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"ctfmt/internal/driver"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <template> [type:value]...",
	Short: "Render a template with values given on the command line",
	Long: `Compile a template and render it. Each argument is a Go type and a literal
separated by the first colon, e.g. int:42, string:hello, []int:1,2,3,
map[string]int:a=1,b=2, char:x, time.Time:2024-01-02T15:04:05Z`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("locale", "", "BCP 47 locale for the 'L' option (default from config)")
	renderCmd.Flags().BoolP("no-newline", "n", false, "do not print a trailing newline")
}

func runRender(cmd *cobra.Command, args []string) error {
	localeStr, err := cmd.Flags().GetString("locale")
	if err != nil {
		return fmt.Errorf("failed to get locale flag: %w", err)
	}
	noNewline, err := cmd.Flags().GetBool("no-newline")
	if err != nil {
		return fmt.Errorf("failed to get no-newline flag: %w", err)
	}
	if localeStr == "" {
		localeStr = sess.cfg.Locale
	}
	tag := language.Und
	if localeStr != "" {
		if tag, err = language.Parse(localeStr); err != nil {
			return fmt.Errorf("invalid locale %q: %w", localeStr, err)
		}
	}

	template := args[0]
	argTypes, literals, err := parseRenderArgs(args[1:])
	if err != nil {
		return err
	}
	// диагностику печатаем так же, как check
	if _, err := compileOrReport(cmd, template, argTypes); err != nil {
		return err
	}
	out, err := driver.Render(template, argTypes, literals, tag)
	if err != nil {
		return err
	}
	if !noNewline {
		out += "\n"
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func parseRenderArgs(args []string) ([]reflect.Type, []string, error) {
	types := make([]reflect.Type, 0, len(args))
	literals := make([]string, 0, len(args))
	for i, a := range args {
		name, lit, ok := strings.Cut(a, ":")
		if !ok {
			return nil, nil, fmt.Errorf("argument %d: want type:value, got %q", i, a)
		}
		t, err := driver.ParseType(name)
		if err != nil {
			return nil, nil, fmt.Errorf("argument %d: %w", i, err)
		}
		types = append(types, t)
		literals = append(literals, lit)
	}
	return types, literals, nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ExamplesCmd shows usage examples for loglens commands
type ExamplesCmd struct {
	Command string `arg:"" optional:"" help:"Show examples for a specific command (analyze, latest, config)"`
	JSON    bool   `help:"Output as JSON for programmatic access"`
}

// Example represents a single usage example
type Example struct {
	Command     string `json:"command"`
	Description string `json:"description"`
	Output      string `json:"output,omitempty"`
	When        string `json:"when,omitempty"`
}

// CommandExamples holds examples for a single command
type CommandExamples struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Examples    []Example `json:"examples"`
}

var commandExamples = map[string]CommandExamples{
	"analyze": {
		Name:        "analyze",
		Description: "Analyze a log file and emit an aggregated report",
		Examples: []Example{
			{
				Command:     `loglens analyze app.log`,
				Description: "Analyze one file, report to stdout",
				Output:      `{"type":"report","total_lines":1204,"unparsed_lines":3,...}`,
				When:        "Quick error-rate and severity overview of a single log",
			},
			{
				Command:     `loglens analyze access.log-20240101.gz`,
				Description: "Gzipped rotated logs are decompressed transparently",
			},
			{
				Command:     `loglens analyze --dir /var/log/myapp --prefix app.log`,
				Description: "Discover and analyze the newest rotated log in a directory",
				When:        "Cron-style runs against a rotation directory",
			},
			{
				Command:     `loglens analyze app.log --bucket 10m --top 20`,
				Description: "Ten-minute buckets and a larger top-messages list",
			},
			{
				Command:     `loglens analyze app.log --normalize`,
				Description: "Group messages by template (numbers, hex addresses, UUIDs collapsed)",
				When:        "Logs interpolate request IDs or pointers into messages",
			},
			{
				Command:     `loglens analyze --dir /var/log/myapp --report-dir ./reports`,
				Description: "Write a report-YYYY.MM.DD.json artifact; reruns skip existing reports",
			},
		},
	},
	"latest": {
		Name:        "latest",
		Description: "Show the latest rotated log in a directory",
		Examples: []Example{
			{
				Command:     `loglens latest /var/log/myapp`,
				Description: "Print the path of the newest rotated log by embedded date",
			},
			{
				Command:     `loglens latest /var/log/myapp --prefix access.log`,
				Description: "Restrict discovery to one log family",
			},
		},
	},
	"config": {
		Name:        "config",
		Description: "Show or manage configuration",
		Examples: []Example{
			{
				Command:     `loglens config show`,
				Description: "Show the effective configuration",
			},
			{
				Command:     `loglens config generate > ~/.loglens.yaml`,
				Description: "Write a documented sample configuration",
			},
		},
	},
}

// Run executes the examples command
func (c *ExamplesCmd) Run(globals *Globals) error {
	if c.Command != "" {
		examples, ok := commandExamples[strings.ToLower(c.Command)]
		if !ok {
			return outputErrorCommon(globals, "UNKNOWN_COMMAND",
				fmt.Sprintf("no examples for %q (try: analyze, latest, config)", c.Command))
		}
		return c.output(globals, []CommandExamples{examples})
	}

	names := make([]string, 0, len(commandExamples))
	for name := range commandExamples {
		names = append(names, name)
	}
	sort.Strings(names)

	all := make([]CommandExamples, 0, len(names))
	for _, name := range names {
		all = append(all, commandExamples[name])
	}
	return c.output(globals, all)
}

func (c *ExamplesCmd) output(globals *Globals, commands []CommandExamples) error {
	if c.JSON || globals.Format == "ndjson" {
		encoder := json.NewEncoder(globals.Stdout)
		encoder.SetEscapeHTML(false)
		return encoder.Encode(map[string]interface{}{
			"type":     "examples",
			"commands": commands,
		})
	}

	for _, cmd := range commands {
		fmt.Fprintf(globals.Stdout, "%s - %s\n", cmd.Name, cmd.Description)
		for _, ex := range cmd.Examples {
			fmt.Fprintf(globals.Stdout, "\n  %s\n", ex.Command)
			fmt.Fprintf(globals.Stdout, "      %s\n", ex.Description)
			if ex.When != "" {
				fmt.Fprintf(globals.Stdout, "      When: %s\n", ex.When)
			}
			if ex.Output != "" {
				fmt.Fprintf(globals.Stdout, "      Output: %s\n", ex.Output)
			}
		}
		fmt.Fprintln(globals.Stdout)
	}
	return nil
}

package main

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/keshon/svcs/internal/command"
)

func main() {
	tplBytes, err := os.ReadFile("README.md.tmpl")
	if err != nil {
		fmt.Printf("Failed to read template: %v\n", err)
		os.Exit(1)
	}

	out, err := render(string(tplBytes))
	if err != nil {
		fmt.Printf("Failed to render README: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile("README.md", out, 0o644); err != nil {
		fmt.Printf("Failed to write README.md: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("README.md generated successfully")
}

// render fills the template's CommandSections with one block per command,
// in help order.
func render(tplText string) ([]byte, error) {
	tpl, err := template.New("readme").Parse(tplText)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	sections := ""
	for _, op := range command.Operations() {
		cmd, err := command.New(op)
		if err != nil {
			return nil, err
		}
		sections += fmt.Sprintf(
			"### %s\n%s\n```\nsvcs %s\n\n%s\n```\n\n",
			cmd.Name(),
			cmd.Brief(),
			cmd.Usage(),
			cmd.Help(),
		)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, map[string]string{"CommandSections": sections}); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}

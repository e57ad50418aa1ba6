package codegate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers for multiple providers"}
	rootCmd.AddCommand(ci)

	var provider string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI pipeline template for your provider",
		RunE: func(_ *cobra.Command, _ []string) error {
			var path string
			var content string
			switch provider {
			case "github":
				path = filepath.Join(".github", "workflows", "codegate.yml")
				content = `name: codegate
on: [pull_request]
jobs:
  report:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-go@v5
        with:
          go-version: '1.25'
      - run: go build -o bin/codegate .
      - run: ./bin/codegate report --json --min-grade C | tee codegate-report.json
      - uses: actions/upload-artifact@v4
        if: always()
        with:
          name: codegate-report
          path: codegate-report.json
`
			case "gitlab":
				path = ".gitlab-ci.yml"
				content = `stages: [report]
report:
  stage: report
  image: golang:1.25
  script:
    - go build -o bin/codegate .
    - ./bin/codegate report --json --min-grade C | tee codegate-report.json
  artifacts:
    when: always
    paths:
      - codegate-report.json
`
			case "bitbucket":
				path = "bitbucket-pipelines.yml"
				content = `pipelines:
  default:
    - step:
        name: codegate report
        image: golang:1.25
        caches:
          - go
        script:
          - go build -o bin/codegate .
          - ./bin/codegate report --json --min-grade C | tee codegate-report.json
        artifacts:
          - codegate-report.json
`
			default:
				return fmt.Errorf("unknown --provider. Supported: github, gitlab, bitbucket")
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return err
			}
			fmt.Println("Wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "", "CI provider: github | gitlab | bitbucket")
	if err := initCmd.MarkFlagRequired("provider"); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not mark --provider as required:", err)
	}
	ci.AddCommand(initCmd)
}

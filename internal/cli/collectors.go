package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdwarehouse/internal/logging"
	"github.com/yaklabco/mdwarehouse/pkg/collect/collectors"
)

const formatJSON = "json"

// collectorInfo represents a collector in JSON output.
type collectorInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Kinds       []string `json:"kinds"`
	Default     bool     `json:"default"`
}

func newCollectorsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "collectors",
		Short: "List available feature collectors",
		Long: `List the built-in collectors with their descriptions, the token kinds
they subscribe to, and whether extract runs them by default.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := collectors.Catalog()

			switch format {
			case formatJSON:
				return writeCollectorsJSON(cmd.OutOrStdout(), catalog)
			case "text":
			default:
				return withCode(ExitInvalidUsage, fmt.Errorf("invalid format %q: must be text or json", format))
			}

			logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")
			for _, info := range catalog {
				enabled := "no"
				if info.DefaultEnabled {
					enabled = "yes"
				}
				logger.Info(info.Name,
					"default", enabled,
					"kinds", strings.Join(info.Kinds, ","),
					"description", info.Description,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func writeCollectorsJSON(w io.Writer, catalog []collectors.Info) error {
	infos := make([]collectorInfo, 0, len(catalog))
	for _, info := range catalog {
		infos = append(infos, collectorInfo{
			Name:        info.Name,
			Description: info.Description,
			Kinds:       info.Kinds,
			Default:     info.DefaultEnabled,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding collectors: %w", err)
	}
	return nil
}

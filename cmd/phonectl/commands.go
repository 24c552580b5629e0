package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"phone_tools_backend/internal/lookup/service"
	"phone_tools_backend/internal/lookup/transport"
	"phone_tools_backend/platform/cache"
	"phone_tools_backend/platform/config"
	"phone_tools_backend/platform/logger"

	"github.com/spf13/cobra"
)

// =============================================================================
// Commands
// =============================================================================

var validateCmd = &cobra.Command{
	Use:   "validate <number>...",
	Short: "Report whether each number is valid",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		results := make([]transport.ValidateResponse, 0, len(args))
		for _, number := range args {
			results = append(results, svc.Validate(cmd.Context(), transport.ValidateRequest{Number: number, Region: regionFlag}))
		}
		if jsonFlag {
			return writeJSON(cmd.OutOrStdout(), results)
		}
		for _, res := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\t%s\n", res.Number, res.Valid, res.E164)
		}
		return nil
	},
}

var formatCmd = &cobra.Command{
	Use:   "format <number>...",
	Short: "Render numbers in the selected format",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		results := make([]transport.FormatResponse, 0, len(args))
		for _, number := range args {
			res, err := svc.Format(cmd.Context(), transport.FormatRequest{Number: number, Region: regionFlag, Format: formatFlag})
			if err != nil {
				return err
			}
			results = append(results, res)
		}
		if jsonFlag {
			return writeJSON(cmd.OutOrStdout(), results)
		}
		for _, res := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res.Number, res.Formatted)
		}
		return nil
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Find phone numbers in text, read from stdin when no argument is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		text := ""
		if len(args) == 1 {
			text = args[0]
		} else {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = string(data)
		}
		numbers := svc.Extract(cmd.Context(), text, regionFlag)
		if jsonFlag {
			return writeJSON(cmd.OutOrStdout(), transport.ExtractResponse{Numbers: numbers})
		}
		for _, number := range numbers {
			fmt.Fprintln(cmd.OutOrStdout(), number)
		}
		return nil
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Validate one number per line from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		numbers, err := readLines(in)
		if err != nil {
			return err
		}
		res, err := svc.BatchValidate(cmd.Context(), transport.BatchValidateRequest{Numbers: numbers, Region: regionFlag})
		if err != nil {
			return err
		}
		if jsonFlag {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		keys := make([]string, 0, len(res.Results))
		for number := range res.Results {
			keys = append(keys, number)
		}
		sort.Strings(keys)
		for _, number := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", number, res.Results[number])
		}
		return nil
	},
}

var locateCmd = &cobra.Command{
	Use:   "locate <number>...",
	Short: "Print country, region, carrier and number type",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return locateAll(cmd.Context(), cmd.OutOrStdout(), svc, args)
	},
}

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Locate a fixed set of Chinese and international sample numbers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "# china")
		if err := locateAll(cmd.Context(), out, svc, chinaSamples); err != nil {
			return err
		}
		fmt.Fprintln(out, "# international")
		return locateAll(cmd.Context(), out, svc, internationalSamples)
	},
}

// =============================================================================
// Helpers
// =============================================================================

var chinaSamples = []string{
	"+8613812345678",
	"18612345678",
	"010-12345678",
	"021 1234 5678",
	"0755-12345678",
	"400-123-4567",
	"800-123-4567",
	"1-234-5678",
}

var internationalSamples = []string{
	"+1-650-253-0000",
	"+44 20 7031 3000",
	"+81 3-1234-5678",
	"+33 1 70 39 39 39",
	"+49 30 901820",
	"+61 2 9876 5432",
	"+82 2-123-4567",
	"+65 6123 4567",
	"+7 495 123-45-67",
}

func newService() (*service.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.NewWithWriter(cfg.Env, io.Discard)
	return service.New(cfg, cache.Nop{}, 0, log), nil
}

func locateAll(ctx context.Context, out io.Writer, svc *service.Service, numbers []string) error {
	for _, number := range numbers {
		mapping := svc.Locate(ctx, number, regionFlag, langFlag)
		if jsonFlag {
			line, err := json.Marshal(map[string]any{"number": number, "location": mapping})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(line))
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", number, renderMapping(mapping))
	}
	return nil
}

func renderMapping(mapping map[string]string) string {
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+mapping[key])
	}
	return strings.Join(parts, " ")
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Command semcolctl is a thin command-line wrapper around the semcol
// package: it reads a JSON array of records, compresses it, and reports
// the resulting container size; or it reads a container and reports the
// decoded records back as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/semcol"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "semcolctl",
		Short: "Inspect and exercise the semcol columnar container format",
	}

	root.AddCommand(newCompressCmd(), newDecompressCmd())

	return root
}

func newCompressCmd() *cobra.Command {
	var (
		in       string
		out      string
		mode     string
		showStat bool
	)

	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Compress a JSON array of records into a semcol container",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readRecords(in)
			if err != nil {
				return err
			}

			var data []byte
			switch mode {
			case "standard":
				data, err = semcol.Compress(records)
			case "columnar":
				data, err = semcol.CompressColumnarPost(records)
			default:
				return fmt.Errorf("semcolctl: unknown mode %q (want standard or columnar)", mode)
			}
			if err != nil {
				return fmt.Errorf("semcolctl: compress: %w", err)
			}

			if err := writeBytes(out, data); err != nil {
				return err
			}

			if showStat {
				fmt.Fprintf(cmd.OutOrStdout(), "records=%d mode=%s bytes=%d\n", len(records), mode, len(data))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "-", "input JSON records file, or - for stdin")
	cmd.Flags().StringVar(&out, "out", "-", "output container file, or - for stdout")
	cmd.Flags().StringVar(&mode, "mode", "standard", "container variant: standard or columnar")
	cmd.Flags().BoolVar(&showStat, "stats", false, "print record count and output size to stdout")

	return cmd
}

func newDecompressCmd() *cobra.Command {
	var (
		in  string
		out string
	)

	cmd := &cobra.Command{
		Use:   "decompress",
		Short: "Decode a semcol container back into a JSON array of records",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readBytes(in)
			if err != nil {
				return err
			}

			records, err := semcol.Decompress(data)
			if err != nil {
				return fmt.Errorf("semcolctl: decompress: %w", err)
			}

			return writeRecords(out, records)
		},
	}

	cmd.Flags().StringVar(&in, "in", "-", "input container file, or - for stdin")
	cmd.Flags().StringVar(&out, "out", "-", "output JSON records file, or - for stdout")

	return cmd
}

func readRecords(path string) ([]map[string]any, error) {
	data, err := readBytes(path)
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("semcolctl: parsing input records: %w", err)
	}

	return records, nil
}

func writeRecords(path string, records []map[string]any) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("semcolctl: encoding output records: %w", err)
	}

	return writeBytes(path, append(data, '\n'))
}

func readBytes(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

func writeBytes(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)

		return err
	}

	return os.WriteFile(path, data, 0o644)
}

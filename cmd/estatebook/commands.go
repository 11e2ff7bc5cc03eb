package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/denismitr/estatebook/export"
	"github.com/denismitr/estatebook/internal/config"
	"github.com/denismitr/estatebook/internal/tui"
	"github.com/denismitr/estatebook/schema"
	"github.com/denismitr/estatebook/view"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ErrInvalidAssignment = errors.New("expected key=value")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "estatebook",
		Short:         "Offline record keeper for sales follow-ups and land records",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Run the terminal UI",
			Args:  cobra.NoArgs,
			RunE:  runTUI,
		},
		newListCmd(),
		newStatusesCmd(),
		newAddCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newExportCmd(),
	)

	return root
}

func datasetNames() string {
	names := make([]string, len(schema.Datasets))
	for i, d := range schema.Datasets {
		names[i] = d.String()
	}
	return strings.Join(names, "|")
}

// parseIndex turns the 1-based position printed by list into a store index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.Errorf("invalid record number %q", s)
	}
	return n - 1, nil
}

func parseAssignments(sets []string) ([][2]string, error) {
	out := make([][2]string, 0, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, errors.Wrapf(ErrInvalidAssignment, "%q", s)
		}
		out = append(out, [2]string{strings.TrimSpace(k), v})
	}
	return out, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	return tui.Run(cmd.Context(), tui.New(cmd.Context(), a.store, a.exporter, a.log))
}

func newListCmd() *cobra.Command {
	var q view.Query

	cmd := &cobra.Command{
		Use:   "list <" + datasetNames() + ">",
		Short: "Print the records of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := schema.ParseDataset(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			table := view.Render(schema.For(d), a.store.Records(d), q)
			return printTable(cmd.OutOrStdout(), table)
		},
	}

	cmd.Flags().StringVar(&q.Search, "search", "", "only records containing this text")
	cmd.Flags().StringVar(&q.Status, "status", "", "only records with this status")
	return cmd
}

func printTable(w io.Writer, t view.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	// the actions column has no meaning here
	cols := t.Columns[:len(t.Columns)-1]
	fmt.Fprintf(tw, "#\t%s\n", strings.Join(cols, "\t"))

	for _, row := range t.Rows {
		cells := make([]string, 0, len(row.Cells)+1)
		for _, c := range row.Cells {
			cells = append(cells, strings.ReplaceAll(c, "\n", " "))
		}
		cells = append(cells, row.StatusText())
		fmt.Fprintf(tw, "%d\t%s\n", row.Index+1, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}

func newStatusesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses <" + datasetNames() + ">",
		Short: "Print the status filter options of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := schema.ParseDataset(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, o := range view.StatusOptions(schema.For(d), a.store.Records(d)) {
				fmt.Fprintln(cmd.OutOrStdout(), o.Label)
			}
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "add <" + datasetNames() + ">",
		Short: "Add a record at the top of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := schema.ParseDataset(args[0])
			if err != nil {
				return err
			}

			assignments, err := parseAssignments(sets)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := a.forms.Open(d, nil)
			if err != nil {
				return err
			}

			return saveForm(cmd, a, f.Set, assignments, fmt.Sprintf("added %s record 1", d.Title()))
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value as key=value, repeatable")
	return cmd
}

func newEditCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "edit <" + datasetNames() + "> <number>",
		Short: "Change fields of a record, keeping the others",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := schema.ParseDataset(args[0])
			if err != nil {
				return err
			}

			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}

			assignments, err := parseAssignments(sets)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := a.forms.OpenAt(d, i)
			if err != nil {
				return err
			}

			return saveForm(cmd, a, f.Set, assignments, fmt.Sprintf("updated %s record %d", d.Title(), i+1))
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value as key=value, repeatable")
	return cmd
}

func saveForm(cmd *cobra.Command, a *app, set func(k, v string) error, assignments [][2]string, done string) error {
	for _, as := range assignments {
		if err := set(as[0], as[1]); err != nil {
			a.forms.Cancel()
			return err
		}
	}

	if err := a.forms.Save(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <" + datasetNames() + "> <number>",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := schema.ParseDataset(args[0])
			if err != nil {
				return err
			}

			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			rec, err := a.store.At(d, i)
			if err != nil {
				return err
			}

			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %s record %d?", d.Title(), i+1)) {
				fmt.Fprintln(cmd.OutOrStdout(), "delete cancelled")
				return nil
			}

			if err := a.store.Remove(cmd.Context(), d, rec.ID()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s record %d\n", d.Title(), i+1)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func newExportCmd() *cobra.Command {
	var format, dir string

	cmd := &cobra.Command{
		Use:   "export <" + datasetNames() + ">",
		Short: "Write a dataset to <dataset>_export.json or .xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := schema.ParseDataset(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			ex := a.exporter
			if dir != "" {
				ex = export.NewExporter(dir, a.log)
			}

			path, err := ex.Write(d, format, a.store.Records(d))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", export.FormatJSON, "json or xlsx")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory, overrides --export-dir")
	return cmd
}

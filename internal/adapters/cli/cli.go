package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/adapters/repl"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/app"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
	"github.com/spf13/cobra"
)

type runner struct {
	svc       app.ApplicationService
	role      string
	jsonOut   bool
	sessionID string
}

// NewRootCommand builds the "app" command tree over svc. Each invocation runs
// on a fresh session switched to the --role flag.
func NewRootCommand(svc app.ApplicationService) *cobra.Command {
	r := &runner{svc: svc}

	root := &cobra.Command{
		Use:           "app",
		Short:         "SIA-RS BLU hospital back-office console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := svc.ResolveSession(cmd.Context(), "")
			if err != nil {
				return err
			}
			if _, err := svc.SelectRole(cmd.Context(), sess.ID, r.role); err != nil {
				return err
			}
			r.sessionID = sess.ID
			return nil
		},
	}
	root.PersistentFlags().StringVar(&r.role, "role", string(core.DefaultRole), "viewing role: admin, accountant or doctor")
	root.PersistentFlags().BoolVar(&r.jsonOut, "json", false, "print JSON instead of tables")

	root.AddCommand(
		r.reportCommand(),
		r.journalCommand(),
		r.accountsCommand(),
		r.patientsCommand(),
		r.summarizeCommand(),
		r.replCommand(),
	)
	return root
}

func (r *runner) printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// gate reports false, after printing the denial text, when the role may not view area.
func (r *runner) gate(cmd *cobra.Command, area core.Area) (bool, error) {
	res, err := r.svc.CheckAccess(cmd.Context(), r.sessionID, area)
	if err != nil {
		return false, err
	}
	if !res.Allowed {
		if r.jsonOut {
			return false, r.printJSON(cmd.OutOrStdout(), res)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Message)
		return false, nil
	}
	return true, nil
}

func (r *runner) reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial statements",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "balance-sheet",
		Aliases: []string{"bs", "neraca"},
		Short:   "Comparative statement of financial position",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ok, err := r.gate(cmd, core.AreaFinancial); !ok {
				return err
			}
			bs, err := r.svc.GetBalanceSheet(cmd.Context())
			if err != nil {
				return err
			}
			if r.jsonOut {
				return r.printJSON(cmd.OutOrStdout(), bs)
			}
			repl.PrintBalanceSheet(cmd.OutOrStdout(), bs)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "activity",
		Aliases: []string{"lo"},
		Short:   "Activity statement with surplus or deficit",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ok, err := r.gate(cmd, core.AreaFinancial); !ok {
				return err
			}
			act, err := r.svc.GetActivity(cmd.Context())
			if err != nil {
				return err
			}
			if r.jsonOut {
				return r.printJSON(cmd.OutOrStdout(), act)
			}
			repl.PrintActivity(cmd.OutOrStdout(), act)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "receivables",
		Aliases: []string{"aging"},
		Short:   "Receivables aging and provision schedule",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ok, err := r.gate(cmd, core.AreaFinancial); !ok {
				return err
			}
			res, err := r.svc.GetReceivablesAging(cmd.Context())
			if err != nil {
				return err
			}
			if r.jsonOut {
				return r.printJSON(cmd.OutOrStdout(), res)
			}
			repl.PrintReceivables(cmd.OutOrStdout(), res)
			return nil
		},
	})
	return cmd
}

func (r *runner) journalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "General journal",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ok, err := r.gate(cmd, core.AreaFinancial); !ok {
				return err
			}
			res, err := r.svc.ListJournalEntries(cmd.Context())
			if err != nil {
				return err
			}
			if r.jsonOut {
				return r.printJSON(cmd.OutOrStdout(), res)
			}
			repl.PrintJournal(cmd.OutOrStdout(), res)
			return nil
		},
	})

	var form core.EntryForm
	post := &cobra.Command{
		Use:   "post",
		Short: "Record a journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ok, err := r.gate(cmd, core.AreaFinancial); !ok {
				return err
			}
			line, err := r.svc.PostJournalEntry(cmd.Context(), app.PostEntryRequest{SessionID: r.sessionID, Form: form})
			if err != nil {
				return err
			}
			if r.jsonOut {
				return r.printJSON(cmd.OutOrStdout(), line)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Entry %s posted: DR %s / CR %s  %s\n",
				line.ID, line.DebitAccount, line.CreditAccount, core.FormatIDR(line.Amount))
			return nil
		},
	}
	post.Flags().StringVar(&form.Date, "date", "", "entry date (YYYY-MM-DD)")
	post.Flags().StringVar(&form.Description, "description", "", "entry description")
	post.Flags().StringVar(&form.Reference, "reference", "", "document reference")
	post.Flags().StringVar(&form.DebitAccount, "debit", "", "debit account code")
	post.Flags().StringVar(&form.CreditAccount, "credit", "", "credit account code")
	post.Flags().StringVar(&form.Amount, "amount", "", "amount in IDR")
	cmd.AddCommand(post)

	return cmd
}

func (r *runner) accountsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"coa"},
		Short:   "Chart of accounts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ok, err := r.gate(cmd, core.AreaFinancial); !ok {
				return err
			}
			res, err := r.svc.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}
			if r.jsonOut {
				return r.printJSON(cmd.OutOrStdout(), res)
			}
			repl.PrintAccounts(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func (r *runner) patientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Patient directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "search [query]",
		Short: "Search patients by family or given name",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := r.gate(cmd, core.AreaClinical); !ok {
				return err
			}
			res, err := r.svc.SearchPatients(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if r.jsonOut {
				return r.printJSON(cmd.OutOrStdout(), res)
			}
			repl.PrintPatients(cmd.OutOrStdout(), res)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := r.gate(cmd, core.AreaClinical); !ok {
				return err
			}
			p, err := r.svc.GetPatient(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if r.jsonOut {
				return r.printJSON(cmd.OutOrStdout(), p)
			}
			repl.PrintPatient(cmd.OutOrStdout(), p)
			return nil
		},
	})
	return cmd
}

func (r *runner) summarizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize [note]",
		Short: "Draft an after visit summary; reads the note from stdin when no argument is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := r.gate(cmd, core.AreaClinical); !ok {
				return err
			}
			note := strings.Join(args, " ")
			if note == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read note: %w", err)
				}
				note = string(raw)
			}
			res, err := r.svc.SummarizeNote(cmd.Context(), app.SummarizeRequest{SessionID: r.sessionID, Note: note})
			if err != nil {
				return err
			}
			if r.jsonOut {
				return r.printJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Summary)
			return nil
		},
	}
}

func (r *runner) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return repl.Run(cmd.Context(), r.svc, bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout())
		},
	}
}

package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/app"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
)

const width = 78

func rule(w io.Writer, ch string) {
	fmt.Fprintln(w, strings.Repeat(ch, width))
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w)
	rule(w, "=")
	fmt.Fprintf(w, "  %s\n", title)
	rule(w, "=")
}

// PrintBalanceSheet writes the comparative statement of financial position.
func PrintBalanceSheet(w io.Writer, bs *core.BalanceSheet) {
	heading(w, "STATEMENT OF FINANCIAL POSITION")
	fmt.Fprintf(w, "  %-36s %18s %18s\n", "ACCOUNT", "CURRENT", "PREVIOUS")
	for _, sec := range bs.Sections {
		rule(w, "-")
		fmt.Fprintf(w, "  %s\n", strings.ToUpper(sec.Category))
		for _, l := range sec.Lines {
			fmt.Fprintf(w, "    %-34s %18s %18s\n", l.Name, core.FormatIDR(l.AmountCurrent), core.FormatIDR(l.AmountPrevious))
		}
		fmt.Fprintf(w, "  %-36s %18s %18s\n", "Total "+sec.Category, core.FormatIDR(sec.TotalCurrent), core.FormatIDR(sec.TotalPrevious))
	}
	rule(w, "=")
}

// PrintActivity writes the activity statement and its surplus or deficit.
func PrintActivity(w io.Writer, a *core.ActivitySummary) {
	heading(w, "ACTIVITY STATEMENT")
	fmt.Fprintln(w, "  REVENUE")
	for _, l := range a.Revenues {
		fmt.Fprintf(w, "    %-40s %18s\n", l.Name, core.FormatIDR(l.AmountCurrent))
	}
	fmt.Fprintln(w, "  EXPENSE")
	for _, l := range a.Expenses {
		fmt.Fprintf(w, "    %-40s %18s\n", l.Name, core.FormatIDR(l.AmountCurrent))
	}
	rule(w, "-")
	fmt.Fprintf(w, "  %-42s %18s\n", "Total Revenue", core.FormatIDR(a.Revenue))
	fmt.Fprintf(w, "  %-42s %18s\n", "Total Expense", core.FormatIDR(a.Expense))
	label := "SURPLUS"
	if !a.IsSurplus() {
		label = "DEFICIT"
	}
	fmt.Fprintf(w, "  %-42s %18s\n", label, core.FormatIDR(a.Surplus))
	rule(w, "=")
}

// PrintReceivables writes the aging schedule with provision totals.
func PrintReceivables(w io.Writer, r *app.ReceivablesResult) {
	heading(w, "RECEIVABLES AGING & PROVISION")
	fmt.Fprintf(w, "  Policy: %s\n", r.Policy)
	rule(w, "-")
	fmt.Fprintf(w, "  %-22s %18s %5s %-9s %5s %14s\n", "PAYER", "AMOUNT", "AGE", "TIER", "RATE", "PROVISION")
	for _, it := range r.Items {
		fmt.Fprintf(w, "  %-22s %18s %5d %-9s %5s %14s\n",
			it.PayerName, core.FormatIDR(it.Amount), it.AgeMonths, it.Tier, core.FormatPercent(it.ProvisionRate), core.FormatIDR(it.ProvisionAmount))
	}
	rule(w, "-")
	fmt.Fprintf(w, "  %-40s %18s\n", "Total Receivables", core.FormatIDR(r.TotalReceivable))
	fmt.Fprintf(w, "  %-40s %18s\n", "Allowance for Doubtful Accounts", core.FormatIDR(r.TotalProvision))
	fmt.Fprintf(w, "  %-40s %18s\n", "Net Realizable Receivables", core.FormatIDR(r.NetReceivable))
	rule(w, "=")
}

// PrintJournal writes the ledger newest first.
func PrintJournal(w io.Writer, j *app.JournalListResult) {
	heading(w, "GENERAL JOURNAL")
	if len(j.Entries) == 0 {
		fmt.Fprintln(w, "  No entries.")
		rule(w, "=")
		return
	}
	for _, e := range j.Entries {
		fmt.Fprintf(w, "  %s  %-10s %s\n", e.Date, e.Reference, e.Description)
		fmt.Fprintf(w, "      DR %-6s %-32s %18s\n", e.DebitAccount, e.DebitName, core.FormatIDR(e.Amount))
		fmt.Fprintf(w, "      CR %-6s %-32s %18s\n", e.CreditAccount, e.CreditName, core.FormatIDR(e.Amount))
		fmt.Fprintf(w, "      posted by %s\n", e.PostedBy)
	}
	rule(w, "=")
}

func PrintAccounts(w io.Writer, r *app.AccountListResult) {
	heading(w, "CHART OF ACCOUNTS")
	fmt.Fprintf(w, "  %-6s %-42s %s\n", "CODE", "NAME", "TYPE")
	rule(w, "-")
	for _, a := range r.Accounts {
		fmt.Fprintf(w, "  %-6s %-42s %s\n", a.Code, a.Name, a.Type)
	}
	rule(w, "=")
}

func PrintPatients(w io.Writer, r *app.PatientListResult) {
	heading(w, "PATIENTS")
	if len(r.Patients) == 0 {
		fmt.Fprintln(w, "  No patients found.")
		rule(w, "=")
		return
	}
	for _, p := range r.Patients {
		fmt.Fprintf(w, "  %-6s %-30s %-7s %s\n", p.ID, p.DirectoryName(), p.Gender, p.BirthDate)
	}
	rule(w, "=")
}

// PrintPatient writes the patient header shown above the note editor.
func PrintPatient(w io.Writer, p *core.Patient) {
	fmt.Fprintf(w, "\n%s  (%s)\n", p.DisplayName(), p.ResourcePath())
	fmt.Fprintf(w, "  gender %s, born %s\n", p.Gender, p.BirthDate)
	for _, id := range p.Identifier {
		fmt.Fprintf(w, "  %s %s\n", id.System, id.Value)
	}
}

func PrintSummary(w io.Writer, summary string) {
	heading(w, "DRAFT AFTER VISIT SUMMARY")
	fmt.Fprintln(w, summary)
	rule(w, "=")
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `
Commands:
  /role <admin|accountant|doctor>   switch viewing role
  /whoami                           show session role and actor
  /balance                          statement of financial position
  /activity                         activity statement
  /aging                            receivables aging and provision
  /journal                          general journal
  /accounts                         chart of accounts
  /post                             record a journal entry (guided)
  /patients [query]                 search patients by name
  /select <patient-id>              choose the patient to document
  /note                             enter a clinical note (end with a line containing ".")
  /summarize                        draft a visit summary for the last note
  /help                             this help
  /exit                             quit
`)
}

package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/app"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
)

var errExit = errors.New("exit")

type shell struct {
	ctx       context.Context
	svc       app.ApplicationService
	reader    *bufio.Reader
	out       io.Writer
	sessionID string
	note      string
}

// Run starts the interactive REPL loop on its own dashboard session.
// It reads slash commands from reader until /exit or end of input.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, out io.Writer) error {
	sess, err := svc.ResolveSession(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	sh := &shell{ctx: ctx, svc: svc, reader: reader, out: out, sessionID: sess.ID}

	fmt.Fprintln(out, "SIA-RS BLU console")
	fmt.Fprintf(out, "Role: %s · Actor: %s\n", sess.Role.Label(), sess.Actor)
	fmt.Fprintln(out, "Type /help for commands.")
	fmt.Fprintln(out, strings.Repeat("-", width))

	for {
		fmt.Fprint(out, "\n> ")
		line, readErr := reader.ReadString('\n')
		input := strings.TrimSpace(line)

		if input != "" {
			if err := sh.dispatch(input); err != nil {
				if errors.Is(err, errExit) {
					return nil
				}
				fmt.Fprintf(out, "Error: %v\n", err)
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}

func (sh *shell) dispatch(input string) error {
	if !strings.HasPrefix(input, "/") {
		fmt.Fprintln(sh.out, "Commands start with '/'. Type /help.")
		return nil
	}
	tokens := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]

	switch cmd {
	case "role":
		if len(args) < 1 {
			fmt.Fprintln(sh.out, "Usage: /role <admin|accountant|doctor>")
			return nil
		}
		sess, err := sh.svc.SelectRole(sh.ctx, sh.sessionID, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "Role switched to %s.\n", sess.Role.Label())

	case "whoami":
		sess, err := sh.svc.ResolveSession(sh.ctx, sh.sessionID)
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "%s · %s\n", sess.Actor, sess.Role.Label())

	case "balance", "bs":
		if !sh.allowed(core.AreaFinancial) {
			return nil
		}
		bs, err := sh.svc.GetBalanceSheet(sh.ctx)
		if err != nil {
			return err
		}
		PrintBalanceSheet(sh.out, bs)

	case "activity", "lo":
		if !sh.allowed(core.AreaFinancial) {
			return nil
		}
		act, err := sh.svc.GetActivity(sh.ctx)
		if err != nil {
			return err
		}
		PrintActivity(sh.out, act)

	case "aging", "receivables":
		if !sh.allowed(core.AreaFinancial) {
			return nil
		}
		res, err := sh.svc.GetReceivablesAging(sh.ctx)
		if err != nil {
			return err
		}
		PrintReceivables(sh.out, res)

	case "journal", "j":
		if !sh.allowed(core.AreaFinancial) {
			return nil
		}
		res, err := sh.svc.ListJournalEntries(sh.ctx)
		if err != nil {
			return err
		}
		PrintJournal(sh.out, res)

	case "accounts", "coa":
		if !sh.allowed(core.AreaFinancial) {
			return nil
		}
		res, err := sh.svc.ListAccounts(sh.ctx)
		if err != nil {
			return err
		}
		PrintAccounts(sh.out, res)

	case "post":
		if !sh.allowed(core.AreaFinancial) {
			return nil
		}
		return sh.postWizard()

	case "patients", "p":
		if !sh.allowed(core.AreaClinical) {
			return nil
		}
		res, err := sh.svc.SearchPatients(sh.ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		PrintPatients(sh.out, res)

	case "select":
		if !sh.allowed(core.AreaClinical) {
			return nil
		}
		if len(args) < 1 {
			fmt.Fprintln(sh.out, "Usage: /select <patient-id>")
			return nil
		}
		if _, err := sh.svc.SelectPatient(sh.ctx, sh.sessionID, strings.ToUpper(args[0])); err != nil {
			return err
		}
		p, err := sh.svc.GetPatient(sh.ctx, strings.ToUpper(args[0]))
		if err != nil {
			return err
		}
		sh.note = ""
		PrintPatient(sh.out, p)

	case "note":
		if !sh.allowed(core.AreaClinical) {
			return nil
		}
		note, err := sh.readNote()
		if err != nil {
			return err
		}
		sh.note = note
		fmt.Fprintf(sh.out, "Note captured (%d characters). Run /summarize.\n", len(note))

	case "summarize", "sum":
		if !sh.allowed(core.AreaClinical) {
			return nil
		}
		if strings.TrimSpace(sh.note) == "" {
			fmt.Fprintln(sh.out, "No note captured. Use /note first.")
			return nil
		}
		fmt.Fprintln(sh.out, "Summarizing...")
		res, err := sh.svc.SummarizeNote(sh.ctx, app.SummarizeRequest{SessionID: sh.sessionID, Note: sh.note})
		if err != nil {
			return err
		}
		PrintSummary(sh.out, res.Summary)

	case "help", "h":
		printHelp(sh.out)

	case "exit", "quit", "q":
		return errExit

	default:
		fmt.Fprintf(sh.out, "Unknown command: /%s. Type /help.\n", cmd)
	}
	return nil
}

// allowed prints the access-denied text and returns false when the session's
// role may not view area.
func (sh *shell) allowed(area core.Area) bool {
	res, err := sh.svc.CheckAccess(sh.ctx, sh.sessionID, area)
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return false
	}
	if !res.Allowed {
		fmt.Fprintln(sh.out, res.Message)
		return false
	}
	return true
}

func (sh *shell) prompt(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(sh.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(sh.out, "%s: ", label)
	}
	line, err := sh.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	v := strings.TrimSpace(line)
	if v == "" {
		return def, nil
	}
	return v, nil
}

// readNote collects lines until a line containing only "." or end of input.
func (sh *shell) readNote() (string, error) {
	fmt.Fprintln(sh.out, "Enter the clinical note. Finish with a line containing only \".\"")
	var lines []string
	for {
		line, err := sh.reader.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "." {
			break
		}
		if trimmed != "" || err == nil {
			lines = append(lines, trimmed)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// postWizard prompts for each journal entry field and posts the entry.
func (sh *shell) postWizard() error {
	var form core.EntryForm
	steps := []struct {
		label string
		dst   *string
	}{
		{"Date (YYYY-MM-DD)", &form.Date},
		{"Description", &form.Description},
		{"Reference", &form.Reference},
		{"Debit account code", &form.DebitAccount},
		{"Credit account code", &form.CreditAccount},
		{"Amount (IDR)", &form.Amount},
	}
	for _, s := range steps {
		v, err := sh.prompt(s.label, "")
		if err != nil {
			return err
		}
		*s.dst = v
	}

	line, err := sh.svc.PostJournalEntry(sh.ctx, app.PostEntryRequest{SessionID: sh.sessionID, Form: form})
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Entry posted: DR %s %s / CR %s %s  %s\n",
		line.DebitAccount, line.DebitName, line.CreditAccount, line.CreditName, core.FormatIDR(line.Amount))
	return nil
}

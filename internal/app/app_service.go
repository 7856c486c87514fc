package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/ai"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
	"github.com/rs/zerolog"
)

type appService struct {
	sessions   *SessionStore
	ledger     core.LedgerService
	reporting  core.ReportingService
	patients   core.PatientDirectory
	summarizer ai.SummaryService
	log        zerolog.Logger
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	sessions *SessionStore,
	ledger core.LedgerService,
	reporting core.ReportingService,
	patients core.PatientDirectory,
	summarizer ai.SummaryService,
	log zerolog.Logger,
) ApplicationService {
	return &appService{
		sessions:   sessions,
		ledger:     ledger,
		reporting:  reporting,
		patients:   patients,
		summarizer: summarizer,
		log:        log,
	}
}

func (s *appService) ResolveSession(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id != "" {
		if sess, ok := s.sessions.Get(id); ok {
			return &sess, nil
		}
	}
	sess := s.sessions.Create()
	s.log.Debug().Str("session_id", sess.ID).Msg("session created")
	return &sess, nil
}

func (s *appService) SelectRole(_ context.Context, sessionID, role string) (*Session, error) {
	r, err := core.ParseRole(role)
	if err != nil {
		return nil, err
	}
	sess, err := s.sessions.Update(sessionID, func(sess *Session) { sess.Role = r })
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *appService) CheckAccess(_ context.Context, sessionID string, area core.Area) (*AccessResult, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	res := &AccessResult{Session: &sess, Area: area, Allowed: sess.Role.CanAccess(area)}
	if !res.Allowed {
		res.Message = core.AccessDeniedMessage(area)
	}
	return res, nil
}

func (s *appService) GetBalanceSheet(ctx context.Context) (*core.BalanceSheet, error) {
	return s.reporting.GetBalanceSheet(ctx)
}

func (s *appService) GetActivity(ctx context.Context) (*core.ActivitySummary, error) {
	return s.reporting.GetActivity(ctx)
}

func (s *appService) GetReceivablesAging(ctx context.Context) (*ReceivablesResult, error) {
	analysis, err := s.reporting.GetReceivablesAging(ctx)
	if err != nil {
		return nil, err
	}
	return &ReceivablesResult{ReceivablesAnalysis: *analysis, Policy: core.ProvisionPolicy}, nil
}

func (s *appService) ListAccounts(_ context.Context) (*AccountListResult, error) {
	return &AccountListResult{Accounts: s.ledger.Chart().Accounts()}, nil
}

func (s *appService) journalLine(e core.JournalEntry) JournalLine {
	chart := s.ledger.Chart()
	return JournalLine{
		JournalEntry: e,
		DebitName:    chart.AccountName(e.DebitAccount),
		CreditName:   chart.AccountName(e.CreditAccount),
	}
}

func (s *appService) ListJournalEntries(ctx context.Context) (*JournalListResult, error) {
	entries := s.ledger.Entries(ctx)
	lines := make([]JournalLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, s.journalLine(e))
	}
	return &JournalListResult{Entries: lines}, nil
}

func (s *appService) PostJournalEntry(ctx context.Context, req PostEntryRequest) (*JournalLine, error) {
	sess, ok := s.sessions.Get(req.SessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry, err := s.ledger.Submit(ctx, req.Form, sess.Actor)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("entry_id", entry.ID).
		Str("debit", entry.DebitAccount).
		Str("credit", entry.CreditAccount).
		Str("amount", entry.Amount.String()).
		Str("posted_by", entry.PostedBy).
		Msg("journal entry posted")
	line := s.journalLine(*entry)
	return &line, nil
}

func (s *appService) SearchPatients(ctx context.Context, query string) (*PatientListResult, error) {
	query = strings.TrimSpace(query)
	patients, err := s.patients.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("patient search failed: %w", err)
	}
	return &PatientListResult{Query: query, Patients: patients}, nil
}

func (s *appService) GetPatient(ctx context.Context, id string) (*core.Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *appService) SelectPatient(ctx context.Context, sessionID, patientID string) (*Session, error) {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	sess, err := s.sessions.Update(sessionID, func(sess *Session) {
		if sess.SelectedPatientID != patientID {
			sess.LastNote = ""
			sess.LastSummary = ""
		}
		sess.SelectedPatientID = patientID
	})
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *appService) SummarizeNote(ctx context.Context, req SummarizeRequest) (*SummaryResult, error) {
	note := strings.TrimSpace(req.Note)
	if note == "" {
		return nil, ErrEmptyNote
	}

	release, err := s.sessions.TryBeginSummary(req.SessionID)
	if err != nil {
		if errors.Is(err, ErrSummaryInProgress) {
			s.log.Warn().Str("session_id", req.SessionID).Msg("summary already in flight")
		}
		return nil, err
	}
	defer release()

	summary := s.summarizer.SummarizeNote(ctx, req.Note)

	sess, err := s.sessions.Update(req.SessionID, func(sess *Session) {
		sess.LastNote = req.Note
		sess.LastSummary = summary
	})
	if err != nil {
		return nil, err
	}
	return &SummaryResult{Session: &sess, Note: req.Note, Summary: summary}, nil
}

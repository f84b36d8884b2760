package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/moneybook-app/moneybook/internal/apperrors"
	"github.com/moneybook-app/moneybook/internal/core/domain"
	"github.com/moneybook-app/moneybook/internal/core/services"
)

type ImporterTestSuite struct {
	suite.Suite
	ledger *services.Ledger
	fake   *fakePersistence
}

func (s *ImporterTestSuite) SetupTest() {
	s.ledger, s.fake = newTestLedger(s.T())
}

// seedLedger fills the ledger with one record of every kind and returns
// the inserted transaction.
func (s *ImporterTestSuite) seedLedger() domain.Transaction {
	t := s.T()
	cash := insertCategory(t, s.ledger, "Cash", domain.BanksAndCash)
	expenses := insertCategory(t, s.ledger, "Food", domain.Expenses)
	wallet := insertAccount(t, s.ledger, "Wallet", cash, decimal.RequireFromString("100"))
	groceries := insertAccount(t, s.ledger, "Groceries", expenses, decimal.Zero)
	contact := insertContact(t, s.ledger, "Acme")

	group, err := domain.NewTransactionGroup(15, 6, 2026)
	s.Require().NoError(err)
	group, err = s.ledger.InsertTransactionGroup(context.Background(), group)
	s.Require().NoError(err)

	return insertTransaction(t, s.ledger, "42.50", wallet, groceries, txSpec{
		comment:   "lunch",
		groupID:   group.ID,
		contactID: contact.ID,
	})
}

func (s *ImporterTestSuite) TestFullDumpRequiresEraseFlag() {
	s.seedLedger()
	data := s.ledger.Snapshot()

	err := services.NewImporter(s.ledger, 0).FullDump(context.Background(), data, false, nil)
	s.ErrorIs(err, services.ErrEraseNotConfirmed)

	s.Len(s.ledger.Transactions(), 1, "nothing may be touched without the flag")
}

func (s *ImporterTestSuite) TestFullDumpRoundTrip() {
	s.seedLedger()
	data := s.ledger.Snapshot()

	fresh, _ := newTestLedger(s.T())
	err := services.NewImporter(fresh, 0).FullDump(context.Background(), data, true, nil)
	s.Require().NoError(err)

	s.equalLedgers(s.ledger, fresh)
}

func (s *ImporterTestSuite) TestFullDumpSmallBatches() {
	t := s.T()
	cash := insertCategory(t, s.ledger, "Cash", domain.BanksAndCash)
	expenses := insertCategory(t, s.ledger, "Food", domain.Expenses)
	wallet := insertAccount(t, s.ledger, "Wallet", cash, decimal.Zero)
	sink := insertAccount(t, s.ledger, "Sink", expenses, decimal.Zero)
	for i := 0; i < 7; i++ {
		insertTransaction(t, s.ledger, "1", wallet, sink, txSpec{})
	}
	data := s.ledger.Snapshot()

	fresh, _ := newTestLedger(t)
	err := services.NewImporter(fresh, 2).FullDump(context.Background(), data, true, nil)
	s.Require().NoError(err)
	s.Len(fresh.Transactions(), 7)
}

func (s *ImporterTestSuite) TestFullDumpReplacesExisting() {
	s.seedLedger()
	data := s.ledger.Snapshot()

	other, _ := newTestLedger(s.T())
	cat := insertCategory(s.T(), other, "Old", domain.Assets)
	insertAccount(s.T(), other, "Stale", cat, decimal.Zero)

	err := services.NewImporter(other, 0).FullDump(context.Background(), data, true, nil)
	s.Require().NoError(err)

	s.equalLedgers(s.ledger, other)
}

func (s *ImporterTestSuite) TestFullDumpHonorsCancellation() {
	s.seedLedger()
	data := s.ledger.Snapshot()

	fresh, _ := newTestLedger(s.T())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := services.NewImporter(fresh, 0).FullDump(ctx, data, true, nil)
	s.ErrorIs(err, context.Canceled)
}

func (s *ImporterTestSuite) TestMergeIntoEmptyEqualsFullCopy() {
	s.seedLedger()
	data := s.ledger.Snapshot()

	fresh, _ := newTestLedger(s.T())
	err := services.NewImporter(fresh, 0).Merge(context.Background(), data, nil)
	s.Require().NoError(err)

	s.equalLedgers(s.ledger, fresh)
}

func (s *ImporterTestSuite) TestMergeIsIdempotent() {
	s.seedLedger()
	data := s.ledger.Snapshot()

	importer := services.NewImporter(s.ledger, 0)
	s.Require().NoError(importer.Merge(context.Background(), data, nil))
	first := s.ledger.Snapshot()

	s.Require().NoError(importer.Merge(context.Background(), data, nil))
	second := s.ledger.Snapshot()

	s.Equal(first, second)
}

func (s *ImporterTestSuite) TestMergeNewerWins() {
	txn := s.seedLedger()
	data := s.ledger.Snapshot()

	// The incoming copy is newer and carries a different comment.
	data.Transactions[0].Comment = "updated comment"
	data.Transactions[0].Modified = txn.Modified + 1000

	s.Require().NoError(services.NewImporter(s.ledger, 0).Merge(context.Background(), data, nil))

	got, ok := s.ledger.GetTransaction(txn.ID)
	s.Require().True(ok)
	s.Equal("updated comment", got.Comment)
}

func (s *ImporterTestSuite) TestMergeOlderIsIgnored() {
	txn := s.seedLedger()
	data := s.ledger.Snapshot()

	data.Transactions[0].Comment = "stale comment"
	data.Transactions[0].Modified = txn.Modified - 1000

	s.Require().NoError(services.NewImporter(s.ledger, 0).Merge(context.Background(), data, nil))

	got, ok := s.ledger.GetTransaction(txn.ID)
	s.Require().True(ok)
	s.Equal("lunch", got.Comment)
}

func (s *ImporterTestSuite) TestMergeRemapsForeignKeys() {
	s.seedLedger()
	data := s.ledger.Snapshot()

	// Fresh guids everywhere: every record must insert under a new id
	// with its references rewritten.
	for i := range data.Categories {
		data.Categories[i].GUID = "11111111-1111-4111-8111-11111111111" + string(rune('0'+i))
	}
	for i := range data.Accounts {
		data.Accounts[i].GUID = "22222222-2222-4222-8222-22222222222" + string(rune('0'+i))
	}
	for i := range data.Contacts {
		data.Contacts[i].GUID = "33333333-3333-4333-8333-33333333333" + string(rune('0'+i))
	}
	for i := range data.TransactionGroups {
		data.TransactionGroups[i].GUID = "44444444-4444-4444-8444-44444444444" + string(rune('0'+i))
	}
	for i := range data.Transactions {
		data.Transactions[i].GUID = "55555555-5555-4555-8555-55555555555" + string(rune('0'+i))
	}

	s.Require().NoError(services.NewImporter(s.ledger, 0).Merge(context.Background(), data, nil))

	s.Len(s.ledger.Categories(), 4)
	s.Len(s.ledger.Accounts(), 4)
	s.Len(s.ledger.Transactions(), 2)

	// The inserted copy must reference the inserted accounts, not the
	// originals.
	var inserted domain.Transaction
	for _, t := range s.ledger.Transactions() {
		if t.ID != 1 {
			inserted = t
		}
	}
	s.Require().NotZero(inserted.ID)

	debited, ok := s.ledger.GetAccount(inserted.AccountDebitedID)
	s.Require().True(ok)
	s.Greater(debited.ID, 2, "must point at the newly inserted account")
	s.Equal("Wallet", debited.Name)

	group, ok := s.ledger.GetTransactionGroup(inserted.GroupID)
	s.Require().True(ok)
	s.Greater(group.ID, 1)
}

func (s *ImporterTestSuite) TestMergeRollsBackOnFailure() {
	s.seedLedger()
	before := s.ledger.Snapshot()

	data := s.ledger.Snapshot()
	data.Transactions[0].GUID = "99999999-9999-4999-8999-999999999999"
	data.Transactions[0].Modified += 1000

	s.fake.txns.failNext = errors.New("constraint violation")

	err := services.NewImporter(s.ledger, 0).Merge(context.Background(), data, nil)

	var txErr *apperrors.ImportTransactionError
	s.Require().ErrorAs(err, &txErr)
	s.Equal("transactions", txErr.Table)

	s.Equal(before, s.ledger.Snapshot(), "state must be untouched after rollback")
}

func (s *ImporterTestSuite) TestMergeReportsFailureToProgress() {
	s.seedLedger()
	data := s.ledger.Snapshot()
	data.Categories[0].GUID = "99999999-9999-4999-8999-999999999999"
	s.fake.categories.failNext = errors.New("constraint violation")

	var messages []string
	err := services.NewImporter(s.ledger, 0).Merge(context.Background(), data, func(msg string) {
		messages = append(messages, msg)
	})
	s.Require().Error(err)

	s.Require().NotEmpty(messages)
	s.Contains(messages[len(messages)-1], "constraint violation")
}

func (s *ImporterTestSuite) TestFullDumpNotifiesSubscribers() {
	s.seedLedger()
	data := s.ledger.Snapshot()

	fresh, _ := newTestLedger(s.T())
	var reloaded []services.Entity
	var visible int
	fresh.Subscribe(func(e services.Event) {
		if e.Kind != services.Reloaded {
			return
		}
		s.Zero(e.ID)
		reloaded = append(reloaded, e.Entity)
		if e.Entity == services.EntityTransaction {
			visible = len(fresh.Transactions())
		}
	})

	err := services.NewImporter(fresh, 0).FullDump(context.Background(), data, true, nil)
	s.Require().NoError(err)

	s.ElementsMatch([]services.Entity{
		services.EntityCategory, services.EntityCurrency, services.EntityContact,
		services.EntityAccount, services.EntityTransactionGroup, services.EntityTransaction,
	}, reloaded)
	s.Equal(1, visible, "imported rows must be readable when the event arrives")
}

func (s *ImporterTestSuite) TestMergeNotifiesSubscribers() {
	s.seedLedger()
	data := s.ledger.Snapshot()

	fresh, _ := newTestLedger(s.T())
	var reloads int
	fresh.Subscribe(func(e services.Event) {
		if e.Kind == services.Reloaded {
			reloads++
		}
	})

	err := services.NewImporter(fresh, 0).Merge(context.Background(), data, nil)
	s.Require().NoError(err)
	s.Equal(6, reloads, "one reload per collection after commit")
}

// equalLedgers compares the full contents of two ledgers via their
// snapshots.
func (s *ImporterTestSuite) equalLedgers(want, got *services.Ledger) {
	s.T().Helper()

	wantData, gotData := want.Snapshot(), got.Snapshot()
	s.Require().Len(gotData.Categories, len(wantData.Categories))
	s.Require().Len(gotData.Accounts, len(wantData.Accounts))
	s.Require().Len(gotData.Contacts, len(wantData.Contacts))
	s.Require().Len(gotData.Currencies, len(wantData.Currencies))
	s.Require().Len(gotData.TransactionGroups, len(wantData.TransactionGroups))
	s.Require().Len(gotData.Transactions, len(wantData.Transactions))

	for i := range wantData.Accounts {
		s.True(wantData.Accounts[i].Equal(gotData.Accounts[i]))
	}
	for i := range wantData.Transactions {
		s.True(wantData.Transactions[i].Equal(gotData.Transactions[i]))
	}
}

func TestImporterTestSuite(t *testing.T) {
	suite.Run(t, new(ImporterTestSuite))
}

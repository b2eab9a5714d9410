package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fleetops/fleet_ledger_app/internal/apperrors"
	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	portssvc "github.com/fleetops/fleet_ledger_app/internal/core/ports/services"
	"github.com/fleetops/fleet_ledger_app/internal/core/services"
	"github.com/fleetops/fleet_ledger_app/internal/dto"
)

// --- Mock MethodRepository ---
type MockMethodRepository struct {
	mock.Mock
}

func (m *MockMethodRepository) FindMethodByID(ctx context.Context, methodID string) (*domain.Method, error) {
	args := m.Called(ctx, methodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Method), args.Error(1)
}

func (m *MockMethodRepository) ListMethods(ctx context.Context, companyID string) ([]domain.Method, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Method), args.Error(1)
}

func (m *MockMethodRepository) SaveMethod(ctx context.Context, method domain.Method) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockMethodRepository) UpdateMethod(ctx context.Context, method domain.Method) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByMethod(ctx context.Context, methodID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, methodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByMethodInRange(ctx context.Context, methodID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, methodID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByMethodPage(ctx context.Context, methodID string, after time.Time, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, methodID, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryFields(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockMethodRepo *MockMethodRepository
	mockEntryRepo  *MockEntryRepository
	service        portssvc.LedgerSvcFacade

	companyID string
	method    *domain.Method
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockMethodRepo = new(MockMethodRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.service = services.NewLedgerService(suite.mockMethodRepo, suite.mockEntryRepo)

	suite.companyID = uuid.NewString()
	suite.method = &domain.Method{
		MethodID:               uuid.NewString(),
		CompanyID:              suite.companyID,
		Name:                   "Booking Platform",
		EntryCommissionRate:    decimal.RequireFromString("2.5"),
		ExitCommissionRate:     decimal.RequireFromString("1.5"),
		DeliveryCommissionRate: decimal.RequireFromString("3.0"),
		OpeningBalance:         decimal.RequireFromString("50000"),
		Status:                 domain.MethodActive,
	}
}

func (suite *LedgerServiceTestSuite) expectMethodLookup() {
	suite.mockMethodRepo.On("FindMethodByID", mock.Anything, suite.method.MethodID).Return(suite.method, nil)
}

func entryOn(methodID, companyID string, date time.Time) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:    uuid.NewString(),
		MethodID:   methodID,
		CompanyID:  companyID,
		EntryDate:  date,
		Supplement: decimal.Zero,
		Entry:      decimal.Zero,
		Exit:       decimal.Zero,
		Payment:    decimal.Zero,
		Delivery:   decimal.Zero,
	}
}

// --- MaterializeMonth ---

func (suite *LedgerServiceTestSuite) TestMaterializeMonth_CreatesAllMissingDays() {
	ctx := context.Background()
	suite.expectMethodLookup()

	suite.mockEntryRepo.On("ListEntriesByMethodInRange", ctx, suite.method.MethodID, mock.Anything, mock.Anything).
		Return([]domain.LedgerEntry{}, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.MethodID == suite.method.MethodID &&
			e.CompanyID == suite.companyID &&
			!e.Locked &&
			e.Description == "" &&
			e.Supplement.IsZero() && e.Entry.IsZero() && e.Exit.IsZero() &&
			e.Payment.IsZero() && e.Delivery.IsZero()
	})).Return(nil).Times(29)

	// February 2024 is a leap month: 29 creations.
	result, err := suite.service.MaterializeMonth(ctx, suite.companyID, suite.method.MethodID, 2024, time.February)

	suite.Require().NoError(err)
	suite.Len(result.Created, 29)
	suite.Empty(result.Existing)
	suite.Empty(result.Failed)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestMaterializeMonth_NonLeapFebruary() {
	ctx := context.Background()
	suite.expectMethodLookup()

	suite.mockEntryRepo.On("ListEntriesByMethodInRange", ctx, suite.method.MethodID, mock.Anything, mock.Anything).
		Return([]domain.LedgerEntry{}, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Times(28)

	result, err := suite.service.MaterializeMonth(ctx, suite.companyID, suite.method.MethodID, 2023, time.February)

	suite.Require().NoError(err)
	suite.Len(result.Created, 28)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestMaterializeMonth_IdempotentWhenMonthComplete() {
	ctx := context.Background()
	suite.expectMethodLookup()

	var existing []domain.LedgerEntry
	for d := 1; d <= 29; d++ {
		existing = append(existing, entryOn(suite.method.MethodID, suite.companyID,
			time.Date(2024, time.February, d, 0, 0, 0, 0, time.UTC)))
	}
	suite.mockEntryRepo.On("ListEntriesByMethodInRange", ctx, suite.method.MethodID, mock.Anything, mock.Anything).
		Return(existing, nil).Once()

	result, err := suite.service.MaterializeMonth(ctx, suite.companyID, suite.method.MethodID, 2024, time.February)

	suite.Require().NoError(err)
	suite.Empty(result.Created)
	suite.Len(result.Existing, 29)
	// No SaveEntry expectations were registered: a second pass creates nothing.
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestMaterializeMonth_DuplicateInsertIsBenign() {
	ctx := context.Background()
	suite.expectMethodLookup()

	suite.mockEntryRepo.On("ListEntriesByMethodInRange", ctx, suite.method.MethodID, mock.Anything, mock.Anything).
		Return([]domain.LedgerEntry{}, nil).Once()
	// A concurrent pass wins the race on every day: all inserts conflict.
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Times(28)

	result, err := suite.service.MaterializeMonth(ctx, suite.companyID, suite.method.MethodID, 2023, time.February)

	suite.Require().NoError(err)
	suite.Empty(result.Created)
	suite.Empty(result.Failed)
	suite.Len(result.Existing, 28)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestMaterializeMonth_TransientFailureDoesNotAbortBatch() {
	ctx := context.Background()
	suite.expectMethodLookup()

	suite.mockEntryRepo.On("ListEntriesByMethodInRange", ctx, suite.method.MethodID, mock.Anything, mock.Anything).
		Return([]domain.LedgerEntry{}, nil).Once()
	// Day 1 fails, the remaining 27 days still get created.
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.Anything).Return(assert.AnError).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Times(27)

	result, err := suite.service.MaterializeMonth(ctx, suite.companyID, suite.method.MethodID, 2023, time.February)

	suite.Require().NoError(err)
	suite.Len(result.Failed, 1)
	suite.Len(result.Created, 27)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestMaterializeMonth_InactiveMethodRefused() {
	ctx := context.Background()
	suite.method.Status = domain.MethodInactive
	suite.expectMethodLookup()

	result, err := suite.service.MaterializeMonth(ctx, suite.companyID, suite.method.MethodID, 2024, time.February)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMethodInactive)
	suite.Nil(result)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestMaterializeMonth_ForeignCompanyLooksMissing() {
	ctx := context.Background()
	suite.expectMethodLookup()

	result, err := suite.service.MaterializeMonth(ctx, "other-company", suite.method.MethodID, 2024, time.February)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(result)
}

// --- ComputePeriod / GetMonthLedger ---

func (suite *LedgerServiceTestSuite) TestComputePeriod_FoldsAndAggregates() {
	ctx := context.Background()
	suite.expectMethodLookup()

	day1 := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	e1 := entryOn(suite.method.MethodID, suite.companyID, day1)
	e1.Entry = decimal.RequireFromString("1000")
	e2 := entryOn(suite.method.MethodID, suite.companyID, day2)
	e2.Payment = decimal.RequireFromString("500")

	suite.mockEntryRepo.On("ListEntriesByMethodInRange", ctx, suite.method.MethodID, day1, day2).
		Return([]domain.LedgerEntry{e2, e1}, nil).Once()

	view, err := suite.service.ComputePeriod(ctx, suite.companyID, suite.method.MethodID, day1, day2)

	suite.Require().NoError(err)
	suite.Require().Len(view.Rows, 2)
	// 50000 + 1000 - 25 = 50975, then - 500 = 50475
	suite.True(view.Rows[0].Commission.Equal(decimal.RequireFromString("25")))
	suite.True(view.Rows[0].Balance.Equal(decimal.RequireFromString("50975")))
	suite.True(view.Rows[1].Balance.Equal(decimal.RequireFromString("50475")))
	suite.True(view.Totals.ClosingBalance.Equal(decimal.RequireFromString("50475")))
	suite.True(view.Totals.Entry.Equal(decimal.RequireFromString("1000")))
	suite.True(view.Totals.Payment.Equal(decimal.RequireFromString("500")))
}

func (suite *LedgerServiceTestSuite) TestComputePeriod_EmptyRangeClosesAtOpeningBalance() {
	ctx := context.Background()
	suite.expectMethodLookup()

	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	suite.mockEntryRepo.On("ListEntriesByMethodInRange", ctx, suite.method.MethodID, from, to).
		Return([]domain.LedgerEntry{}, nil).Once()

	view, err := suite.service.ComputePeriod(ctx, suite.companyID, suite.method.MethodID, from, to)

	suite.Require().NoError(err)
	suite.Empty(view.Rows)
	suite.True(view.Totals.ClosingBalance.Equal(suite.method.OpeningBalance))
}

func (suite *LedgerServiceTestSuite) TestComputePeriod_InvertedRangeRejected() {
	ctx := context.Background()
	suite.expectMethodLookup()

	from := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.ComputePeriod(ctx, suite.companyID, suite.method.MethodID, from, to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestGetMonthLedger_MaterializesThenFolds() {
	ctx := context.Background()
	suite.expectMethodLookup()

	var existing []domain.LedgerEntry
	for d := 1; d <= 28; d++ {
		existing = append(existing, entryOn(suite.method.MethodID, suite.companyID,
			time.Date(2023, time.February, d, 0, 0, 0, 0, time.UTC)))
	}
	// Once for materialization, once for the fold.
	suite.mockEntryRepo.On("ListEntriesByMethodInRange", ctx, suite.method.MethodID, mock.Anything, mock.Anything).
		Return(existing, nil).Twice()

	view, err := suite.service.GetMonthLedger(ctx, suite.companyID, suite.method.MethodID, 2023, time.February)

	suite.Require().NoError(err)
	suite.Len(view.Rows, 28)
	for i := 1; i < len(view.Rows); i++ {
		suite.True(view.Rows[i-1].EntryDate.Before(view.Rows[i].EntryDate))
	}
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

// --- ComputeCurrentBalance / CompanyBalanceSummary ---

func (suite *LedgerServiceTestSuite) TestComputeCurrentBalance_FullHistory() {
	ctx := context.Background()
	suite.expectMethodLookup()

	e1 := entryOn(suite.method.MethodID, suite.companyID, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))
	e1.Entry = decimal.RequireFromString("1000")
	e2 := entryOn(suite.method.MethodID, suite.companyID, time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC))
	e2.Payment = decimal.RequireFromString("500")

	suite.mockEntryRepo.On("ListEntriesByMethod", ctx, suite.method.MethodID).
		Return([]domain.LedgerEntry{e1, e2}, nil).Once()

	balance, err := suite.service.ComputeCurrentBalance(ctx, suite.companyID, suite.method.MethodID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("50475")), "balance %s", balance)
}

func (suite *LedgerServiceTestSuite) TestCompanyBalanceSummary_SkipsInactiveMethods() {
	ctx := context.Background()

	inactive := domain.Method{
		MethodID:       uuid.NewString(),
		CompanyID:      suite.companyID,
		Status:         domain.MethodInactive,
		OpeningBalance: decimal.RequireFromString("999"),
	}
	suite.mockMethodRepo.On("ListMethods", ctx, suite.companyID).
		Return([]domain.Method{*suite.method, inactive}, nil).Once()
	suite.mockEntryRepo.On("ListEntriesByMethod", ctx, suite.method.MethodID).
		Return([]domain.LedgerEntry{}, nil).Once()

	summary, err := suite.service.CompanyBalanceSummary(ctx, suite.companyID)

	suite.Require().NoError(err)
	suite.Require().Len(summary, 1)
	suite.Equal(suite.method.MethodID, summary[0].Method.MethodID)
	suite.True(summary[0].Balance.Equal(suite.method.OpeningBalance))
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ListEntriesByMethod", ctx, inactive.MethodID)
}

// --- UpdateEntryFields / ToggleEntryLock ---

func (suite *LedgerServiceTestSuite) TestUpdateEntryFields_LockedEntryRejectedBeforeStorage() {
	ctx := context.Background()
	locked := entryOn(suite.method.MethodID, suite.companyID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	locked.Locked = true

	suite.mockEntryRepo.On("FindEntryByID", ctx, locked.EntryID).Return(&locked, nil).Once()

	value := "123.45"
	updated, err := suite.service.UpdateEntryFields(ctx, suite.companyID, locked.EntryID, dto.UpdateEntryRequest{Entry: &value}, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryLocked)
	suite.Nil(updated)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntryFields", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestUpdateEntryFields_AppliesPartialUpdate() {
	ctx := context.Background()
	entry := entryOn(suite.method.MethodID, suite.companyID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryFields", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Entry.Equal(decimal.RequireFromString("250.75")) &&
			e.Description == "rental income" &&
			e.Payment.IsZero() && // untouched
			e.LastUpdatedBy == "user-1"
	})).Return(nil).Once()

	value := "250.75"
	desc := "rental income"
	updated, err := suite.service.UpdateEntryFields(ctx, suite.companyID, entry.EntryID, dto.UpdateEntryRequest{Entry: &value, Description: &desc}, "user-1")

	suite.Require().NoError(err)
	suite.True(updated.Entry.Equal(decimal.RequireFromString("250.75")))
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpdateEntryFields_NonNumericCoercedToZero() {
	ctx := context.Background()
	entry := entryOn(suite.method.MethodID, suite.companyID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	entry.Entry = decimal.RequireFromString("100")

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryFields", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Entry.IsZero()
	})).Return(nil).Once()

	value := "not-a-number"
	updated, err := suite.service.UpdateEntryFields(ctx, suite.companyID, entry.EntryID, dto.UpdateEntryRequest{Entry: &value}, "user-1")

	suite.Require().NoError(err)
	suite.True(updated.Entry.IsZero())
}

func (suite *LedgerServiceTestSuite) TestUpdateEntryFields_EmptyRequestRejected() {
	ctx := context.Background()

	_, err := suite.service.UpdateEntryFields(ctx, suite.companyID, uuid.NewString(), dto.UpdateEntryRequest{}, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "FindEntryByID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestToggleEntryLock_AllowedOnLockedEntry() {
	ctx := context.Background()
	locked := entryOn(suite.method.MethodID, suite.companyID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	locked.Locked = true

	suite.mockEntryRepo.On("FindEntryByID", ctx, locked.EntryID).Return(&locked, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryFields", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return !e.Locked
	})).Return(nil).Once()

	updated, err := suite.service.ToggleEntryLock(ctx, suite.companyID, locked.EntryID, "user-1")

	suite.Require().NoError(err)
	suite.False(updated.Locked)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestToggleEntryLock_LocksUnlockedEntry() {
	ctx := context.Background()
	entry := entryOn(suite.method.MethodID, suite.companyID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryFields", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Locked
	})).Return(nil).Once()

	updated, err := suite.service.ToggleEntryLock(ctx, suite.companyID, entry.EntryID, "user-1")

	suite.Require().NoError(err)
	suite.True(updated.Locked)
}

// --- ListEntries ---

func (suite *LedgerServiceTestSuite) TestListEntries_ReturnsPageWithCursor() {
	ctx := context.Background()
	suite.expectMethodLookup()

	var page []domain.LedgerEntry
	for d := 1; d <= 5; d++ {
		page = append(page, entryOn(suite.method.MethodID, suite.companyID,
			time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)))
	}
	suite.mockEntryRepo.On("ListEntriesByMethodPage", ctx, suite.method.MethodID, time.Time{}, 5).
		Return(page, nil).Once()

	entries, nextToken, err := suite.service.ListEntries(ctx, suite.companyID, suite.method.MethodID, "", 5)

	suite.Require().NoError(err)
	suite.Len(entries, 5)
	suite.NotEmpty(nextToken, "full page should produce a cursor")
}

func (suite *LedgerServiceTestSuite) TestListEntries_ShortPageEndsPagination() {
	ctx := context.Background()
	suite.expectMethodLookup()

	page := []domain.LedgerEntry{entryOn(suite.method.MethodID, suite.companyID,
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))}
	suite.mockEntryRepo.On("ListEntriesByMethodPage", ctx, suite.method.MethodID, time.Time{}, 5).
		Return(page, nil).Once()

	entries, nextToken, err := suite.service.ListEntries(ctx, suite.companyID, suite.method.MethodID, "", 5)

	suite.Require().NoError(err)
	suite.Len(entries, 1)
	suite.Empty(nextToken)
}

func (suite *LedgerServiceTestSuite) TestListEntries_BadTokenRejected() {
	ctx := context.Background()
	suite.expectMethodLookup()

	_, _, err := suite.service.ListEntries(ctx, suite.companyID, suite.method.MethodID, "garbage!!!", 5)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

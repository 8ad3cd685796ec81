package services_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/application/services"
	"github.com/clinicdesk/clinic-backend/internal/application/services/testhelpers"
	"github.com/clinicdesk/clinic-backend/internal/domain"
	"github.com/clinicdesk/clinic-backend/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BillingServiceTestSuite struct {
	suite.Suite
	testDB         *testhelpers.TestDatabase
	invoiceRepo    *postgres.InvoiceRepository
	ledgerRepo     *postgres.CopaymentLedgerRepository
	coordinator    *postgres.TransactionCoordinator
	billingService *services.BillingService
	queryService   *services.QueryService
}

func TestBillingServiceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration suite in short mode")
	}
	suite.Run(t, new(BillingServiceTestSuite))
}

// SetupSuite runs once before all tests
func (suite *BillingServiceTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.invoiceRepo = postgres.NewInvoiceRepository(suite.testDB.DB)
	suite.ledgerRepo = postgres.NewCopaymentLedgerRepository(suite.testDB.DB)
	suite.coordinator = postgres.NewTransactionCoordinator(suite.testDB.DB)
}

// TearDownSuite runs once after all tests
func (suite *BillingServiceTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

// SetupTest runs before each test
func (suite *BillingServiceTestSuite) SetupTest() {
	suite.testDB.CleanTables(suite.T())

	t := suite.T()
	policy, err := domain.NewCopaymentPolicy(
		testhelpers.Money(t, "50000"),
		testhelpers.Money(t, "1000000"),
	)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	composer := services.NewInvoiceComposer(nil, 30)
	suite.billingService = services.NewBillingService(suite.coordinator, policy, composer, logger)
	suite.queryService = services.NewQueryService(suite.invoiceRepo, suite.ledgerRepo, policy)
}

func (suite *BillingServiceTestSuite) Test_Adjudicate_PersistsInvoiceAndLedger() {
	ctx := context.Background()
	t := suite.T()
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	cmd := testhelpers.DefaultAdjudicateCommand(t, now)

	outcome, err := suite.billingService.Adjudicate(ctx, cmd)
	require.NoError(t, err)

	assert.True(t, outcome.Result.CopaymentAmount.Equal(testhelpers.Money(t, "50000")))
	assert.True(t, outcome.Result.InsuranceCoverage.Equal(testhelpers.Money(t, "150000")))

	saved, err := suite.invoiceRepo.FindByNumber(ctx, outcome.Invoice.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePending, saved.Status)
	assert.Equal(t, cmd.PatientCedula, saved.PatientCedula)
	assert.True(t, saved.TotalAmount.Equal(testhelpers.Money(t, "200000")))
	require.Len(t, saved.Orders, 1)
	require.Len(t, saved.Orders[0].Lines, 1)
	assert.Equal(t, domain.CategoryMedication, saved.Orders[0].Lines[0].Category)

	accumulated, err := suite.ledgerRepo.Accumulated(ctx, cmd.PatientCedula, now.Year())
	require.NoError(t, err)
	assert.True(t, accumulated.Equal(testhelpers.Money(t, "50000")))
}

func (suite *BillingServiceTestSuite) Test_Adjudicate_AccumulatesAcrossVisits() {
	ctx := context.Background()
	t := suite.T()
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	cmd := testhelpers.DefaultAdjudicateCommand(t, now)

	for range 3 {
		_, err := suite.billingService.Adjudicate(ctx, cmd)
		require.NoError(t, err)
	}

	accumulated, err := suite.ledgerRepo.Accumulated(ctx, cmd.PatientCedula, now.Year())
	require.NoError(t, err)
	assert.True(t, accumulated.Equal(testhelpers.Money(t, "150000")))

	history, err := suite.queryService.BillingHistory(ctx, cmd.PatientCedula, 10, 0)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func (suite *BillingServiceTestSuite) Test_Adjudicate_InactiveInsurance_LedgerUntouched() {
	ctx := context.Background()
	t := suite.T()
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	cmd := testhelpers.DefaultAdjudicateCommand(t, now)
	cmd.Insurance = testhelpers.InactiveInsurance(now)

	outcome, err := suite.billingService.Adjudicate(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, domain.MsgNoActivePolicy, outcome.Result.Message)
	assert.True(t, outcome.Result.PatientResponsibility.Equal(testhelpers.Money(t, "200000")))

	accumulated, err := suite.ledgerRepo.Accumulated(ctx, cmd.PatientCedula, now.Year())
	require.NoError(t, err)
	assert.True(t, accumulated.IsZero())
}

func (suite *BillingServiceTestSuite) Test_Adjudicate_ConcurrentRequests_SerializeOnLedger() {
	ctx := context.Background()
	t := suite.T()
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	cmd := testhelpers.DefaultAdjudicateCommand(t, now)

	const workers = 4
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.billingService.Adjudicate(ctx, cmd)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// Every copayment landed exactly once.
	accumulated, err := suite.ledgerRepo.Accumulated(ctx, cmd.PatientCedula, now.Year())
	require.NoError(t, err)
	assert.True(t, accumulated.Equal(testhelpers.Money(t, "200000")),
		"expected 4 x 50000, got %s", accumulated)
}

func (suite *BillingServiceTestSuite) Test_Statistics_ExcludesCancelled() {
	ctx := context.Background()
	t := suite.T()
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	cmd := testhelpers.DefaultAdjudicateCommand(t, now)

	first, err := suite.billingService.Adjudicate(ctx, cmd)
	require.NoError(t, err)
	_, err = suite.billingService.Adjudicate(ctx, cmd)
	require.NoError(t, err)

	require.NoError(t, first.Invoice.MarkCancelled())
	require.NoError(t, suite.invoiceRepo.UpdateStatus(ctx, first.Invoice))

	stats, err := suite.queryService.Statistics(ctx, cmd.PatientCedula)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.InvoiceCount)
	assert.True(t, stats.TotalBilled.Equal(testhelpers.Money(t, "200000")))
	assert.True(t, stats.TotalCopaid.Equal(testhelpers.Money(t, "50000")))
	assert.True(t, stats.TotalOutstanding.Equal(testhelpers.Money(t, "50000")))
}

func (suite *BillingServiceTestSuite) Test_BillingHistory_MostRecentFirst() {
	ctx := context.Background()
	t := suite.T()
	base := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	cmd := testhelpers.DefaultAdjudicateCommand(t, base)

	var numbers []string
	for i := range 3 {
		cmd.Now = base.AddDate(0, 0, i)
		outcome, err := suite.billingService.Adjudicate(ctx, cmd)
		require.NoError(t, err)
		numbers = append(numbers, outcome.Invoice.InvoiceNumber)
	}

	history, err := suite.queryService.BillingHistory(ctx, cmd.PatientCedula, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, numbers[2], history[0].InvoiceNumber)
	assert.Equal(t, numbers[0], history[2].InvoiceNumber)
}

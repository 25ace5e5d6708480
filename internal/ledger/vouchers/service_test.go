package vouchers

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kontobok/kontobok/internal/audit"
	"github.com/kontobok/kontobok/internal/ledger/series"
	"github.com/kontobok/kontobok/internal/ledger/shared"
)

type lockRange struct {
	companyID string
	start     string
	end       string
}

// memRepo is an in-memory stand-in for the Postgres repository. WithTx
// snapshots the state and restores it when the callback fails, so the
// all-or-nothing behaviour of the real transaction is preserved.
type memRepo struct {
	series      map[string]series.Series
	vouchers    map[string]Voucher
	rows        map[string][]VoucherRow
	attachments map[string][]Attachment
	locks       []lockRange
	audit       []audit.Entry
}

func newMemRepo() *memRepo {
	return &memRepo{
		series:      map[string]series.Series{},
		vouchers:    map[string]Voucher{},
		rows:        map[string][]VoucherRow{},
		attachments: map[string][]Attachment{},
	}
}

func (m *memRepo) snapshot() *memRepo {
	cp := newMemRepo()
	for k, v := range m.series {
		cp.series[k] = v
	}
	for k, v := range m.vouchers {
		cp.vouchers[k] = v
	}
	for k, v := range m.rows {
		cp.rows[k] = append([]VoucherRow{}, v...)
	}
	for k, v := range m.attachments {
		cp.attachments[k] = append([]Attachment{}, v...)
	}
	cp.locks = append([]lockRange{}, m.locks...)
	cp.audit = append([]audit.Entry{}, m.audit...)
	return cp
}

func (m *memRepo) restore(from *memRepo) {
	m.series = from.series
	m.vouchers = from.vouchers
	m.rows = from.rows
	m.attachments = from.attachments
	m.locks = from.locks
	m.audit = from.audit
}

func (m *memRepo) assemble(voucher Voucher) Voucher {
	voucher.Rows = append([]VoucherRow{}, m.rows[voucher.ID]...)
	voucher.Attachments = append([]Attachment{}, m.attachments[voucher.ID]...)
	return voucher
}

func (m *memRepo) Get(_ context.Context, voucherID string) (Voucher, error) {
	voucher, ok := m.vouchers[voucherID]
	if !ok {
		return Voucher{}, shared.ErrNotFound
	}
	return m.assemble(voucher), nil
}

func (m *memRepo) List(_ context.Context, companyID string, fromDate, toDate *string) ([]Voucher, error) {
	var out []Voucher
	for _, voucher := range m.vouchers {
		if voucher.CompanyID != companyID {
			continue
		}
		if fromDate != nil && voucher.Date < *fromDate {
			continue
		}
		if toDate != nil && voucher.Date > *toDate {
			continue
		}
		out = append(out, m.assemble(voucher))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].VoucherNumber > out[j].VoucherNumber
	})
	return out, nil
}

func (m *memRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	before := m.snapshot()
	if err := fn(ctx, m); err != nil {
		m.restore(before)
		return err
	}
	return nil
}

func (m *memRepo) IsPeriodLocked(_ context.Context, companyID, date string) (bool, error) {
	for _, lock := range m.locks {
		if lock.companyID == companyID && date >= lock.start && date <= lock.end {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) GetSeriesForUpdate(_ context.Context, seriesID string) (series.Series, error) {
	s, ok := m.series[seriesID]
	if !ok {
		return series.Series{}, shared.ErrNotFound
	}
	return s, nil
}

func (m *memRepo) IncrementSeriesNumber(_ context.Context, seriesID string) error {
	s, ok := m.series[seriesID]
	if !ok {
		return shared.ErrNotFound
	}
	s.NextNumber++
	m.series[seriesID] = s
	return nil
}

func (m *memRepo) InsertVoucher(_ context.Context, voucher Voucher) error {
	voucher.Rows = nil
	voucher.Attachments = nil
	m.vouchers[voucher.ID] = voucher
	return nil
}

func (m *memRepo) InsertVoucherRow(_ context.Context, row VoucherRow) error {
	m.rows[row.VoucherID] = append(m.rows[row.VoucherID], row)
	return nil
}

func (m *memRepo) InsertAttachment(_ context.Context, attachment Attachment) error {
	m.attachments[attachment.VoucherID] = append(m.attachments[attachment.VoucherID], attachment)
	return nil
}

func (m *memRepo) InsertAuditEntry(_ context.Context, entry audit.Entry) error {
	m.audit = append(m.audit, entry)
	return nil
}

func (m *memRepo) GetVoucher(ctx context.Context, voucherID string) (Voucher, error) {
	return m.Get(ctx, voucherID)
}

func (m *memRepo) SetVoucherPostedAt(_ context.Context, voucherID, postedAt string) error {
	voucher, ok := m.vouchers[voucherID]
	if !ok {
		return shared.ErrNotFound
	}
	voucher.PostedAt = &postedAt
	m.vouchers[voucherID] = voucher
	return nil
}

const (
	testCompanyID = "company-1"
	testSeriesID  = "series-a"
)

func newTestService(t *testing.T) (*Service, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	repo.series[testSeriesID] = series.Series{
		ID:          testSeriesID,
		CompanyID:   testCompanyID,
		Code:        "A",
		Description: "Main series",
		NextNumber:  1,
	}
	svc := NewService(repo, nil)
	svc.WithNow(func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	})
	return svc, repo
}

func balancedInput() CreateInput {
	return CreateInput{
		CompanyID:   testCompanyID,
		SeriesID:    testSeriesID,
		Date:        "2024-03-10",
		Description: "Invoice 1001",
		Rows: []RowInput{
			{AccountID: "acct-bank", DebitCents: 10000},
			{AccountID: "acct-sales", CreditCents: 10000},
		},
		CreatedBy: "local",
	}
}

func TestCreateAllocatesNumberAndWritesAudit(t *testing.T) {
	svc, repo := newTestService(t)

	voucher, err := svc.Create(context.Background(), balancedInput())
	require.NoError(t, err)
	require.Equal(t, int64(1), voucher.VoucherNumber)
	require.Len(t, voucher.Rows, 2)
	require.Equal(t, int64(1), voucher.Rows[0].LineNo)
	require.Equal(t, int64(2), voucher.Rows[1].LineNo)
	require.Nil(t, voucher.PostedAt)

	require.Equal(t, int64(2), repo.series[testSeriesID].NextNumber)
	require.Len(t, repo.audit, 1)
	require.Equal(t, "voucher.create", repo.audit[0].Action)
	require.Equal(t, voucher.ID, repo.audit[0].EntityID)
	require.Equal(t, "local", repo.audit[0].CreatedBy)
}

func TestCreateNumbersAreGapless(t *testing.T) {
	svc, _ := newTestService(t)

	for want := int64(1); want <= 3; want++ {
		voucher, err := svc.Create(context.Background(), balancedInput())
		require.NoError(t, err)
		require.Equal(t, want, voucher.VoucherNumber)
	}
}

func TestCreateRejectsEmptyVoucher(t *testing.T) {
	svc, repo := newTestService(t)

	in := balancedInput()
	in.Rows = nil
	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrEmptyVoucher)
	require.Empty(t, repo.vouchers)
	require.Empty(t, repo.audit)
}

func TestCreateRejectsUnbalancedWithoutConsumingNumber(t *testing.T) {
	svc, repo := newTestService(t)

	in := balancedInput()
	in.Rows[1].CreditCents = 9900
	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrUnbalanced)
	require.Equal(t, int64(1), repo.series[testSeriesID].NextNumber)
	require.Empty(t, repo.vouchers)
}

func TestCreateBlockedByPeriodLock(t *testing.T) {
	svc, repo := newTestService(t)
	repo.locks = append(repo.locks, lockRange{testCompanyID, "2024-03-01", "2024-03-31"})

	_, err := svc.Create(context.Background(), balancedInput())
	require.ErrorIs(t, err, shared.ErrPeriodLocked)
	require.Equal(t, int64(1), repo.series[testSeriesID].NextNumber)

	in := balancedInput()
	in.Date = "2024-04-01"
	voucher, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, int64(1), voucher.VoucherNumber)
}

func TestCreateRejectsForeignSeries(t *testing.T) {
	svc, repo := newTestService(t)
	repo.series["series-b"] = series.Series{
		ID:         "series-b",
		CompanyID:  "other-company",
		Code:       "B",
		NextNumber: 7,
	}

	in := balancedInput()
	in.SeriesID = "series-b"
	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrSeriesMismatch)
	require.Equal(t, int64(7), repo.series["series-b"].NextNumber)
}

func TestCreateDropsBlankAttachments(t *testing.T) {
	svc, _ := newTestService(t)

	note := "receipt"
	in := balancedInput()
	in.Attachments = []AttachmentInput{
		{RefType: "url", RefValue: "https://example.com/r1", Note: &note},
		{RefType: "url", RefValue: "   "},
	}
	voucher, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, voucher.Attachments, 1)
	require.Equal(t, "https://example.com/r1", voucher.Attachments[0].RefValue)
}

func TestPostIsOneWay(t *testing.T) {
	svc, _ := newTestService(t)

	voucher, err := svc.Create(context.Background(), balancedInput())
	require.NoError(t, err)

	posted, err := svc.Post(context.Background(), voucher.ID)
	require.NoError(t, err)
	require.True(t, posted.Posted())

	_, err = svc.Post(context.Background(), voucher.ID)
	require.ErrorIs(t, err, shared.ErrAlreadyPosted)
}

func TestPostBlockedByLockCreatedAfterDraft(t *testing.T) {
	svc, repo := newTestService(t)

	voucher, err := svc.Create(context.Background(), balancedInput())
	require.NoError(t, err)

	repo.locks = append(repo.locks, lockRange{testCompanyID, "2024-03-01", "2024-03-31"})
	_, err = svc.Post(context.Background(), voucher.ID)
	require.ErrorIs(t, err, shared.ErrPeriodLocked)

	got, err := svc.Get(context.Background(), voucher.ID)
	require.NoError(t, err)
	require.False(t, got.Posted())
}

func TestPostUnknownVoucher(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Post(context.Background(), "missing")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCorrectSwapsRowsAndLeavesOriginalUntouched(t *testing.T) {
	svc, repo := newTestService(t)

	original, err := svc.Create(context.Background(), balancedInput())
	require.NoError(t, err)

	correction, err := svc.Correct(context.Background(), CorrectionInput{
		OriginalVoucherID: original.ID,
		Date:              "2024-03-12",
		Description:       "Reversal",
		CreatedBy:         "local",
	})
	require.NoError(t, err)
	require.Equal(t, "Reversal (Correction of 1)", correction.Description)
	require.Equal(t, int64(2), correction.VoucherNumber)
	require.Equal(t, original.SeriesID, correction.SeriesID)
	require.Nil(t, correction.Counterparty)

	require.Len(t, correction.Rows, 2)
	require.Equal(t, original.Rows[0].DebitCents, correction.Rows[0].CreditCents)
	require.Equal(t, original.Rows[0].CreditCents, correction.Rows[0].DebitCents)
	require.Equal(t, original.Rows[1].DebitCents, correction.Rows[1].CreditCents)
	require.Equal(t, original.Rows[1].CreditCents, correction.Rows[1].DebitCents)

	kept, err := svc.Get(context.Background(), original.ID)
	require.NoError(t, err)
	require.Equal(t, original.Rows, kept.Rows)
	require.Len(t, repo.audit, 2)
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)

	first := balancedInput()
	first.Date = "2024-03-01"
	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)

	second := balancedInput()
	second.Date = "2024-03-05"
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	listed, err := svc.List(context.Background(), testCompanyID, nil, nil)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "2024-03-05", listed[0].Date)
	require.Equal(t, "2024-03-01", listed[1].Date)
}

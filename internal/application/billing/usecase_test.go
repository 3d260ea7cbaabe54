package billing_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinova/clinic-api/internal/application/billing"
	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory billing store. The fake TxRunner snapshots the store before fn
// and restores it when fn fails, mirroring a rolled-back transaction.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	invoices  map[string]*entity.Invoice
	items     map[string][]*entity.InvoiceItem
	payments  map[string][]*entity.Payment
	sequences map[string]int64
}

func newMemStore() *memStore {
	return &memStore{
		invoices:  map[string]*entity.Invoice{},
		items:     map[string][]*entity.InvoiceItem{},
		payments:  map[string][]*entity.Payment{},
		sequences: map[string]int64{},
	}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range s.invoices {
		cp := *v
		c.invoices[k] = &cp
	}
	for k, v := range s.items {
		c.items[k] = append([]*entity.InvoiceItem(nil), v...)
	}
	for k, v := range s.payments {
		c.payments[k] = append([]*entity.Payment(nil), v...)
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	s.invoices = from.invoices
	s.items = from.items
	s.payments = from.payments
	s.sequences = from.sequences
}

func (s *memStore) paidSum(invoiceID string) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range s.payments[invoiceID] {
		sum = sum.Add(p.Amount)
	}
	return sum
}

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) CreateItem(_ context.Context, item *entity.InvoiceItem) error {
	r.s.items[item.InvoiceID] = append(r.s.items[item.InvoiceID], item)
	return nil
}

// GetByID aggregates Paid from payments, like the SQL read does.
func (r *memInvoiceRepo) GetByID(_ context.Context, clinicID, id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok || inv.ClinicID != clinicID || inv.IsDeleted {
		return nil, nil
	}
	cp := *inv
	cp.Paid = r.s.paidSum(id)
	return &cp, nil
}

func (r *memInvoiceRepo) GetItems(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	return r.s.items[invoiceID], nil
}

func (r *memInvoiceRepo) List(_ context.Context, clinicID, _, _ string, _, _ int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.ClinicID == clinicID && !inv.IsDeleted {
			cp := *inv
			cp.Paid = r.s.paidSum(inv.ID)
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) ListByPatient(_ context.Context, clinicID, patientID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.ClinicID == clinicID && inv.PatientID == patientID && !inv.IsDeleted {
			cp := *inv
			cp.Paid = r.s.paidSum(inv.ID)
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) SoftDelete(_ context.Context, clinicID, id string) error {
	if inv, ok := r.s.invoices[id]; ok && inv.ClinicID == clinicID {
		inv.IsDeleted = true
	}
	return nil
}

func (r *memInvoiceRepo) CountDue(_ context.Context, clinicID string) (int, error) {
	n := 0
	for _, inv := range r.s.invoices {
		if inv.ClinicID == clinicID && !inv.IsDeleted && inv.Status != entity.InvoicePaid {
			n++
		}
	}
	return n, nil
}

type memSequenceRepo struct{ s *memStore }

func (r *memSequenceRepo) NextNumber(_ context.Context, clinicID string) (int64, error) {
	r.s.sequences[clinicID]++
	return r.s.sequences[clinicID], nil
}

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.s.payments[p.InvoiceID] = append(r.s.payments[p.InvoiceID], p)
	return nil
}

func (r *memPaymentRepo) ListByInvoice(_ context.Context, invoiceID string) ([]*entity.Payment, error) {
	return r.s.payments[invoiceID], nil
}

func (r *memPaymentRepo) SumByInvoice(_ context.Context, invoiceID string) (decimal.Decimal, error) {
	return r.s.paidSum(invoiceID), nil
}

// memTxRunner serializes transactions with a mutex, standing in for the
// row lock the sequencer upsert takes for the rest of the transaction.
type memTxRunner struct {
	s  *memStore
	mu sync.Mutex
}

func (t *memTxRunner) RunBilling(_ context.Context, fn func(billing.TxRepos) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := t.s.snapshot()
	err := fn(billing.TxRepos{
		Invoices:  &memInvoiceRepo{s: t.s},
		Sequences: &memSequenceRepo{s: t.s},
		Payments:  &memPaymentRepo{s: t.s},
	})
	if err != nil {
		t.s.restore(snap)
	}
	return err
}

type fakePatientRepo struct {
	repository.PatientRepository
	patients map[string]*entity.Patient
}

func (r *fakePatientRepo) GetByID(_ context.Context, clinicID, id string) (*entity.Patient, error) {
	p, ok := r.patients[id]
	if !ok || p.ClinicID != clinicID {
		return nil, nil
	}
	return p, nil
}

const (
	clinicA   = "clinic-a"
	clinicB   = "clinic-b"
	patientID = "patient-1"
)

func newTestUseCase() (*billing.UseCase, *memStore) {
	store := newMemStore()
	patients := &fakePatientRepo{patients: map[string]*entity.Patient{
		patientID: {ID: patientID, ClinicID: clinicA, Name: "Asha Verma"},
	}}
	uc := billing.NewUseCase(
		&memInvoiceRepo{s: store},
		&memPaymentRepo{s: store},
		patients,
		&memTxRunner{s: store},
	)
	return uc, store
}

func inr(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func createRequest(items ...dto.InvoiceItemRequest) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{PatientID: patientID, Items: items}
}

// ──────────────────────────────────────────────────────────────────────────────
// Number minting
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "INV-0001", billing.FormatNumber(1))
	assert.Equal(t, "INV-0042", billing.FormatNumber(42))
	assert.Equal(t, "INV-9999", billing.FormatNumber(9999))
	assert.Equal(t, "INV-10000", billing.FormatNumber(10000))
}

func TestCreate_NumbersAreSequentialPerClinic(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	first, err := uc.Create(ctx, clinicA, createRequest(dto.InvoiceItemRequest{Name: "Consultation", Amount: inr("300")}))
	require.NoError(t, err)
	second, err := uc.Create(ctx, clinicA, createRequest(dto.InvoiceItemRequest{Name: "X-Ray", Amount: inr("800")}))
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", first.Number)
	assert.Equal(t, "INV-0002", second.Number)
}

func TestCreate_SequencesAreIndependentAcrossClinics(t *testing.T) {
	store := newMemStore()
	seq := &memSequenceRepo{s: store}
	ctx := context.Background()

	nA1, err := seq.NextNumber(ctx, clinicA)
	require.NoError(t, err)
	nB1, err := seq.NextNumber(ctx, clinicB)
	require.NoError(t, err)
	nA2, err := seq.NextNumber(ctx, clinicA)
	require.NoError(t, err)

	assert.Equal(t, int64(1), nA1)
	assert.Equal(t, int64(1), nB1)
	assert.Equal(t, int64(2), nA2)
}

func TestCreate_ConcurrentCreatesMintDistinctNumbers(t *testing.T) {
	store := newMemStore()
	patients := &fakePatientRepo{patients: map[string]*entity.Patient{
		patientID:   {ID: patientID, ClinicID: clinicA, Name: "Asha Verma"},
		"patient-2": {ID: "patient-2", ClinicID: clinicB, Name: "Ravi Nair"},
	}}
	uc := billing.NewUseCase(
		&memInvoiceRepo{s: store},
		&memPaymentRepo{s: store},
		patients,
		&memTxRunner{s: store},
	)
	ctx := context.Background()

	const n = 25
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = map[string]struct{}{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := uc.Create(ctx, clinicA, createRequest(dto.InvoiceItemRequest{Name: "Consultation", Amount: inr("300")}))
			if err != nil {
				t.Errorf("concurrent create: %v", err)
				return
			}
			mu.Lock()
			numbers[resp.Number] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, numbers, n)
	for i := int64(1); i <= n; i++ {
		assert.Contains(t, numbers, billing.FormatNumber(i))
	}

	// The other tenant's counter is untouched.
	respB, err := uc.Create(ctx, clinicB, dto.CreateInvoiceRequest{
		PatientID: "patient-2",
		Items:     []dto.InvoiceItemRequest{{Name: "Consultation", Amount: inr("300")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", respB.Number)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_TotalsItemsAndStartsUnpaid(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.Create(context.Background(), clinicA, createRequest(
		dto.InvoiceItemRequest{Name: "Consultation", Amount: inr("300")},
		dto.InvoiceItemRequest{Name: "Blood test", Amount: inr("450.50")},
	))
	require.NoError(t, err)

	assert.True(t, inr("750.50").Equal(resp.Total))
	assert.True(t, resp.Balance.Equal(resp.Total))
	assert.Equal(t, entity.InvoiceUnpaid, resp.Status)
	assert.False(t, resp.Locked)
	assert.Equal(t, "Asha Verma", resp.PatientName)
	assert.Len(t, resp.Items, 2)
}

func TestCreate_WithFullPaidNow_LocksImmediately(t *testing.T) {
	uc, _ := newTestUseCase()

	req := createRequest(dto.InvoiceItemRequest{Name: "Consultation", Amount: inr("300")})
	req.PaidNow = inr("300")
	req.PaymentMethod = "Cash"

	resp, err := uc.Create(context.Background(), clinicA, req)
	require.NoError(t, err)

	assert.Equal(t, entity.InvoicePaid, resp.Status)
	assert.True(t, resp.Locked)
	assert.True(t, resp.Balance.IsZero())
	require.Len(t, resp.Payments, 1)
	assert.Equal(t, "Cash", resp.Payments[0].Method)
}

func TestCreate_WithPartialPaidNow(t *testing.T) {
	uc, _ := newTestUseCase()

	req := createRequest(dto.InvoiceItemRequest{Name: "Procedure", Amount: inr("1000")})
	req.PaidNow = inr("400")

	resp, err := uc.Create(context.Background(), clinicA, req)
	require.NoError(t, err)

	assert.Equal(t, entity.InvoicePartial, resp.Status)
	assert.False(t, resp.Locked)
	assert.True(t, inr("600").Equal(resp.Balance))
}

func TestCreate_Rejections(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	reqOverpaid := createRequest(dto.InvoiceItemRequest{Name: "Consultation", Amount: inr("300")})
	reqOverpaid.PaidNow = inr("301")

	cases := []struct {
		name string
		req  dto.CreateInvoiceRequest
		want error
	}{
		{"no items", dto.CreateInvoiceRequest{PatientID: patientID}, domain.ErrInvalidInput},
		{"zero amount item", createRequest(dto.InvoiceItemRequest{Name: "Free", Amount: decimal.Zero}), domain.ErrInvalidInput},
		{"negative amount item", createRequest(dto.InvoiceItemRequest{Name: "Refund", Amount: inr("-5")}), domain.ErrInvalidInput},
		{"paid_now above total", reqOverpaid, domain.ErrInvalidInput},
		{"unknown patient", dto.CreateInvoiceRequest{PatientID: "nobody", Items: []dto.InvoiceItemRequest{{Name: "X", Amount: inr("10")}}}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, clinicA, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreate_CrossClinicPatient_NotFound(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Create(context.Background(), clinicB, createRequest(
		dto.InvoiceItemRequest{Name: "Consultation", Amount: inr("300")}))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordPayment
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPayment_PartialThenFull_Locks(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	inv, err := uc.Create(ctx, clinicA, createRequest(dto.InvoiceItemRequest{Name: "Procedure", Amount: inr("1000")}))
	require.NoError(t, err)

	after, err := uc.RecordPayment(ctx, clinicA, inv.ID, dto.RecordPaymentRequest{Amount: inr("400"), Method: "UPI"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoicePartial, after.Status)
	assert.True(t, inr("600").Equal(after.Balance))

	after, err = uc.RecordPayment(ctx, clinicA, inv.ID, dto.RecordPaymentRequest{Amount: inr("600"), Method: "Cash"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoicePaid, after.Status)
	assert.True(t, after.Locked)
	assert.True(t, after.Balance.IsZero())
	assert.Len(t, after.Payments, 2)
}

func TestRecordPayment_OnLockedInvoice_Rejected(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	req := createRequest(dto.InvoiceItemRequest{Name: "Consultation", Amount: inr("300")})
	req.PaidNow = inr("300")
	inv, err := uc.Create(ctx, clinicA, req)
	require.NoError(t, err)

	_, err = uc.RecordPayment(ctx, clinicA, inv.ID, dto.RecordPaymentRequest{Amount: inr("1")})
	assert.ErrorIs(t, err, domain.ErrInvoiceLocked)
}

func TestRecordPayment_Overpay_RollsBack(t *testing.T) {
	uc, store := newTestUseCase()
	ctx := context.Background()

	inv, err := uc.Create(ctx, clinicA, createRequest(dto.InvoiceItemRequest{Name: "Procedure", Amount: inr("1000")}))
	require.NoError(t, err)

	_, err = uc.RecordPayment(ctx, clinicA, inv.ID, dto.RecordPaymentRequest{Amount: inr("1200")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// The rejected payment must not survive the rollback.
	assert.Empty(t, store.payments[inv.ID])
	got, err := uc.Get(ctx, clinicA, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceUnpaid, got.Status)
	assert.True(t, got.Paid.IsZero())
}

func TestRecordPayment_NonPositiveAmount_Rejected(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	inv, err := uc.Create(ctx, clinicA, createRequest(dto.InvoiceItemRequest{Name: "Consultation", Amount: inr("300")}))
	require.NoError(t, err)

	_, err = uc.RecordPayment(ctx, clinicA, inv.ID, dto.RecordPaymentRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Get / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_CrossClinic_NotFound(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	inv, err := uc.Create(ctx, clinicA, createRequest(dto.InvoiceItemRequest{Name: "Consultation", Amount: inr("300")}))
	require.NoError(t, err)

	_, err = uc.Get(ctx, clinicB, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_UnpaidInvoice_SoftDeletes(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	inv, err := uc.Create(ctx, clinicA, createRequest(dto.InvoiceItemRequest{Name: "Consultation", Amount: inr("300")}))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, clinicA, inv.ID))

	_, err = uc.Get(ctx, clinicA, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_LockedInvoice_Rejected(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	req := createRequest(dto.InvoiceItemRequest{Name: "Consultation", Amount: inr("300")})
	req.PaidNow = inr("300")
	inv, err := uc.Create(ctx, clinicA, req)
	require.NoError(t, err)

	err = uc.Delete(ctx, clinicA, inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvoiceLocked)

	got, err := uc.Get(ctx, clinicA, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.Locked)
}

func TestList_CountsDueInvoices(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, clinicA, createRequest(dto.InvoiceItemRequest{Name: "A", Amount: inr("100")}))
	require.NoError(t, err)

	paidReq := createRequest(dto.InvoiceItemRequest{Name: "B", Amount: inr("200")})
	paidReq.PaidNow = inr("200")
	_, err = uc.Create(ctx, clinicA, paidReq)
	require.NoError(t, err)

	list, err := uc.List(ctx, clinicA, "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Invoices, 2)
	assert.Equal(t, 1, list.DueCount)
}

package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"fintrack/internal/core"
)

// MemoryStore keeps everything in process memory. It backs tests and
// the memory data backend.
type MemoryStore struct {
	mu sync.RWMutex

	nextID   int64
	users    map[int64]User
	sessions map[string]session

	transactions map[int64]ownedTransaction
	bills        map[int64]ownedBill
	budgets      map[int64]ownedBudget
	savings      map[int64]ownedSaving
	savingTxs    map[int64]core.SavingTransaction

	exportStatus map[int64]string // transaction id -> pending|synced|error
}

type session struct {
	userID    int64
	expiresAt time.Time
}

type (
	ownedTransaction struct {
		userID int64
		t      core.Transaction
	}
	ownedBill struct {
		userID int64
		b      core.Bill
	}
	ownedBudget struct {
		userID int64
		b      core.Budget
	}
	ownedSaving struct {
		userID int64
		s      core.SavingsAccount
	}
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[int64]User),
		sessions:     make(map[string]session),
		transactions: make(map[int64]ownedTransaction),
		bills:        make(map[int64]ownedBill),
		budgets:      make(map[int64]ownedBudget),
		savings:      make(map[int64]ownedSaving),
		savingTxs:    make(map[int64]core.SavingTransaction),
		exportStatus: make(map[int64]string),
	}
}

func (m *MemoryStore) nextIDLocked() int64 {
	m.nextID++
	return m.nextID
}

func (m *MemoryStore) CreateUser(_ context.Context, email, name, passwordHash string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email == email {
			return User{}, ErrEmailTaken
		}
	}
	u := User{
		ID:           m.nextIDLocked(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryStore) UserByEmail(_ context.Context, email string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (m *MemoryStore) CreateSession(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[userID]; !ok {
		return ErrNotFound
	}
	m.sessions[token] = session{userID: userID, expiresAt: expiresAt}
	return nil
}

func (m *MemoryStore) SessionUser(_ context.Context, token string, now time.Time) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[token]
	if !ok || now.After(s.expiresAt) {
		return User{}, ErrNotFound
	}
	u, ok := m.users[s.userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *MemoryStore) DeleteSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}

func (m *MemoryStore) CreateTransaction(_ context.Context, userID int64, t core.Transaction) (core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t.ID = m.nextIDLocked()
	m.transactions[t.ID] = ownedTransaction{userID: userID, t: t}
	m.exportStatus[t.ID] = "pending"
	return t, nil
}

func (m *MemoryStore) ListTransactions(_ context.Context, userID int64) ([]core.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []core.Transaction
	for _, owned := range m.transactions {
		if owned.userID == userID {
			out = append(out, owned.t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[j].Date.Before(out[i].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) DeleteTransaction(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned, ok := m.transactions[id]
	if !ok || owned.userID != userID {
		return ErrNotFound
	}
	delete(m.transactions, id)
	delete(m.exportStatus, id)
	return nil
}

func (m *MemoryStore) CreateBill(_ context.Context, userID int64, b core.Bill) (core.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b.ID = m.nextIDLocked()
	m.bills[b.ID] = ownedBill{userID: userID, b: b}
	return b, nil
}

func (m *MemoryStore) ListBills(_ context.Context, userID int64) ([]core.Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []core.Bill
	for _, owned := range m.bills {
		if owned.userID == userID {
			out = append(out, owned.b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) GetBill(_ context.Context, userID, id int64) (core.Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owned, ok := m.bills[id]
	if !ok || owned.userID != userID {
		return core.Bill{}, ErrNotFound
	}
	return owned.b, nil
}

func (m *MemoryStore) UpdateBill(_ context.Context, userID int64, b core.Bill) (core.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned, ok := m.bills[b.ID]
	if !ok || owned.userID != userID {
		return core.Bill{}, ErrNotFound
	}
	m.bills[b.ID] = ownedBill{userID: userID, b: b}
	return b, nil
}

func (m *MemoryStore) DeleteBill(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned, ok := m.bills[id]
	if !ok || owned.userID != userID {
		return ErrNotFound
	}
	delete(m.bills, id)
	return nil
}

func (m *MemoryStore) ListRecurringPaidBills(_ context.Context) ([]core.Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []core.Bill
	for _, owned := range m.bills {
		if owned.b.Recurring && owned.b.Status == core.BillPaid {
			out = append(out, owned.b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) RollBill(_ context.Context, id int64, nextDue core.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned, ok := m.bills[id]
	if !ok {
		return ErrNotFound
	}
	owned.b.DueDate = nextDue
	owned.b.Status = core.BillPending
	owned.b.PaidDate = nil
	m.bills[id] = owned
	return nil
}

func (m *MemoryStore) CreateBudget(_ context.Context, userID int64, b core.Budget) (core.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b.ID = m.nextIDLocked()
	m.budgets[b.ID] = ownedBudget{userID: userID, b: b}
	return b, nil
}

func (m *MemoryStore) ListBudgets(_ context.Context, userID int64) ([]core.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []core.Budget
	for _, owned := range m.budgets {
		if owned.userID == userID {
			out = append(out, owned.b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdateBudget(_ context.Context, userID int64, b core.Budget) (core.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned, ok := m.budgets[b.ID]
	if !ok || owned.userID != userID {
		return core.Budget{}, ErrNotFound
	}
	m.budgets[b.ID] = ownedBudget{userID: userID, b: b}
	return b, nil
}

func (m *MemoryStore) DeleteBudget(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned, ok := m.budgets[id]
	if !ok || owned.userID != userID {
		return ErrNotFound
	}
	delete(m.budgets, id)
	return nil
}

func (m *MemoryStore) CreateSaving(_ context.Context, userID int64, s core.SavingsAccount) (core.SavingsAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	s.ID = m.nextIDLocked()
	s.CreatedAt = now
	s.UpdatedAt = now
	m.savings[s.ID] = ownedSaving{userID: userID, s: s}
	return s, nil
}

func (m *MemoryStore) ListSavings(_ context.Context, userID int64) ([]core.SavingsAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []core.SavingsAccount
	for _, owned := range m.savings {
		if owned.userID == userID {
			out = append(out, owned.s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetSaving(_ context.Context, userID, id int64) (core.SavingsAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owned, ok := m.savings[id]
	if !ok || owned.userID != userID {
		return core.SavingsAccount{}, ErrNotFound
	}
	return owned.s, nil
}

func (m *MemoryStore) UpdateSaving(_ context.Context, userID int64, s core.SavingsAccount) (core.SavingsAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned, ok := m.savings[s.ID]
	if !ok || owned.userID != userID {
		return core.SavingsAccount{}, ErrNotFound
	}
	s.CreatedAt = owned.s.CreatedAt
	s.UpdatedAt = time.Now().UTC()
	m.savings[s.ID] = ownedSaving{userID: userID, s: s}
	return s, nil
}

func (m *MemoryStore) DeleteSaving(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned, ok := m.savings[id]
	if !ok || owned.userID != userID {
		return ErrNotFound
	}
	delete(m.savings, id)
	for txID, tx := range m.savingTxs {
		if tx.SavingID == id {
			delete(m.savingTxs, txID)
		}
	}
	return nil
}

func (m *MemoryStore) ListSavingTransactions(_ context.Context, userID, savingID int64) ([]core.SavingTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owned, ok := m.savings[savingID]
	if !ok || owned.userID != userID {
		return nil, ErrNotFound
	}
	var out []core.SavingTransaction
	for _, tx := range m.savingTxs {
		if tx.SavingID == savingID {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MemoryStore) ApplySavingTransaction(_ context.Context, userID, savingID int64, delta core.Money, t core.SavingTransaction) (core.SavingsAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned, ok := m.savings[savingID]
	if !ok || owned.userID != userID {
		return core.SavingsAccount{}, ErrNotFound
	}
	newBalance := owned.s.Balance.Add(delta)
	if newBalance.IsNegative() {
		return core.SavingsAccount{}, ErrInsufficientFunds
	}
	owned.s.Balance = newBalance
	owned.s.UpdatedAt = time.Now().UTC()
	m.savings[savingID] = owned

	t.ID = m.nextIDLocked()
	t.SavingID = savingID
	t.CreatedAt = owned.s.UpdatedAt
	m.savingTxs[t.ID] = t
	return owned.s, nil
}

func (m *MemoryStore) PendingExports(_ context.Context, limit int) ([]PendingExport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []PendingExport
	for id, status := range m.exportStatus {
		if status == "pending" {
			out = append(out, PendingExport{TransactionID: id})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionID < out[j].TransactionID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) ExportTransaction(_ context.Context, transactionID int64) (core.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owned, ok := m.transactions[transactionID]
	if !ok {
		return core.Transaction{}, ErrNotFound
	}
	return owned.t, nil
}

func (m *MemoryStore) MarkExported(_ context.Context, transactionID int64) error {
	return m.setExportStatus(transactionID, "synced")
}

func (m *MemoryStore) MarkExportError(_ context.Context, transactionID int64) error {
	return m.setExportStatus(transactionID, "error")
}

func (m *MemoryStore) setExportStatus(transactionID int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[transactionID]; !ok {
		return ErrNotFound
	}
	m.exportStatus[transactionID] = status
	return nil
}

func (m *MemoryStore) Close() error { return nil }

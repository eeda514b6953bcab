package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack/internal/core"
)

// PostgresStore is the alternative backend for shared deployments.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sessions (
    token TEXT PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    expires_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    amount NUMERIC NOT NULL,
    type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
    category TEXT NOT NULL,
    date DATE NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    sync_status TEXT NOT NULL DEFAULT 'pending' CHECK (sync_status IN ('pending', 'synced', 'error')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);
CREATE INDEX IF NOT EXISTS idx_transactions_sync_status ON transactions(sync_status);

CREATE TABLE IF NOT EXISTS bills (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    amount NUMERIC NOT NULL,
    due_date DATE NOT NULL,
    recurring BOOLEAN NOT NULL DEFAULT FALSE,
    frequency TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'paid', 'overdue')),
    paid_date DATE
);

CREATE TABLE IF NOT EXISTS budgets (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    category TEXT NOT NULL,
    budget_limit NUMERIC NOT NULL,
    period TEXT NOT NULL CHECK (period IN ('weekly', 'monthly', 'quarterly', 'yearly')),
    UNIQUE (user_id, category, period)
);

CREATE TABLE IF NOT EXISTS savings (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    account_type TEXT NOT NULL DEFAULT '',
    balance NUMERIC NOT NULL DEFAULT 0,
    interest_rate NUMERIC,
    goal NUMERIC,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS saving_transactions (
    id BIGSERIAL PRIMARY KEY,
    saving_id BIGINT NOT NULL REFERENCES savings(id) ON DELETE CASCADE,
    type TEXT NOT NULL CHECK (type IN ('deposit', 'withdrawal', 'transfer_in', 'transfer_out')),
    amount NUMERIC NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_saving_transactions_saving ON saving_transactions(saving_id);
`

func NewPostgresStore(ctx context.Context, connURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connURL)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure postgres schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, email, name, passwordHash string) (User, error) {
	var exists int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE email = $1`, email).Scan(&exists)
	if err != nil {
		return User{}, fmt.Errorf("check email: %w", err)
	}
	if exists > 0 {
		return User{}, ErrEmailTaken
	}

	var u User
	err = s.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash) VALUES ($1, $2, $3)
		 RETURNING id, email, name, password_hash, created_at`,
		email, name, passwordHash).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "id", u.ID, "email", u.Email)
	return u, nil
}

func (s *PostgresStore) UserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		token, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *PostgresStore) SessionUser(ctx context.Context, token string, now time.Time) (User, error) {
	var u User
	err := s.pool.QueryRow(ctx,
		`SELECT u.id, u.email, u.name, u.password_hash, u.created_at
		 FROM sessions s JOIN users u ON u.id = s.user_id
		 WHERE s.token = $1 AND s.expires_at > $2`, token, now).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("lookup session: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) DeleteSession(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateTransaction(ctx context.Context, userID int64, t core.Transaction) (core.Transaction, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO transactions (user_id, amount, type, category, date, description)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		userID, t.Amount.String(), string(t.Type), t.Category, t.Date.Time, t.Description).
		Scan(&t.ID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"type", t.Type,
		"category", t.Category,
		"amount", t.Amount.String())
	return t, nil
}

func (s *PostgresStore) ListTransactions(ctx context.Context, userID int64) ([]core.Transaction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, amount::text, type, category, date, description
		 FROM transactions WHERE user_id = $1 ORDER BY date DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanPgTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanPgTransaction(rows pgx.Rows) (core.Transaction, error) {
	var t core.Transaction
	var amount, typ string
	var date time.Time
	if err := rows.Scan(&t.ID, &amount, &typ, &t.Category, &date, &t.Description); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	m, err := core.ParseMoney(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored amount %q: %w", amount, err)
	}
	t.Amount = m
	t.Type = core.TransactionType(typ)
	t.Date = core.DateOf(date)
	return t, nil
}

func (s *PostgresStore) DeleteTransaction(ctx context.Context, userID, id int64) error {
	res, err := s.pool.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateBill(ctx context.Context, userID int64, b core.Bill) (core.Bill, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO bills (user_id, name, amount, due_date, recurring, frequency, category, status, paid_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		userID, b.Name, b.Amount.String(), b.DueDate.Time, b.Recurring,
		string(b.Frequency), b.Category, string(b.Status), pgDateOrNil(b.PaidDate)).
		Scan(&b.ID)
	if err != nil {
		return core.Bill{}, fmt.Errorf("create bill: %w", err)
	}
	return b, nil
}

const pgBillColumns = `id, name, amount::text, due_date, recurring, frequency, category, status, paid_date`

func (s *PostgresStore) ListBills(ctx context.Context, userID int64) ([]core.Bill, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgBillColumns+` FROM bills WHERE user_id = $1 ORDER BY due_date, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	return collectPgBills(rows)
}

func (s *PostgresStore) GetBill(ctx context.Context, userID, id int64) (core.Bill, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgBillColumns+` FROM bills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return core.Bill{}, fmt.Errorf("get bill: %w", err)
	}
	defer rows.Close()

	bills, err := collectPgBills(rows)
	if err != nil {
		return core.Bill{}, err
	}
	if len(bills) == 0 {
		return core.Bill{}, ErrNotFound
	}
	return bills[0], nil
}

func collectPgBills(rows pgx.Rows) ([]core.Bill, error) {
	var out []core.Bill
	for rows.Next() {
		var b core.Bill
		var amount, frequency, status string
		var due time.Time
		var paid *time.Time
		if err := rows.Scan(&b.ID, &b.Name, &amount, &due, &b.Recurring,
			&frequency, &b.Category, &status, &paid); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		m, err := core.ParseMoney(amount)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		b.Amount = m
		b.DueDate = core.DateOf(due)
		b.Frequency = core.Frequency(frequency)
		b.Status = core.BillStatus(status)
		if paid != nil {
			d := core.DateOf(*paid)
			b.PaidDate = &d
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateBill(ctx context.Context, userID int64, b core.Bill) (core.Bill, error) {
	res, err := s.pool.Exec(ctx,
		`UPDATE bills SET name = $1, amount = $2, due_date = $3, recurring = $4, frequency = $5,
		 category = $6, status = $7, paid_date = $8
		 WHERE id = $9 AND user_id = $10`,
		b.Name, b.Amount.String(), b.DueDate.Time, b.Recurring, string(b.Frequency),
		b.Category, string(b.Status), pgDateOrNil(b.PaidDate), b.ID, userID)
	if err != nil {
		return core.Bill{}, fmt.Errorf("update bill: %w", err)
	}
	if res.RowsAffected() == 0 {
		return core.Bill{}, ErrNotFound
	}
	return b, nil
}

func (s *PostgresStore) DeleteBill(ctx context.Context, userID, id int64) error {
	res, err := s.pool.Exec(ctx,
		`DELETE FROM bills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListRecurringPaidBills(ctx context.Context) ([]core.Bill, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgBillColumns+` FROM bills WHERE recurring AND status = 'paid' ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list recurring paid bills: %w", err)
	}
	defer rows.Close()
	return collectPgBills(rows)
}

func (s *PostgresStore) RollBill(ctx context.Context, id int64, nextDue core.Date) error {
	res, err := s.pool.Exec(ctx,
		`UPDATE bills SET due_date = $1, status = 'pending', paid_date = NULL WHERE id = $2`,
		nextDue.Time, id)
	if err != nil {
		return fmt.Errorf("roll bill: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateBudget(ctx context.Context, userID int64, b core.Budget) (core.Budget, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO budgets (user_id, category, budget_limit, period)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		userID, b.Category, b.Limit.String(), string(b.Period)).Scan(&b.ID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) ListBudgets(ctx context.Context, userID int64) ([]core.Budget, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, category, budget_limit::text, period FROM budgets
		 WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		var limit, period string
		if err := rows.Scan(&b.ID, &b.Category, &limit, &period); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		m, err := core.ParseMoney(limit)
		if err != nil {
			return nil, fmt.Errorf("parse stored limit %q: %w", limit, err)
		}
		b.Limit = m
		b.Period = core.Frequency(period)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateBudget(ctx context.Context, userID int64, b core.Budget) (core.Budget, error) {
	res, err := s.pool.Exec(ctx,
		`UPDATE budgets SET category = $1, budget_limit = $2, period = $3
		 WHERE id = $4 AND user_id = $5`,
		b.Category, b.Limit.String(), string(b.Period), b.ID, userID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	if res.RowsAffected() == 0 {
		return core.Budget{}, ErrNotFound
	}
	return b, nil
}

func (s *PostgresStore) DeleteBudget(ctx context.Context, userID, id int64) error {
	res, err := s.pool.Exec(ctx,
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const pgSavingColumns = `id, name, account_type, balance::text, interest_rate::text, goal::text, description, created_at, updated_at`

func (s *PostgresStore) CreateSaving(ctx context.Context, userID int64, acc core.SavingsAccount) (core.SavingsAccount, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO savings (user_id, name, account_type, balance, interest_rate, goal, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		userID, acc.Name, acc.AccountType, acc.Balance.String(),
		pgMoneyOrNil(acc.InterestRate), pgMoneyOrNil(acc.Goal), acc.Description).Scan(&id)
	if err != nil {
		return core.SavingsAccount{}, fmt.Errorf("create savings account: %w", err)
	}
	return s.GetSaving(ctx, userID, id)
}

func (s *PostgresStore) ListSavings(ctx context.Context, userID int64) ([]core.SavingsAccount, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgSavingColumns+` FROM savings WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list savings accounts: %w", err)
	}
	defer rows.Close()
	return collectPgSavings(rows)
}

func (s *PostgresStore) GetSaving(ctx context.Context, userID, id int64) (core.SavingsAccount, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgSavingColumns+` FROM savings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return core.SavingsAccount{}, fmt.Errorf("get savings account: %w", err)
	}
	defer rows.Close()

	accounts, err := collectPgSavings(rows)
	if err != nil {
		return core.SavingsAccount{}, err
	}
	if len(accounts) == 0 {
		return core.SavingsAccount{}, ErrNotFound
	}
	return accounts[0], nil
}

func collectPgSavings(rows pgx.Rows) ([]core.SavingsAccount, error) {
	var out []core.SavingsAccount
	for rows.Next() {
		var acc core.SavingsAccount
		var balance string
		var rate, goal *string
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.AccountType, &balance, &rate, &goal,
			&acc.Description, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan savings account: %w", err)
		}
		m, err := core.ParseMoney(balance)
		if err != nil {
			return nil, fmt.Errorf("parse stored balance %q: %w", balance, err)
		}
		acc.Balance = m
		if acc.InterestRate, err = pgNullMoney(rate); err != nil {
			return nil, fmt.Errorf("parse stored interest rate: %w", err)
		}
		if acc.Goal, err = pgNullMoney(goal); err != nil {
			return nil, fmt.Errorf("parse stored goal: %w", err)
		}
		out = append(out, acc)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateSaving(ctx context.Context, userID int64, acc core.SavingsAccount) (core.SavingsAccount, error) {
	res, err := s.pool.Exec(ctx,
		`UPDATE savings SET name = $1, account_type = $2, interest_rate = $3, goal = $4,
		 description = $5, updated_at = now()
		 WHERE id = $6 AND user_id = $7`,
		acc.Name, acc.AccountType, pgMoneyOrNil(acc.InterestRate), pgMoneyOrNil(acc.Goal),
		acc.Description, acc.ID, userID)
	if err != nil {
		return core.SavingsAccount{}, fmt.Errorf("update savings account: %w", err)
	}
	if res.RowsAffected() == 0 {
		return core.SavingsAccount{}, ErrNotFound
	}
	return s.GetSaving(ctx, userID, acc.ID)
}

func (s *PostgresStore) DeleteSaving(ctx context.Context, userID, id int64) error {
	res, err := s.pool.Exec(ctx,
		`DELETE FROM savings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete savings account: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListSavingTransactions(ctx context.Context, userID, savingID int64) ([]core.SavingTransaction, error) {
	if _, err := s.GetSaving(ctx, userID, savingID); err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, saving_id, type, amount::text, description, created_at
		 FROM saving_transactions WHERE saving_id = $1 ORDER BY id DESC`, savingID)
	if err != nil {
		return nil, fmt.Errorf("list saving transactions: %w", err)
	}
	defer rows.Close()

	var out []core.SavingTransaction
	for rows.Next() {
		var t core.SavingTransaction
		var typ, amount string
		if err := rows.Scan(&t.ID, &t.SavingID, &typ, &amount, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan saving transaction: %w", err)
		}
		m, err := core.ParseMoney(amount)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		t.Type = core.SavingTransactionType(typ)
		t.Amount = m
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ApplySavingTransaction(ctx context.Context, userID, savingID int64, delta core.Money, t core.SavingTransaction) (core.SavingsAccount, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return core.SavingsAccount{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var balanceRaw string
	err = tx.QueryRow(ctx,
		`SELECT balance::text FROM savings WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		savingID, userID).Scan(&balanceRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.SavingsAccount{}, ErrNotFound
	}
	if err != nil {
		return core.SavingsAccount{}, fmt.Errorf("read balance: %w", err)
	}
	balance, err := core.ParseMoney(balanceRaw)
	if err != nil {
		return core.SavingsAccount{}, fmt.Errorf("parse stored balance %q: %w", balanceRaw, err)
	}

	newBalance := balance.Add(delta)
	if newBalance.IsNegative() {
		return core.SavingsAccount{}, ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx,
		`UPDATE savings SET balance = $1, updated_at = now() WHERE id = $2`,
		newBalance.String(), savingID); err != nil {
		return core.SavingsAccount{}, fmt.Errorf("update balance: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO saving_transactions (saving_id, type, amount, description)
		 VALUES ($1, $2, $3, $4)`,
		savingID, string(t.Type), t.Amount.String(), t.Description); err != nil {
		return core.SavingsAccount{}, fmt.Errorf("record saving transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return core.SavingsAccount{}, fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Savings balance updated",
		"saving_id", savingID,
		"type", t.Type,
		"amount", t.Amount.String(),
		"balance", newBalance.String())
	return s.GetSaving(ctx, userID, savingID)
}

func (s *PostgresStore) PendingExports(ctx context.Context, limit int) ([]PendingExport, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at FROM transactions WHERE sync_status = 'pending'
		 ORDER BY id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending exports: %w", err)
	}
	defer rows.Close()

	var out []PendingExport
	for rows.Next() {
		var p PendingExport
		if err := rows.Scan(&p.TransactionID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending export: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ExportTransaction(ctx context.Context, transactionID int64) (core.Transaction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, amount::text, type, category, date, description
		 FROM transactions WHERE id = $1`, transactionID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return core.Transaction{}, err
		}
		return core.Transaction{}, ErrNotFound
	}
	return scanPgTransaction(rows)
}

func (s *PostgresStore) MarkExported(ctx context.Context, transactionID int64) error {
	return s.setSyncStatus(ctx, transactionID, "synced")
}

func (s *PostgresStore) MarkExportError(ctx context.Context, transactionID int64) error {
	return s.setSyncStatus(ctx, transactionID, "error")
}

func (s *PostgresStore) setSyncStatus(ctx context.Context, transactionID int64, status string) error {
	res, err := s.pool.Exec(ctx,
		`UPDATE transactions SET sync_status = $1 WHERE id = $2`, status, transactionID)
	if err != nil {
		return fmt.Errorf("set sync status: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func pgDateOrNil(d *core.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

func pgMoneyOrNil(m *core.Money) any {
	if m == nil {
		return nil
	}
	return m.String()
}

func pgNullMoney(s *string) (*core.Money, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	m, err := core.ParseMoney(*s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the default persistence backend.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, email, name, passwordHash string) (User, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&exists)
	if err != nil {
		return User{}, fmt.Errorf("check email: %w", err)
	}
	if exists > 0 {
		return User{}, ErrEmailTaken
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, name, password_hash) VALUES (?, ?, ?)`,
		email, name, passwordHash)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, fmt.Errorf("user id: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "id", id, "email", email)
	return s.userByID(ctx, id)
}

func (s *SQLiteStore) userByID(ctx context.Context, id int64) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *SQLiteStore) UserByEmail(ctx context.Context, email string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	var createdAt sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = createdAt.Time
	return u, nil
}

func (s *SQLiteStore) CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, expiresAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SessionUser(ctx context.Context, token string, now time.Time) (User, error) {
	var userID int64
	var expiresRaw string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, expires_at FROM sessions WHERE token = ?`, token).
		Scan(&userID, &expiresRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("lookup session: %w", err)
	}
	expiresAt, err := time.Parse(time.RFC3339, expiresRaw)
	if err != nil {
		return User{}, fmt.Errorf("parse session expiry: %w", err)
	}
	if now.After(expiresAt) {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
		return User{}, ErrNotFound
	}
	return s.userByID(ctx, userID)
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CreateTransaction(ctx context.Context, userID int64, t core.Transaction) (core.Transaction, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, amount, type, category, date, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, t.Amount.String(), string(t.Type), t.Category, t.Date.String(), t.Description)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction id: %w", err)
	}
	t.ID = id

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"type", t.Type,
		"category", t.Category,
		"amount", t.Amount.String())
	return t, nil
}

func (s *SQLiteStore) ListTransactions(ctx context.Context, userID int64) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, type, category, date, description
		 FROM transactions WHERE user_id = ? ORDER BY date DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var t core.Transaction
	var amount, typ, date string
	if err := rows.Scan(&t.ID, &amount, &typ, &t.Category, &date, &t.Description); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	m, err := core.ParseMoney(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored amount %q: %w", amount, err)
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	t.Amount = m
	t.Type = core.TransactionType(typ)
	t.Date = d
	return t, nil
}

func (s *SQLiteStore) DeleteTransaction(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) CreateBill(ctx context.Context, userID int64, b core.Bill) (core.Bill, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO bills (user_id, name, amount, due_date, recurring, frequency, category, status, paid_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, b.Name, b.Amount.String(), b.DueDate.String(), b.Recurring,
		string(b.Frequency), b.Category, string(b.Status), dateOrNil(b.PaidDate))
	if err != nil {
		return core.Bill{}, fmt.Errorf("create bill: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Bill{}, fmt.Errorf("bill id: %w", err)
	}
	b.ID = id
	return b, nil
}

const billColumns = `id, name, amount, due_date, recurring, frequency, category, status, paid_date`

func (s *SQLiteStore) ListBills(ctx context.Context, userID int64) ([]core.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE user_id = ? ORDER BY due_date, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var out []core.Bill
	for rows.Next() {
		b, err := scanBill(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetBill(ctx context.Context, userID, id int64) (core.Bill, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE id = ? AND user_id = ?`, id, userID)
	b, err := scanBill(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Bill{}, ErrNotFound
	}
	return b, err
}

func scanBill(scan func(...any) error) (core.Bill, error) {
	var b core.Bill
	var amount, dueDate, frequency, status string
	var paidDate sql.NullString
	err := scan(&b.ID, &b.Name, &amount, &dueDate, &b.Recurring, &frequency, &b.Category, &status, &paidDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Bill{}, err
		}
		return core.Bill{}, fmt.Errorf("scan bill: %w", err)
	}
	m, err := core.ParseMoney(amount)
	if err != nil {
		return core.Bill{}, fmt.Errorf("parse stored amount %q: %w", amount, err)
	}
	due, err := core.ParseDate(dueDate)
	if err != nil {
		return core.Bill{}, fmt.Errorf("parse stored due date %q: %w", dueDate, err)
	}
	b.Amount = m
	b.DueDate = due
	b.Frequency = core.Frequency(frequency)
	b.Status = core.BillStatus(status)
	if paidDate.Valid && paidDate.String != "" {
		d, err := core.ParseDate(paidDate.String)
		if err != nil {
			return core.Bill{}, fmt.Errorf("parse stored paid date %q: %w", paidDate.String, err)
		}
		b.PaidDate = &d
	}
	return b, nil
}

func (s *SQLiteStore) UpdateBill(ctx context.Context, userID int64, b core.Bill) (core.Bill, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE bills SET name = ?, amount = ?, due_date = ?, recurring = ?, frequency = ?,
		 category = ?, status = ?, paid_date = ?
		 WHERE id = ? AND user_id = ?`,
		b.Name, b.Amount.String(), b.DueDate.String(), b.Recurring, string(b.Frequency),
		b.Category, string(b.Status), dateOrNil(b.PaidDate), b.ID, userID)
	if err != nil {
		return core.Bill{}, fmt.Errorf("update bill: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return core.Bill{}, err
	}
	return b, nil
}

func (s *SQLiteStore) DeleteBill(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM bills WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) ListRecurringPaidBills(ctx context.Context) ([]core.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE recurring = 1 AND status = 'paid' ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list recurring paid bills: %w", err)
	}
	defer rows.Close()

	var out []core.Bill
	for rows.Next() {
		b, err := scanBill(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) RollBill(ctx context.Context, id int64, nextDue core.Date) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE bills SET due_date = ?, status = 'pending', paid_date = NULL WHERE id = ?`,
		nextDue.String(), id)
	if err != nil {
		return fmt.Errorf("roll bill: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) CreateBudget(ctx context.Context, userID int64, b core.Budget) (core.Budget, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, category, budget_limit, period) VALUES (?, ?, ?, ?)`,
		userID, b.Category, b.Limit.String(), string(b.Period))
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Budget{}, fmt.Errorf("budget id: %w", err)
	}
	b.ID = id
	return b, nil
}

func (s *SQLiteStore) ListBudgets(ctx context.Context, userID int64) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, budget_limit, period FROM budgets WHERE user_id = ? ORDER BY id`, userID)
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

func (s *SQLiteStore) UpdateBudget(ctx context.Context, userID int64, b core.Budget) (core.Budget, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE budgets SET category = ?, budget_limit = ?, period = ? WHERE id = ? AND user_id = ?`,
		b.Category, b.Limit.String(), string(b.Period), b.ID, userID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}

func (s *SQLiteStore) DeleteBudget(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireAffected(res)
}

const savingColumns = `id, name, account_type, balance, interest_rate, goal, description, created_at, updated_at`

func (s *SQLiteStore) CreateSaving(ctx context.Context, userID int64, acc core.SavingsAccount) (core.SavingsAccount, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO savings (user_id, name, account_type, balance, interest_rate, goal, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, acc.Name, acc.AccountType, acc.Balance.String(),
		moneyOrNil(acc.InterestRate), moneyOrNil(acc.Goal), acc.Description)
	if err != nil {
		return core.SavingsAccount{}, fmt.Errorf("create savings account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.SavingsAccount{}, fmt.Errorf("savings account id: %w", err)
	}
	return s.GetSaving(ctx, userID, id)
}

func (s *SQLiteStore) ListSavings(ctx context.Context, userID int64) ([]core.SavingsAccount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+savingColumns+` FROM savings WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list savings accounts: %w", err)
	}
	defer rows.Close()

	var out []core.SavingsAccount
	for rows.Next() {
		acc, err := scanSaving(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetSaving(ctx context.Context, userID, id int64) (core.SavingsAccount, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+savingColumns+` FROM savings WHERE id = ? AND user_id = ?`, id, userID)
	acc, err := scanSaving(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return core.SavingsAccount{}, ErrNotFound
	}
	return acc, err
}

func scanSaving(scan func(...any) error) (core.SavingsAccount, error) {
	var acc core.SavingsAccount
	var balance string
	var rate, goal sql.NullString
	var createdAt, updatedAt sql.NullTime
	err := scan(&acc.ID, &acc.Name, &acc.AccountType, &balance, &rate, &goal,
		&acc.Description, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.SavingsAccount{}, err
		}
		return core.SavingsAccount{}, fmt.Errorf("scan savings account: %w", err)
	}
	m, err := core.ParseMoney(balance)
	if err != nil {
		return core.SavingsAccount{}, fmt.Errorf("parse stored balance %q: %w", balance, err)
	}
	acc.Balance = m
	if acc.InterestRate, err = nullMoney(rate); err != nil {
		return core.SavingsAccount{}, fmt.Errorf("parse stored interest rate: %w", err)
	}
	if acc.Goal, err = nullMoney(goal); err != nil {
		return core.SavingsAccount{}, fmt.Errorf("parse stored goal: %w", err)
	}
	acc.CreatedAt = createdAt.Time
	acc.UpdatedAt = updatedAt.Time
	return acc, nil
}

func (s *SQLiteStore) UpdateSaving(ctx context.Context, userID int64, acc core.SavingsAccount) (core.SavingsAccount, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE savings SET name = ?, account_type = ?, interest_rate = ?, goal = ?,
		 description = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		acc.Name, acc.AccountType, moneyOrNil(acc.InterestRate), moneyOrNil(acc.Goal),
		acc.Description, acc.ID, userID)
	if err != nil {
		return core.SavingsAccount{}, fmt.Errorf("update savings account: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return core.SavingsAccount{}, err
	}
	return s.GetSaving(ctx, userID, acc.ID)
}

func (s *SQLiteStore) DeleteSaving(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM savings WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete savings account: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) ListSavingTransactions(ctx context.Context, userID, savingID int64) ([]core.SavingTransaction, error) {
	if _, err := s.GetSaving(ctx, userID, savingID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, saving_id, type, amount, description, created_at
		 FROM saving_transactions WHERE saving_id = ? ORDER BY id DESC`, savingID)
	if err != nil {
		return nil, fmt.Errorf("list saving transactions: %w", err)
	}
	defer rows.Close()

	var out []core.SavingTransaction
	for rows.Next() {
		var t core.SavingTransaction
		var typ, amount string
		var createdAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.SavingID, &typ, &amount, &t.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("scan saving transaction: %w", err)
		}
		m, err := core.ParseMoney(amount)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		t.Type = core.SavingTransactionType(typ)
		t.Amount = m
		t.CreatedAt = createdAt.Time
		out = append(out, t)
	}
	return out, rows.Err()
}

// ApplySavingTransaction runs the balance update and the movement insert
// in one database transaction so a crash can never record one without
// the other.
func (s *SQLiteStore) ApplySavingTransaction(ctx context.Context, userID, savingID int64, delta core.Money, t core.SavingTransaction) (core.SavingsAccount, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.SavingsAccount{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var balanceRaw string
	err = tx.QueryRowContext(ctx,
		`SELECT balance FROM savings WHERE id = ? AND user_id = ?`, savingID, userID).
		Scan(&balanceRaw)
	if errors.Is(err, sql.ErrNoRows) {
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

	if _, err := tx.ExecContext(ctx,
		`UPDATE savings SET balance = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		newBalance.String(), savingID); err != nil {
		return core.SavingsAccount{}, fmt.Errorf("update balance: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO saving_transactions (saving_id, type, amount, description)
		 VALUES (?, ?, ?, ?)`,
		savingID, string(t.Type), t.Amount.String(), t.Description); err != nil {
		return core.SavingsAccount{}, fmt.Errorf("record saving transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.SavingsAccount{}, fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Savings balance updated",
		"saving_id", savingID,
		"type", t.Type,
		"amount", t.Amount.String(),
		"balance", newBalance.String())
	return s.GetSaving(ctx, userID, savingID)
}

func (s *SQLiteStore) PendingExports(ctx context.Context, limit int) ([]PendingExport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at FROM transactions WHERE sync_status = 'pending'
		 ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending exports: %w", err)
	}
	defer rows.Close()

	var out []PendingExport
	for rows.Next() {
		var p PendingExport
		var createdAt sql.NullTime
		if err := rows.Scan(&p.TransactionID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan pending export: %w", err)
		}
		p.CreatedAt = createdAt.Time
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ExportTransaction(ctx context.Context, transactionID int64) (core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, type, category, date, description
		 FROM transactions WHERE id = ?`, transactionID)
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
	return scanTransaction(rows)
}

func (s *SQLiteStore) MarkExported(ctx context.Context, transactionID int64) error {
	if err := s.setSyncStatus(ctx, transactionID, "synced"); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", transactionID)
	return nil
}

func (s *SQLiteStore) MarkExportError(ctx context.Context, transactionID int64) error {
	if err := s.setSyncStatus(ctx, transactionID, "error"); err != nil {
		return err
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "id", transactionID)
	return nil
}

func (s *SQLiteStore) setSyncStatus(ctx context.Context, transactionID int64, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = ? WHERE id = ?`, status, transactionID)
	if err != nil {
		return fmt.Errorf("set sync status: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func dateOrNil(d *core.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func moneyOrNil(m *core.Money) any {
	if m == nil {
		return nil
	}
	return m.String()
}

func nullMoney(ns sql.NullString) (*core.Money, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	m, err := core.ParseMoney(ns.String)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

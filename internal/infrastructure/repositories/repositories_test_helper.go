package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'USER',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createAPIKeyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE api_keys (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		key_prefix TEXT NOT NULL,
		key_hash TEXT UNIQUE NOT NULL,
		secret_masked TEXT NOT NULL,
		permissions TEXT NOT NULL,
		rate_limit INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_by TEXT,
		last_used_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createLoginAttemptTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE login_attempts (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		ip_address TEXT NOT NULL,
		user_agent TEXT,
		success BOOLEAN NOT NULL,
		attempted_at DATETIME NOT NULL
	);`)
}

func createSessionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		ip_address TEXT,
		user_agent TEXT,
		expires_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
}

func createRequestLogTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE request_logs (
		id TEXT PRIMARY KEY,
		key_identity TEXT NOT NULL,
		endpoint TEXT NOT NULL,
		method TEXT NOT NULL,
		path TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		response_time_ms INTEGER NOT NULL,
		request_size INTEGER,
		response_size INTEGER,
		ip_address TEXT,
		user_agent TEXT,
		referer TEXT,
		error_message TEXT,
		created_at DATETIME
	);`)
}

func createUsageSummaryTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE api_usage_summaries (
		id TEXT PRIMARY KEY,
		date DATETIME NOT NULL,
		key_identity TEXT NOT NULL,
		endpoint TEXT NOT NULL,
		total_requests INTEGER NOT NULL DEFAULT 0,
		success_count INTEGER NOT NULL DEFAULT 0,
		fail_count INTEGER NOT NULL DEFAULT 0,
		total_response_time_ms INTEGER NOT NULL DEFAULT 0,
		avg_response_time_ms REAL NOT NULL DEFAULT 0,
		min_response_time_ms INTEGER NOT NULL DEFAULT 0,
		max_response_time_ms INTEGER NOT NULL DEFAULT 0,
		UNIQUE(date, key_identity, endpoint)
	);`)
}

func createCustomerTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		phone TEXT NOT NULL,
		address TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createVehicleTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE vehicles (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		vin TEXT UNIQUE NOT NULL,
		make TEXT NOT NULL,
		model TEXT NOT NULL,
		year INTEGER NOT NULL,
		mileage INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createBookingTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bookings (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		vehicle_id TEXT NOT NULL,
		scheduled_at DATETIME NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createServiceRecordTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE service_records (
		id TEXT PRIMARY KEY,
		booking_id TEXT UNIQUE NOT NULL,
		vehicle_id TEXT NOT NULL,
		description TEXT NOT NULL,
		labor_hours REAL NOT NULL DEFAULT 0,
		labor_rate REAL NOT NULL DEFAULT 0,
		parts_total REAL NOT NULL DEFAULT 0,
		total_cost REAL NOT NULL DEFAULT 0,
		completed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createInventoryTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE inventory_parts (
		id TEXT PRIMARY KEY,
		sku TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0,
		unit_price REAL NOT NULL DEFAULT 0,
		reorder_level INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createWarrantyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE warranties (
		id TEXT PRIMARY KEY,
		vehicle_id TEXT NOT NULL,
		type TEXT NOT NULL,
		starts_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		mileage_limit INTEGER NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createInvoiceTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE invoices (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		service_record_id TEXT UNIQUE NOT NULL,
		number TEXT UNIQUE NOT NULL,
		subtotal REAL NOT NULL DEFAULT 0,
		tax_rate REAL NOT NULL DEFAULT 0,
		tax_amount REAL NOT NULL DEFAULT 0,
		total REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'DRAFT',
		issued_at DATETIME,
		paid_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createNotificationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE notifications (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		channel TEXT NOT NULL,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		sent_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

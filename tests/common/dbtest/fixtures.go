//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func CreateTestUser(t *testing.T, db DBLike, email, password, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	// MinCost keeps test setup fast; production hashing strength is irrelevant here.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	username := strings.SplitN(email, "@", 2)[0]
	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, username, password_hash, role, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		userID, email, username, string(hash), role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

// creates a lot with capacity spots labeled S-001, S-002, ...
func CreateTestLot(t *testing.T, db DBLike, name string, hourlyRateCents int64, capacity int32) uuid.UUID {
	t.Helper()

	lotID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO lots (id, name, address, postal_code, hourly_rate_cents, capacity) VALUES ($1, $2, '12 Lakeview Drive', '98101', $3, $4)",
		lotID, name, hourlyRateCents, capacity)
	require.NoError(t, err)

	for i := int32(1); i <= capacity; i++ {
		_, err := db.Exec(ctx, "INSERT INTO spots (id, lot_id, label, status) VALUES ($1, $2, $3, 'available')",
			uuid.New(), lotID, fmt.Sprintf("S-%03d", i))
		require.NoError(t, err)
	}

	return lotID
}

func CreateTestSpot(t *testing.T, db DBLike, lotID uuid.UUID, label string) uuid.UUID {
	t.Helper()

	spotID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO spots (id, lot_id, label, status) VALUES ($1, $2, $3, 'available')",
		spotID, lotID, label)
	require.NoError(t, err)

	return spotID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each subtest starts from a clean slate
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}

// Package testutils provides shared helpers for integration tests,
// centered on transaction-based isolation: each test runs inside its
// own transaction which is rolled back on completion, so tests can run
// in parallel against the same database without interfering and without
// manual cleanup.
//
// Usage:
//
//	func TestMyFeature(t *testing.T) {
//	    if !testutils.IsIntegrationTestEnvironment() {
//	        t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
//	    }
//
//	    db := testutils.GetTestDBWithT(t)
//	    testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        userID := testutils.MustInsertUser(ctx, t, tx, "someone@example.com")
//	        // exercise stores against tx; changes roll back automatically
//	    })
//	}
package testutils

package accountstore

import (
	"strconv"
	"sync"
	"testing"

	"github.com/alliterative/accountd/pkg/identitypkg"
	"github.com/alliterative/accountd/pkg/randompkg"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(t.TempDir())
	require.NoError(t, err)

	return store
}

func testAccountID() string {
	return identitypkg.Derive(randompkg.Email())
}

func TestEnsureIsIdempotent(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	id := testAccountID()

	require.NoError(t, store.Ensure(id))
	require.NoError(t, store.Ensure(id))
}

func TestEnsureConcurrent(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	id := testAccountID()

	const callers = 20

	var wg sync.WaitGroup

	errs := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			errs <- store.Ensure(id)
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

func TestEnsureRejectsInvalidID(t *testing.T) {
	t.Parallel()

	store := testStore(t)

	for _, id := range []string{"", "abc", "../../../etc/passwd", testAccountID() + "x"} {
		require.ErrorIs(t, store.Ensure(id), ErrInvalidID)
	}
}

func TestWriteThenRead(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	id := testAccountID()
	require.NoError(t, store.Ensure(id))

	require.NoError(t, store.Write(id, KindCode, []byte("first")))
	require.NoError(t, store.Write(id, KindCode, []byte("second")))

	got, err := store.Read(id, KindCode)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)
}

func TestReadMissingRecord(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	id := testAccountID()
	require.NoError(t, store.Ensure(id))

	_, err := store.Read(id, KindLedger)
	require.ErrorIs(t, err, ErrNotFound)

	// Account namespace never created at all.
	_, err = store.Read(testAccountID(), KindCode)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidKind(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	id := testAccountID()
	require.NoError(t, store.Ensure(id))

	_, err := store.Read(id, Kind("../other-account/ledger"))
	require.ErrorIs(t, err, ErrInvalidKind)

	require.ErrorIs(t, store.Write(id, Kind("secrets"), []byte("x")), ErrInvalidKind)
}

func TestAppendConcurrent(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	id := testAccountID()
	require.NoError(t, store.Ensure(id))

	const callers = 50

	var wg sync.WaitGroup

	errs := make(chan error, callers)

	for i := 0; i < callers; i++ {
		i := i

		wg.Add(1)

		go func() {
			defer wg.Done()
			errs <- store.Append(id, KindLedger, []byte(strconv.Itoa(i)))
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	data, err := store.Read(id, KindLedger)
	require.NoError(t, err)

	lines := 0
	sum := 0

	for _, line := range splitLines(data) {
		n, err := strconv.Atoi(line)
		require.NoError(t, err, "torn line %q", line)

		sum += n
		lines++
	}

	require.Equal(t, callers, lines)
	require.Equal(t, callers*(callers-1)/2, sum)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	id := testAccountID()
	require.NoError(t, store.Ensure(id))

	require.NoError(t, store.Write(id, KindCode, []byte("code")))
	require.NoError(t, store.Remove(id, KindCode))
	require.ErrorIs(t, store.Remove(id, KindCode), ErrNotFound)

	_, err := store.Read(id, KindCode)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClaimSession(t *testing.T) {
	t.Parallel()

	store := testStore(t)

	claimed, err := store.ClaimSession("cs_test_123")
	require.NoError(t, err)
	require.True(t, claimed)

	claimed, err = store.ClaimSession("cs_test_123")
	require.NoError(t, err)
	require.False(t, claimed)
}

func TestClaimSessionConcurrent(t *testing.T) {
	t.Parallel()

	store := testStore(t)

	const callers = 20

	var wg sync.WaitGroup

	type claimResult struct {
		claimed bool
		err     error
	}

	claims := make(chan claimResult, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			claimed, err := store.ClaimSession("cs_test_race")
			claims <- claimResult{claimed, err}
		}()
	}

	wg.Wait()
	close(claims)

	winners := 0

	for res := range claims {
		require.NoError(t, res.err)

		if res.claimed {
			winners++
		}
	}

	require.Equal(t, 1, winners)
}

func TestClaimSessionRejectsUnsafeIDs(t *testing.T) {
	t.Parallel()

	store := testStore(t)

	for _, sessionID := range []string{"", "../escape", "a/b", "cs.test"} {
		_, err := store.ClaimSession(sessionID)
		require.ErrorIs(t, err, ErrInvalidSessionID)
	}
}

func splitLines(data []byte) []string {
	var lines []string

	start := 0

	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i]))
			start = i + 1
		}
	}

	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}

	return lines
}

package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
	"github.com/stretchr/testify/require"
)

// fakeUploader fails its failCall-th upload (1-based).
type fakeUploader struct {
	mu       sync.Mutex
	paths    []string
	failCall int
}

func (f *fakeUploader) Upload(_ context.Context, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	f.paths = append(f.paths, path)
	if len(f.paths) == f.failCall {
		return "", errors.New("upload refused")
	}
	return "https://cdn.example/" + filepath.Base(path), nil
}

type sent struct {
	to, link string
	template bool
}

type fakeMessenger struct {
	mu     sync.Mutex
	sent   []sent
	failTo string
}

func (f *fakeMessenger) SendImage(_ context.Context, to, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if to == f.failTo {
		return errors.New("channel rejected recipient")
	}
	f.sent = append(f.sent, sent{to: to, link: link})
	return nil
}

func (f *fakeMessenger) SendTemplate(_ context.Context, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{to: to, template: true})
	return nil
}

func dispatchFixture(t *testing.T) (domain.Event, []domain.User, []domain.Pass) {
	t.Helper()

	event := domain.Event{ID: 10, Name: "Conf", Date: time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)}
	users := []domain.User{
		{ID: 1, Name: "A", Phone: "1111111111"},
		{ID: 2, Name: "B", Phone: "2222222222"},
		{ID: 3, Name: "C", Phone: "3333333333"},
		{ID: 4, Name: "D", Phone: "4444444444"},
	}
	passes := []domain.Pass{
		{ID: 100, EventID: 10, UserID: 1, Category: domain.CategoryGold},
		{ID: 101, EventID: 10, UserID: 2, Category: domain.CategorySilver},
		{ID: 103, EventID: 10, UserID: 4, Category: domain.CategoryPlatinum},
	}
	return event, users, passes
}

func TestNotifyOneRemovesTempFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	event, users, passes := dispatchFixture(t)

	up := &fakeUploader{}
	msg := &fakeMessenger{}
	svc := &DispatchService{Uploader: up, Messenger: msg, TempDir: dir}

	require.NoError(t, svc.NotifyOne(ctx, users[0], event, passes[0]))
	require.Len(t, up.paths, 1)
	require.NoFileExists(t, up.paths[0])
	require.Equal(t, "1111111111", msg.sent[0].to)
	require.Equal(t, "https://cdn.example/"+filepath.Base(up.paths[0]), msg.sent[0].link)

	t.Run("send failure still cleans up", func(t *testing.T) {
		msg.failTo = users[1].Phone
		err := svc.NotifyOne(ctx, users[1], event, passes[1])
		require.Error(t, err)
		require.NoFileExists(t, up.paths[len(up.paths)-1])
	})

	t.Run("upload failure still cleans up", func(t *testing.T) {
		up.failCall = len(up.paths) + 1

		err := svc.NotifyOne(ctx, users[0], event, passes[0])
		require.ErrorContains(t, err, "upload refused")
		require.NoFileExists(t, up.paths[len(up.paths)-1])
	})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestNotifyOneWithoutUploaderSendsTemplate(t *testing.T) {
	event, users, passes := dispatchFixture(t)
	msg := &fakeMessenger{}
	svc := &DispatchService{Messenger: msg}

	require.NoError(t, svc.NotifyOne(context.Background(), users[0], event, passes[0]))
	require.Equal(t, []sent{{to: "1111111111", template: true}}, msg.sent)
}

func TestNotifyManyIsolatesFailures(t *testing.T) {
	ctx := context.Background()
	event, users, passes := dispatchFixture(t)

	// User 2's upload is the second one attempted. User 3 holds no pass.
	msg := &fakeMessenger{}
	svc := &DispatchService{
		Uploader:  &fakeUploader{failCall: 2},
		Messenger: msg,
		TempDir:   t.TempDir(),
		Sleep:     func(context.Context, time.Duration) error { return nil },
	}

	results := svc.NotifyMany(ctx, event, users, passes)

	require.Len(t, results, len(users))
	for i, r := range results {
		require.Equal(t, users[i].ID, r.UserID)
	}

	require.True(t, results[0].Success)
	require.False(t, results[1].Success)
	require.Contains(t, results[1].Error, "upload refused")
	require.False(t, results[2].Success)
	require.Equal(t, ErrNoPass.Error(), results[2].Error)
	require.True(t, results[3].Success)

	require.Equal(t, []string{"1111111111", "4444444444"}, []string{msg.sent[0].to, msg.sent[1].to})
}

func TestPassForPrefersActive(t *testing.T) {
	passes := []domain.Pass{
		{ID: 1, UserID: 7, Category: domain.CategoryGold, Status: domain.StatusCancelled},
		{ID: 2, UserID: 8, Category: domain.CategoryGold, Status: domain.StatusActive},
		{ID: 3, UserID: 7, Category: domain.CategorySilver, Status: domain.StatusActive},
		{ID: 4, UserID: 9, Category: domain.CategoryGold, Status: domain.StatusUsed},
		{ID: 5, UserID: 9, Category: domain.CategorySilver, Status: domain.StatusCancelled},
	}

	p, ok := passFor(7, passes)
	require.True(t, ok)
	require.Equal(t, int64(3), p.ID)

	p, ok = passFor(9, passes)
	require.True(t, ok)
	require.Equal(t, int64(4), p.ID)

	_, ok = passFor(10, passes)
	require.False(t, ok)
}

func TestNotifyOneMarksDeliveryErrors(t *testing.T) {
	ctx := context.Background()
	event, users, passes := dispatchFixture(t)

	svc := &DispatchService{
		Uploader:  &fakeUploader{},
		Messenger: &fakeMessenger{failTo: users[0].Phone},
		TempDir:   t.TempDir(),
	}
	var delivery *DeliveryError
	require.ErrorAs(t, svc.NotifyOne(ctx, users[0], event, passes[0]), &delivery)

	svc.Uploader = &fakeUploader{failCall: 1}
	require.ErrorAs(t, svc.NotifyOne(ctx, users[1], event, passes[1]), &delivery)
}

func TestSendPassStoreFailureIsNotDelivery(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := createUser(t, s, "Alice", "1111111111", "a@x.com")
	event := createEvent(t, s, alice.ID, 1, 1, 1)
	passID, err := (&PassService{Store: s}).Issue(ctx, event.ID, domain.CategoryGold, alice.ID)
	require.NoError(t, err)

	svc := &DispatchService{Store: s, Uploader: &fakeUploader{}, Messenger: &fakeMessenger{}, TempDir: t.TempDir()}
	require.NoError(t, s.Close())

	err = svc.SendPass(ctx, passID, alice.ID)
	require.Error(t, err)
	var delivery *DeliveryError
	require.False(t, errors.As(err, &delivery))
}

func TestNotifyManyPacesBetweenSuccessfulSends(t *testing.T) {
	ctx := context.Background()
	event, users, passes := dispatchFixture(t)

	msg := &fakeMessenger{failTo: "2222222222"}
	var slept []time.Duration
	svc := &DispatchService{
		Uploader:  &fakeUploader{},
		Messenger: msg,
		TempDir:   t.TempDir(),
		MinDelay:  time.Second,
		MaxDelay:  4 * time.Second,
		Jitter:    func(n int64) int64 { return n / 3 },
		Sleep: func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		},
	}

	results := svc.NotifyMany(ctx, event, users, passes)
	require.Len(t, results, 4)
	require.Equal(t, []bool{true, false, false, true}, []bool{
		results[0].Success, results[1].Success, results[2].Success, results[3].Success,
	})

	// Only user 1 succeeded with recipients left; user 4 is last.
	require.Equal(t, []time.Duration{2 * time.Second}, slept)
}

func TestNotifyManyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	event, users, passes := dispatchFixture(t)

	svc := &DispatchService{
		Uploader:  &fakeUploader{},
		Messenger: &fakeMessenger{},
		TempDir:   t.TempDir(),
		Sleep: func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}

	results := svc.NotifyMany(ctx, event, users, passes)
	require.Len(t, results, len(users))
	require.True(t, results[0].Success)
	for _, r := range results[1:] {
		require.False(t, r.Success)
		require.Equal(t, context.Canceled.Error(), r.Error)
	}
}

func TestDelayBounds(t *testing.T) {
	svc := &DispatchService{}
	for range 200 {
		d := svc.delay()
		require.GreaterOrEqual(t, d, DefaultMinDelay)
		require.Less(t, d, DefaultMaxDelay)
	}

	svc = &DispatchService{MinDelay: 2 * time.Second, MaxDelay: time.Second}
	require.Equal(t, 2*time.Second, svc.delay())
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := &DispatchService{}
	start := time.Now()
	require.ErrorIs(t, svc.sleep(ctx, time.Hour), context.Canceled)
	require.Less(t, time.Since(start), time.Second)
}

func TestSendEventPasses(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	org := createUser(t, s, "Org", "1000000000", "org@x.com")
	alice := createUser(t, s, "Alice", "1111111111", "a@x.com")
	bob := createUser(t, s, "Bob", "2222222222", "b@x.com")
	event := createEvent(t, s, org.ID, 5, 5, 0)

	issuer := &PassService{Store: s}
	_, err := issuer.Issue(ctx, event.ID, domain.CategoryGold, alice.ID)
	require.NoError(t, err)
	bobPass, err := issuer.Issue(ctx, event.ID, domain.CategorySilver, bob.ID)
	require.NoError(t, err)

	msg := &fakeMessenger{}
	svc := &DispatchService{
		Store:     s,
		Uploader:  &fakeUploader{},
		Messenger: msg,
		TempDir:   t.TempDir(),
		Sleep:     func(context.Context, time.Duration) error { return nil },
	}

	t.Run("only the organizer", func(t *testing.T) {
		_, err := svc.SendEventPasses(ctx, event.ID, alice.ID)
		require.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("batch", func(t *testing.T) {
		results, err := svc.SendEventPasses(ctx, event.ID, org.ID)
		require.NoError(t, err)
		require.Equal(t, []DispatchResult{
			{UserID: alice.ID, Success: true},
			{UserID: bob.ID, Success: true},
		}, results)
	})

	t.Run("single pass by owner", func(t *testing.T) {
		require.NoError(t, svc.SendPass(ctx, bobPass, bob.ID))
		require.ErrorIs(t, svc.SendPass(ctx, bobPass, alice.ID), ErrPassNotFound)
		require.ErrorIs(t, svc.SendPass(ctx, bobPass+100, bob.ID), ErrPassNotFound)
	})
}

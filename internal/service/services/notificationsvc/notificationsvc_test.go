package notificationsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/notification"
	"github.com/gebeta/delivery/internal/service/models/outbox"
	"github.com/gebeta/delivery/internal/service/models/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	notifications []notification.Notification
	nextID        int64
}

func (f *fakeNotificationRepo) Insert(_ context.Context, n notification.Notification) (notification.Notification, error) {
	f.nextID++
	n.ID = f.nextID
	f.notifications = append(f.notifications, n)

	return n, nil
}

func (f *fakeNotificationRepo) List(_ context.Context, userID string) ([]notification.Notification, error) {
	out := make([]notification.Notification, 0)
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}

	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, userID string, id int64) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications[i].IsRead = true

			return nil
		}
	}

	return apperr.NotFound("notification %d", id)
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}

	return count, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Get(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, apperr.NotFound("user %s", id)
	}

	return u, nil
}

func (f *fakeUserRepo) UpdatePushToken(_ context.Context, id string, token string) error {
	u := f.users[id]
	u.PushToken = token
	f.users[id] = u

	return nil
}

func (f *fakeUserRepo) UpdateLocation(_ context.Context, id string, latitude, longitude, address string) error {
	u := f.users[id]
	u.Latitude, u.Longitude, u.Address = latitude, longitude, address
	f.users[id] = u

	return nil
}

type fakePushQueue struct {
	published []notification.PushJob
	err       error
}

func (f *fakePushQueue) Publish(_ context.Context, job notification.PushJob) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, job)

	return nil
}

func (f *fakePushQueue) QueueName() string { return "delivery.notifications.push" }

type fakeOutboxRepo struct {
	inserted []outbox.Message
}

func (f *fakeOutboxRepo) Insert(_ context.Context, msg outbox.Message) error {
	f.inserted = append(f.inserted, msg)

	return nil
}

func (f *fakeOutboxRepo) GetPendingMessages(context.Context, int) ([]outbox.Message, error) {
	return f.inserted, nil
}

func (f *fakeOutboxRepo) Delete(context.Context, int64) error { return nil }

func (f *fakeOutboxRepo) UpdateRetry(context.Context, int64, int, string, time.Time) error {
	return nil
}

func newTestService(users *fakeUserRepo, queue *fakePushQueue, box *fakeOutboxRepo) (*NotificationService, *fakeNotificationRepo) {
	repo := &fakeNotificationRepo{}
	svc := MustNewNotificationService(
		WithNotificationRepository(repo),
		WithUserRepository(users),
		WithPushQueue(queue),
		WithOutboxRepository(box),
	)

	return svc, repo
}

func TestCreateAndReadFlow(t *testing.T) {
	svc, _ := newTestService(&fakeUserRepo{}, &fakePushQueue{}, &fakeOutboxRepo{})

	created, err := svc.Create(context.Background(), "u1", "Your order #1 has been placed successfully!")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.IsRead)

	count, err := svc.CountUnread(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.MarkRead(context.Background(), "u1", created.ID))

	count, err = svc.CountUnread(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateRejectsEmptyMessage(t *testing.T) {
	svc, _ := newTestService(&fakeUserRepo{}, &fakePushQueue{}, &fakeOutboxRepo{})

	_, err := svc.Create(context.Background(), "u1", "")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestSendPushEnqueuesJob(t *testing.T) {
	users := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", PushToken: "ExponentPushToken[abc]"},
	}}
	queue := &fakePushQueue{}
	svc, _ := newTestService(users, queue, &fakeOutboxRepo{})

	err := svc.SendPush(context.Background(), "u1", "Order Delivered!", "Enjoy your meal!", map[string]any{"orderId": 7})
	require.NoError(t, err)

	require.Len(t, queue.published, 1)
	assert.Equal(t, "ExponentPushToken[abc]", queue.published[0].To)
	assert.Equal(t, "default", queue.published[0].Sound)
	assert.Equal(t, "Order Delivered!", queue.published[0].Title)
}

func TestSendPushWithoutTokenIsNoOp(t *testing.T) {
	users := &fakeUserRepo{users: map[string]user.User{"u1": {ID: "u1"}}}
	queue := &fakePushQueue{}
	box := &fakeOutboxRepo{}
	svc, _ := newTestService(users, queue, box)

	err := svc.SendPush(context.Background(), "u1", "t", "b", nil)
	require.NoError(t, err)
	assert.Empty(t, queue.published)
	assert.Empty(t, box.inserted)
}

func TestSendPushFallsBackToOutbox(t *testing.T) {
	users := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", PushToken: "ExponentPushToken[abc]"},
	}}
	queue := &fakePushQueue{err: errors.New("broker unreachable")}
	box := &fakeOutboxRepo{}
	svc, _ := newTestService(users, queue, box)

	err := svc.SendPush(context.Background(), "u1", "t", "b", nil)
	require.NoError(t, err)

	require.Len(t, box.inserted, 1)
	assert.Equal(t, "delivery.notifications.push", box.inserted[0].QueueName)
	assert.Equal(t, "application/json", box.inserted[0].ContentType)
	assert.NotEmpty(t, box.inserted[0].Payload)
}

func TestSendPushUnknownUser(t *testing.T) {
	svc, _ := newTestService(&fakeUserRepo{users: map[string]user.User{}}, &fakePushQueue{}, &fakeOutboxRepo{})

	err := svc.SendPush(context.Background(), "ghost", "t", "b", nil)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

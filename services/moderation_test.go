package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"editorial/models"
	"editorial/testutil"
	"editorial/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	Type string
	Data interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeNotifier) Notify(eventType string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{Type: eventType, Data: data})
}

func (f *fakeNotifier) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

func guestRequest(slug string) *models.GuestPostRequest {
	return &models.GuestPostRequest{
		FullName: "Mina Park",
		Email:    "mina@example.com",
		Title:    "A Letter From Busan",
		Slug:     slug,
		Content:  "Sea air and noodles.",
		Tags:     []string{"travel"},
	}
}

func TestGuestPostService_SubmitCreatesGuestDraft(t *testing.T) {
	db := testutil.NewDB(t)
	authorID := uuid.NewString()
	notifier := &fakeNotifier{}
	svc := NewGuestPostService(db, authorID, notifier)

	post, err := svc.Submit(context.Background(), guestRequest("letter-from-busan"))
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.True(t, post.IsGuest)
	assert.Equal(t, authorID, post.AuthorID)

	var stored models.Post
	require.NoError(t, db.First(&stored, "id = ?", post.ID).Error)
	require.NotNil(t, stored.Guest)
	assert.Equal(t, "Mina Park", stored.Guest.Name)
	assert.Equal(t, "mina@example.com", stored.Guest.Email)
	assert.Equal(t, []string{models.EventGuestPostSubmitted}, notifier.types())
}

func TestGuestPostService_SubmitRejections(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	authorID := uuid.NewString()
	testutil.CreatePost(t, db, authorID, "taken", models.PostStatusPublished, time.Now())

	svc := NewGuestPostService(db, authorID, nil)

	missing := guestRequest("fresh")
	missing.FullName = "  "
	_, err := svc.Submit(ctx, missing)
	requireKind(t, err, utils.KindValidation)

	_, err = svc.Submit(ctx, guestRequest("taken"))
	requireKind(t, err, utils.KindConflict)

	_, err = NewGuestPostService(db, "", nil).Submit(ctx, guestRequest("fresh"))
	requireKind(t, err, utils.KindConfiguration)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGuestPostService_ModerationScope(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	authorID := uuid.NewString()
	svc := NewGuestPostService(db, authorID, nil)

	own := testutil.CreatePost(t, db, authorID, "own", models.PostStatusDraft, time.Now())
	first, err := svc.Submit(ctx, guestRequest("first"))
	require.NoError(t, err)
	second, err := svc.Submit(ctx, guestRequest("second"))
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(ctx, first.ID, "published"))
	requireKind(t, svc.SetStatus(ctx, own.ID, "PUBLISHED"), utils.KindNotFound)
	requireKind(t, svc.SetStatus(ctx, second.ID, "ARCHIVED"), utils.KindValidation)

	items, page, limit, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, 50, limit)
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Slug)
	assert.Equal(t, models.PostStatusDraft, items[0].Status)
	assert.Equal(t, "first", items[1].Slug)
	assert.Equal(t, "Mina Park", items[1].Guest.Name)

	requireKind(t, svc.Delete(ctx, own.ID), utils.KindNotFound)
	require.NoError(t, svc.Delete(ctx, second.ID))
	requireKind(t, svc.Delete(ctx, second.ID), utils.KindNotFound)

	public, err := NewPostService(db).GetPublished(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, first.ID, public.ID)
}

func TestCommentService_Lifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	notifier := &fakeNotifier{}
	svc := NewCommentService(db, notifier)

	post := testutil.CreatePost(t, db, uuid.NewString(), "open-thread", models.PostStatusPublished, time.Now())

	comment, err := svc.Submit(ctx, "open-thread", &models.CreateCommentRequest{
		Name:    "Reader",
		Email:   "Reader@Example.com",
		Message: "Lovely piece.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CommentStatusPending, comment.Status)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, "reader@example.com", comment.Email)

	visible, err := svc.ListApproved(ctx, "open-thread")
	require.NoError(t, err)
	assert.Empty(t, visible)

	require.NoError(t, svc.SetStatus(ctx, comment.ID, "APPROVED"))

	visible, err = svc.ListApproved(ctx, "open-thread")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Lovely piece.", visible[0].Message)

	all, _, _, err := svc.ListAll(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "open-thread", all[0].PostSlug)
	assert.Equal(t, post.Title, all[0].PostTitle)

	require.NoError(t, svc.SetStatus(ctx, comment.ID, "PENDING"))
	visible, err = svc.ListApproved(ctx, "open-thread")
	require.NoError(t, err)
	assert.Empty(t, visible)

	require.NoError(t, svc.Delete(ctx, comment.ID))
	requireKind(t, svc.Delete(ctx, comment.ID), utils.KindNotFound)
	assert.Equal(t, []string{models.EventCommentSubmitted}, notifier.types())
}

func TestCommentService_Rejections(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewCommentService(db, nil)

	_, err := svc.Submit(ctx, "nowhere", &models.CreateCommentRequest{Name: "A", Email: "a@example.com", Message: "m"})
	requireKind(t, err, utils.KindNotFound)

	_, err = svc.Submit(ctx, "nowhere", &models.CreateCommentRequest{Name: "A", Email: "", Message: "m"})
	requireKind(t, err, utils.KindValidation)

	requireKind(t, svc.SetStatus(ctx, uuid.NewString(), "APPROVED"), utils.KindNotFound)
	requireKind(t, svc.SetStatus(ctx, uuid.NewString(), "SPAM"), utils.KindValidation)

	empty, err := svc.ListApproved(ctx, "nowhere")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestContactService(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	notifier := &fakeNotifier{}
	svc := NewContactService(db, notifier)

	_, err := svc.Submit(ctx, &models.CreateContactRequest{FirstName: "Ana"}, models.RequestMeta{})
	requireKind(t, err, utils.KindValidation)

	contact, err := svc.Submit(ctx, &models.CreateContactRequest{
		FirstName: "Ana",
		LastName:  "Lima",
		Email:     " ANA@example.com ",
		Subject:   "Collaboration",
		Message:   "Hello there",
	}, models.RequestMeta{IP: "10.0.0.1", UserAgent: "test-agent"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", contact.Email)
	assert.Equal(t, models.ContactStatusNew, contact.Status)
	assert.Equal(t, "10.0.0.1", contact.IP)

	page, err := svc.List(ctx, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 50, page.Limit)
	require.Len(t, page.Items, 1)

	requireKind(t, svc.Delete(ctx, "bad"), utils.KindValidation)
	require.NoError(t, svc.Delete(ctx, contact.ID))
	requireKind(t, svc.Delete(ctx, contact.ID), utils.KindNotFound)
	assert.Equal(t, []string{models.EventContactSubmitted}, notifier.types())
}

func TestAboutService_Singleton(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewAboutService(db)

	about, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAbout().Title, about.Title)
	assert.Len(t, about.Paragraphs, 2)

	updated, err := svc.Update(ctx, &models.UpdateAboutRequest{
		Title:      strPtr("New Title"),
		Paragraphs: &[]string{"One", " ", "Two", "Three"},
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, []string{"One", "Two", "Three"}, []string(updated.Paragraphs))
	assert.Equal(t, models.DefaultAbout().Lead, updated.Lead)

	_, err = svc.Update(ctx, &models.UpdateAboutRequest{Title: strPtr("  ")})
	requireKind(t, err, utils.KindValidation)

	var count int64
	require.NoError(t, db.Model(&models.About{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	again, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New Title", again.Title)
}

func TestAboutService_UpdateBeforeFirstRead(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAboutService(db)

	about, err := svc.Update(context.Background(), &models.UpdateAboutRequest{EditorName: strPtr("Jun")})
	require.NoError(t, err)
	assert.Equal(t, "Jun", about.EditorName)
	assert.Equal(t, models.DefaultAbout().Title, about.Title)
}

package services

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PauloHFS/blogicum/internal/config"
	"github.com/PauloHFS/blogicum/internal/db"
	"github.com/PauloHFS/blogicum/internal/policies"
	"github.com/PauloHFS/blogicum/internal/validator"
)

var now = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	q      *db.Queries
	blog   *BlogService
	auth   *AuthService
	alice  policies.Requester
	bob    policies.Requester
	travel db.Category
	hidden db.Category
}

func setup(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := sql.Open("sqlite3", config.DSN(filepath.Join(t.TempDir(), "services.db")))
	require.NoError(t, err)
	t.Cleanup(func() { dbConn.Close() })
	require.NoError(t, db.RunMigrations(context.Background(), dbConn))

	q := db.New(dbConn)
	ctx := context.Background()

	alice, err := q.CreateUser(ctx, db.CreateUserParams{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)
	bob, err := q.CreateUser(ctx, db.CreateUserParams{Username: "bob", PasswordHash: "x"})
	require.NoError(t, err)
	travel, err := q.UpsertCategory(ctx, db.UpsertCategoryParams{Title: "Travel", Slug: "travel", IsPublished: true})
	require.NoError(t, err)
	hidden, err := q.UpsertCategory(ctx, db.UpsertCategoryParams{Title: "Hidden", Slug: "hidden", IsPublished: false})
	require.NoError(t, err)

	policy := policies.Policy{Now: func() time.Time { return now }}
	return &fixture{
		q:      q,
		blog:   NewBlogService(q, q, policy),
		auth:   NewAuthService(q, q),
		alice:  policies.Requester{UserID: alice.ID},
		bob:    policies.Requester{UserID: bob.ID},
		travel: travel,
		hidden: hidden,
	}
}

type postOpt func(*db.CreatePostParams)

func (f *fixture) post(t *testing.T, author policies.Requester, title string, opts ...postOpt) int64 {
	t.Helper()
	p := db.CreatePostParams{
		Title:       title,
		Text:        "text of " + title,
		PubDate:     now.Add(-time.Hour),
		AuthorID:    author.UserID,
		CategoryID:  f.travel.ID,
		IsPublished: true,
	}
	for _, o := range opts {
		o(&p)
	}
	id, err := f.q.CreatePost(context.Background(), p)
	require.NoError(t, err)
	return id
}

func draft(p *db.CreatePostParams)     { p.IsPublished = false }
func scheduled(p *db.CreatePostParams) { p.PubDate = now.Add(24 * time.Hour) }
func in(c db.Category) postOpt         { return func(p *db.CreatePostParams) { p.CategoryID = c.ID } }
func at(d time.Duration) postOpt       { return func(p *db.CreatePostParams) { p.PubDate = now.Add(d) } }

func titles(posts []db.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestHomeFeed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.post(t, f.alice, "public", at(-2*time.Hour))
	f.post(t, f.alice, "draft", draft)
	f.post(t, f.alice, "scheduled", scheduled)
	f.post(t, f.alice, "hidden category", in(f.hidden))
	f.post(t, f.bob, "bob public", at(-time.Hour))

	posts, err := f.blog.HomeFeed(ctx, policies.Anonymous)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob public", "public"}, titles(posts))

	posts, err = f.blog.HomeFeed(ctx, f.alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"scheduled", "bob public", "hidden category", "draft", "public"}, titles(posts))
}

func TestHomeFeedIsCapped(t *testing.T) {
	f := setup(t)
	for i := range HomeFeedSize + 5 {
		f.post(t, f.bob, fmt.Sprintf("post %02d", i), at(-time.Duration(i+1)*time.Minute))
	}

	posts, err := f.blog.HomeFeed(context.Background(), policies.Anonymous)
	require.NoError(t, err)
	require.Len(t, posts, HomeFeedSize)
	assert.Equal(t, "post 00", posts[0].Title)
}

func TestCategoryFeed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for i := range 12 {
		f.post(t, f.bob, fmt.Sprintf("travel %02d", i), at(-time.Duration(i+1)*time.Minute))
	}
	f.post(t, f.bob, "travel draft", draft)

	category, page, err := f.blog.CategoryFeed(ctx, policies.Anonymous, "travel", 2)
	require.NoError(t, err)
	assert.Equal(t, "Travel", category.Title)
	assert.Equal(t, 12, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages())
	assert.Equal(t, []string{"travel 10", "travel 11"}, titles(page.Items))

	_, _, err = f.blog.CategoryFeed(ctx, policies.Anonymous, "hidden", 1)
	assert.ErrorIs(t, err, policies.ErrNotFound)

	_, _, err = f.blog.CategoryFeed(ctx, policies.Anonymous, "missing", 1)
	assert.ErrorIs(t, err, policies.ErrNotFound)
}

func TestProfileFeed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.post(t, f.alice, "public", at(-2*time.Hour))
	f.post(t, f.alice, "draft", draft)
	f.post(t, f.alice, "hidden category", in(f.hidden))

	_, page, err := f.blog.ProfileFeed(ctx, f.bob, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"public"}, titles(page.Items))

	author, page, err := f.blog.ProfileFeed(ctx, f.alice, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", author.Username)
	assert.ElementsMatch(t, []string{"public", "draft", "hidden category"}, titles(page.Items))

	_, _, err = f.blog.ProfileFeed(ctx, f.alice, "nobody", 1)
	assert.ErrorIs(t, err, policies.ErrNotFound)
}

func TestPostDetail(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	public := f.post(t, f.alice, "public")
	future := f.post(t, f.alice, "tomorrow", scheduled)
	_, err := f.q.CreateComment(ctx, db.CreateCommentParams{Text: "nice", PostID: public, AuthorID: f.bob.UserID})
	require.NoError(t, err)

	post, comments, err := f.blog.PostDetail(ctx, f.bob, public)
	require.NoError(t, err)
	assert.Equal(t, "public", post.Title)
	require.Len(t, comments, 1)
	assert.Equal(t, "bob", comments[0].AuthorUsername)

	_, _, err = f.blog.PostDetail(ctx, f.alice, future)
	assert.NoError(t, err)

	_, _, err = f.blog.PostDetail(ctx, f.bob, future)
	assert.ErrorIs(t, err, policies.ErrNotFound)

	_, _, err = f.blog.PostDetail(ctx, f.bob, 9999)
	assert.ErrorIs(t, err, policies.ErrNotFound)
}

func validPost(title string) validator.PostInput {
	return validator.PostInput{Title: title, Text: "body", PubDate: "2024-09-30T10:00", IsPublished: true}
}

func TestCreatePost(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := validPost("new")
	in.CategoryID = f.travel.ID
	id, result, err := f.blog.CreatePost(ctx, f.alice, in)
	require.NoError(t, err)
	require.True(t, result.Valid)

	p, err := f.q.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, f.alice.UserID, p.AuthorID)
	assert.True(t, p.PubDate.Equal(time.Date(2024, 9, 30, 10, 0, 0, 0, time.UTC)))

	bad := validPost("bad")
	bad.CategoryID = 9999
	bad.LocationID = 9999
	_, result, err = f.blog.CreatePost(ctx, f.alice, bad)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.FieldError("category"))
	assert.NotEmpty(t, result.FieldError("location"))

	_, result, err = f.blog.CreatePost(ctx, f.alice, validator.PostInput{})
	require.NoError(t, err)
	assert.False(t, result.Valid)

	blank := validPost("   ")
	blank.Text = " \n\t "
	_, result, err = f.blog.CreatePost(ctx, f.alice, blank)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.FieldError("title"))
	assert.NotEmpty(t, result.FieldError("text"))

	padded := validPost("  padded  ")
	padded.Text = "  body\n"
	padded.PubDate = " 2024-09-30T10:00 "
	id, result, err = f.blog.CreatePost(ctx, f.alice, padded)
	require.NoError(t, err)
	require.True(t, result.Valid, result.Message())
	p, err = f.q.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "padded", p.Title)
	assert.Equal(t, "body", p.Text)
}

func TestUpdatePost(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	public := f.post(t, f.alice, "public")
	hidden := f.post(t, f.alice, "hidden", draft)

	t.Run("AuthorUpdates", func(t *testing.T) {
		decision, result, err := f.blog.UpdatePost(ctx, f.alice, public, validPost("renamed"))
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.True(t, result.Valid)

		p, err := f.q.GetPost(ctx, public)
		require.NoError(t, err)
		assert.Equal(t, "renamed", p.Title)
		assert.False(t, p.CategoryID.Valid)
	})

	t.Run("NonAuthorRedirected", func(t *testing.T) {
		decision, _, err := f.blog.UpdatePost(ctx, f.bob, public, validPost("hijack"))
		require.NoError(t, err)
		assert.True(t, decision.Denied())
		assert.Equal(t, fmt.Sprintf("/posts/%d/", public), decision.RedirectTo)

		p, err := f.q.GetPost(ctx, public)
		require.NoError(t, err)
		assert.Equal(t, "renamed", p.Title)
	})

	t.Run("HiddenPostOfOtherAuthorIsNotFound", func(t *testing.T) {
		_, _, err := f.blog.UpdatePost(ctx, f.bob, hidden, validPost("hijack"))
		assert.ErrorIs(t, err, policies.ErrNotFound)
	})

	t.Run("InvalidFormKeepsPost", func(t *testing.T) {
		decision, result, err := f.blog.UpdatePost(ctx, f.alice, public, validator.PostInput{Title: "x"})
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.False(t, result.Valid)
	})
}

func TestDeletePost(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	id := f.post(t, f.alice, "doomed")

	decision, err := f.blog.DeletePost(ctx, f.bob, id)
	require.NoError(t, err)
	assert.True(t, decision.Denied())

	decision, err = f.blog.DeletePost(ctx, f.alice, id)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	_, err = f.q.GetPost(ctx, id)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestComments(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	public := f.post(t, f.alice, "public")
	hidden := f.post(t, f.alice, "hidden", draft)

	result, err := f.blog.AddComment(ctx, f.bob, public, validator.CommentInput{Text: "first"})
	require.NoError(t, err)
	require.True(t, result.Valid)

	result, err = f.blog.AddComment(ctx, f.bob, public, validator.CommentInput{Text: ""})
	require.NoError(t, err)
	assert.False(t, result.Valid)

	result, err = f.blog.AddComment(ctx, f.bob, public, validator.CommentInput{Text: "  \n "})
	require.NoError(t, err)
	assert.False(t, result.Valid)

	_, err = f.blog.AddComment(ctx, f.bob, hidden, validator.CommentInput{Text: "sneaky"})
	assert.ErrorIs(t, err, policies.ErrNotFound)

	comments, err := f.q.ListCommentsByPost(ctx, public)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	commentID := comments[0].ID

	t.Run("PostAuthorCannotEditOthersComment", func(t *testing.T) {
		decision, _, err := f.blog.UpdateComment(ctx, f.alice, public, commentID, validator.CommentInput{Text: "censored"})
		require.NoError(t, err)
		assert.True(t, decision.Denied())
		assert.Equal(t, fmt.Sprintf("/posts/%d/", public), decision.RedirectTo)
	})

	t.Run("CommentAuthorEdits", func(t *testing.T) {
		decision, result, err := f.blog.UpdateComment(ctx, f.bob, public, commentID, validator.CommentInput{Text: "edited"})
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.True(t, result.Valid)

		c, err := f.q.GetComment(ctx, public, commentID)
		require.NoError(t, err)
		assert.Equal(t, "edited", c.Text)

		_, result, err = f.blog.UpdateComment(ctx, f.bob, public, commentID, validator.CommentInput{Text: "   "})
		require.NoError(t, err)
		assert.False(t, result.Valid)
	})

	t.Run("WrongPostIsNotFound", func(t *testing.T) {
		_, err := f.blog.DeleteComment(ctx, f.bob, hidden, commentID)
		assert.ErrorIs(t, err, policies.ErrNotFound)
	})

	t.Run("CommentAuthorDeletes", func(t *testing.T) {
		decision, err := f.blog.DeleteComment(ctx, f.bob, public, commentID)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)

		_, err = f.q.GetComment(ctx, public, commentID)
		assert.ErrorIs(t, err, db.ErrNotFound)
	})
}

func TestCommentMutationIgnoresPostVisibility(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	id := f.post(t, f.alice, "soon hidden")
	commentID, err := f.q.CreateComment(ctx, db.CreateCommentParams{Text: "mine", PostID: id, AuthorID: f.bob.UserID})
	require.NoError(t, err)

	require.NoError(t, f.q.UpdatePost(ctx, db.UpdatePostParams{ID: id, Title: "soon hidden", Text: "t", PubDate: now, IsPublished: false}))

	decision, err := f.blog.DeleteComment(ctx, f.bob, id, commentID)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/PauloHFS/blogicum/internal/db"
	"github.com/PauloHFS/blogicum/internal/logging"
	"github.com/PauloHFS/blogicum/internal/metrics"
	"github.com/PauloHFS/blogicum/internal/policies"
	"github.com/PauloHFS/blogicum/internal/telemetry"
	"github.com/PauloHFS/blogicum/internal/validator"
)

const (
	// HomeFeedSize limita a página inicial; ela não tem paginação.
	HomeFeedSize = 10
	PostsPerPage = 10
)

// BlogService junta o armazenamento e a política de visibilidade. Toda
// leitura e escrita de posts e comentários passa por aqui.
type BlogService struct {
	reader *db.Queries
	writer *db.Queries
	policy policies.Policy
}

func NewBlogService(reader, writer *db.Queries, policy policies.Policy) *BlogService {
	return &BlogService{reader: reader, writer: writer, policy: policy}
}

func (s *BlogService) Policy() policies.Policy {
	return s.policy
}

func (s *BlogService) startSpan(ctx context.Context, name string, requester policies.Requester) (context.Context, trace.Span) {
	return telemetry.Tracer().Start(ctx, "blog."+name,
		trace.WithAttributes(attribute.Int64("requester.id", requester.UserID)))
}

func record(ctx context.Context, operation, outcome string) {
	metrics.PolicyDecisions.WithLabelValues(operation, outcome).Inc()
	logging.AddToEvent(ctx, slog.String("policy_"+operation, outcome))
}

func (s *BlogService) HomeFeed(ctx context.Context, requester policies.Requester) ([]db.Post, error) {
	ctx, span := s.startSpan(ctx, "HomeFeed", requester)
	defer span.End()

	candidates, err := s.reader.ListPosts(ctx, db.ListPostsParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	visible := s.policy.FilterVisible(candidates, requester, policies.PublicFeed)
	if len(visible) > HomeFeedSize {
		visible = visible[:HomeFeedSize]
	}
	return visible, nil
}

func (s *BlogService) CategoryFeed(ctx context.Context, requester policies.Requester, slug string, page int) (db.Category, db.PagedResult[db.Post], error) {
	ctx, span := s.startSpan(ctx, "CategoryFeed", requester)
	defer span.End()

	category, err := s.reader.GetCategoryBySlug(ctx, slug)
	if errors.Is(err, db.ErrNotFound) || (err == nil && !category.IsPublished) {
		record(ctx, "category", "not_found")
		return db.Category{}, db.PagedResult[db.Post]{}, policies.ErrNotFound
	}
	if err != nil {
		return db.Category{}, db.PagedResult[db.Post]{}, fmt.Errorf("failed to get category: %w", err)
	}

	candidates, err := s.reader.ListPosts(ctx, db.ListPostsParams{CategoryID: category.ID})
	if err != nil {
		return db.Category{}, db.PagedResult[db.Post]{}, fmt.Errorf("failed to list category posts: %w", err)
	}

	visible := s.policy.FilterVisible(candidates, requester, policies.PublicFeed)
	return category, db.Paginate(visible, db.PagingParams{Page: page, PerPage: PostsPerPage}), nil
}

// ProfileFeed mostra os posts do autor. O próprio dono recebe o feed
// completo, com rascunhos e agendados.
func (s *BlogService) ProfileFeed(ctx context.Context, requester policies.Requester, username string, page int) (db.User, db.PagedResult[db.Post], error) {
	ctx, span := s.startSpan(ctx, "ProfileFeed", requester)
	defer span.End()

	author, err := s.reader.GetUserByUsername(ctx, username)
	if errors.Is(err, db.ErrNotFound) {
		return db.User{}, db.PagedResult[db.Post]{}, policies.ErrNotFound
	}
	if err != nil {
		return db.User{}, db.PagedResult[db.Post]{}, fmt.Errorf("failed to get profile: %w", err)
	}

	candidates, err := s.reader.ListPosts(ctx, db.ListPostsParams{AuthorID: author.ID})
	if err != nil {
		return db.User{}, db.PagedResult[db.Post]{}, fmt.Errorf("failed to list profile posts: %w", err)
	}

	mode := policies.PublicFeed
	if requester.UserID == author.ID {
		mode = policies.OwnerFeed
	}
	span.SetAttributes(attribute.Bool("profile.owner_view", mode == policies.OwnerFeed))

	visible := s.policy.FilterVisible(candidates, requester, mode)
	return author, db.Paginate(visible, db.PagingParams{Page: page, PerPage: PostsPerPage}), nil
}

func (s *BlogService) resolvePost(ctx context.Context, requester policies.Requester, postID int64) (db.Post, error) {
	post, err := s.policy.ResolveOwnPostOrPublic(ctx, s.reader, requester, postID)
	if errors.Is(err, policies.ErrNotFound) {
		record(ctx, "resolve_post", "not_found")
		return db.Post{}, err
	}
	if err != nil {
		return db.Post{}, fmt.Errorf("failed to resolve post %d: %w", postID, err)
	}
	record(ctx, "resolve_post", "allowed")
	return post, nil
}

func (s *BlogService) authorize(ctx context.Context, requester policies.Requester, resource policies.Resource) policies.Decision {
	d := s.policy.AuthorizeMutation(requester, resource)
	if d.Allowed {
		record(ctx, "mutation", "allowed")
	} else {
		record(ctx, "mutation", "denied")
	}
	return d
}

func (s *BlogService) PostDetail(ctx context.Context, requester policies.Requester, postID int64) (db.Post, []db.Comment, error) {
	ctx, span := s.startSpan(ctx, "PostDetail", requester)
	defer span.End()

	post, err := s.resolvePost(ctx, requester, postID)
	if err != nil {
		return db.Post{}, nil, err
	}

	comments, err := s.reader.ListCommentsByPost(ctx, post.ID)
	if err != nil {
		return db.Post{}, nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return post, comments, nil
}

// FormChoices carrega categorias e locais para os selects do formulário.
func (s *BlogService) FormChoices(ctx context.Context) ([]db.Category, []db.Location, error) {
	categories, err := s.reader.ListCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	locations, err := s.reader.ListLocations(ctx)
	if err != nil {
		return nil, nil, err
	}
	return categories, locations, nil
}

func trimPost(in validator.PostInput) validator.PostInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Text = strings.TrimSpace(in.Text)
	in.PubDate = strings.TrimSpace(in.PubDate)
	return in
}

// checkPost valida o formulário já aparado e confere se categoria e local existem.
func (s *BlogService) checkPost(ctx context.Context, in validator.PostInput) (validator.ValidationResult, error) {
	result := validator.Validate(in)

	if in.CategoryID > 0 {
		if _, err := s.reader.GetCategoryByID(ctx, in.CategoryID); errors.Is(err, db.ErrNotFound) {
			result.Valid = false
			result.Errors = append(result.Errors, validator.ValidationError{Field: "category", Message: "Выберите корректный вариант."})
		} else if err != nil {
			return result, err
		}
	}
	if in.LocationID > 0 {
		if _, err := s.reader.GetLocationByID(ctx, in.LocationID); errors.Is(err, db.ErrNotFound) {
			result.Valid = false
			result.Errors = append(result.Errors, validator.ValidationError{Field: "location", Message: "Выберите корректный вариант."})
		} else if err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *BlogService) CreatePost(ctx context.Context, requester policies.Requester, in validator.PostInput) (int64, validator.ValidationResult, error) {
	ctx, span := s.startSpan(ctx, "CreatePost", requester)
	defer span.End()

	in = trimPost(in)
	result, err := s.checkPost(ctx, in)
	if err != nil || !result.Valid {
		return 0, result, err
	}
	pubDate, _ := validator.ParsePubDate(in.PubDate)

	id, err := s.writer.CreatePost(ctx, db.CreatePostParams{
		Title:       in.Title,
		Text:        in.Text,
		PubDate:     pubDate,
		AuthorID:    requester.UserID,
		LocationID:  in.LocationID,
		CategoryID:  in.CategoryID,
		IsPublished: in.IsPublished,
	})
	if err != nil {
		return 0, result, fmt.Errorf("failed to create post: %w", err)
	}
	span.SetAttributes(attribute.Int64("post.id", id))
	return id, result, nil
}

// PostForMutation resolve o post como na página de detalhe e só então
// verifica a autoria. Post oculto de outro autor vira ErrNotFound, não redirect.
func (s *BlogService) PostForMutation(ctx context.Context, requester policies.Requester, postID int64) (db.Post, policies.Decision, error) {
	post, err := s.resolvePost(ctx, requester, postID)
	if err != nil {
		return db.Post{}, policies.Decision{}, err
	}
	return post, s.authorize(ctx, requester, post), nil
}

func (s *BlogService) UpdatePost(ctx context.Context, requester policies.Requester, postID int64, in validator.PostInput) (policies.Decision, validator.ValidationResult, error) {
	ctx, span := s.startSpan(ctx, "UpdatePost", requester)
	defer span.End()

	_, decision, err := s.PostForMutation(ctx, requester, postID)
	if err != nil || decision.Denied() {
		return decision, validator.ValidationResult{Valid: true}, err
	}

	in = trimPost(in)
	result, err := s.checkPost(ctx, in)
	if err != nil || !result.Valid {
		return decision, result, err
	}
	pubDate, _ := validator.ParsePubDate(in.PubDate)

	if err := s.writer.UpdatePost(ctx, db.UpdatePostParams{
		ID:          postID,
		Title:       in.Title,
		Text:        in.Text,
		PubDate:     pubDate,
		LocationID:  in.LocationID,
		CategoryID:  in.CategoryID,
		IsPublished: in.IsPublished,
	}); err != nil {
		return decision, result, fmt.Errorf("failed to update post: %w", err)
	}
	return decision, result, nil
}

func (s *BlogService) DeletePost(ctx context.Context, requester policies.Requester, postID int64) (policies.Decision, error) {
	ctx, span := s.startSpan(ctx, "DeletePost", requester)
	defer span.End()

	_, decision, err := s.PostForMutation(ctx, requester, postID)
	if err != nil || decision.Denied() {
		return decision, err
	}
	if err := s.writer.DeletePost(ctx, postID); err != nil {
		return decision, fmt.Errorf("failed to delete post: %w", err)
	}
	return decision, nil
}

// AddComment exige que o post seja visível para quem comenta.
func (s *BlogService) AddComment(ctx context.Context, requester policies.Requester, postID int64, in validator.CommentInput) (validator.ValidationResult, error) {
	ctx, span := s.startSpan(ctx, "AddComment", requester)
	defer span.End()

	post, err := s.resolvePost(ctx, requester, postID)
	if err != nil {
		return validator.ValidationResult{Valid: true}, err
	}

	in.Text = strings.TrimSpace(in.Text)
	result := validator.Validate(in)
	if !result.Valid {
		return result, nil
	}

	if _, err := s.writer.CreateComment(ctx, db.CreateCommentParams{
		Text:     in.Text,
		PostID:   post.ID,
		AuthorID: requester.UserID,
	}); err != nil {
		return result, fmt.Errorf("failed to create comment: %w", err)
	}
	return result, nil
}

// CommentForMutation não consulta a visibilidade do post: só a autoria do
// comentário decide.
func (s *BlogService) CommentForMutation(ctx context.Context, requester policies.Requester, postID, commentID int64) (db.Comment, policies.Decision, error) {
	comment, err := s.reader.GetComment(ctx, postID, commentID)
	if errors.Is(err, db.ErrNotFound) {
		record(ctx, "resolve_comment", "not_found")
		return db.Comment{}, policies.Decision{}, policies.ErrNotFound
	}
	if err != nil {
		return db.Comment{}, policies.Decision{}, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, s.authorize(ctx, requester, comment), nil
}

func (s *BlogService) UpdateComment(ctx context.Context, requester policies.Requester, postID, commentID int64, in validator.CommentInput) (policies.Decision, validator.ValidationResult, error) {
	ctx, span := s.startSpan(ctx, "UpdateComment", requester)
	defer span.End()

	_, decision, err := s.CommentForMutation(ctx, requester, postID, commentID)
	if err != nil || decision.Denied() {
		return decision, validator.ValidationResult{Valid: true}, err
	}

	in.Text = strings.TrimSpace(in.Text)
	result := validator.Validate(in)
	if !result.Valid {
		return decision, result, nil
	}
	if err := s.writer.UpdateComment(ctx, commentID, in.Text); err != nil {
		return decision, result, fmt.Errorf("failed to update comment: %w", err)
	}
	return decision, result, nil
}

func (s *BlogService) DeleteComment(ctx context.Context, requester policies.Requester, postID, commentID int64) (policies.Decision, error) {
	ctx, span := s.startSpan(ctx, "DeleteComment", requester)
	defer span.End()

	_, decision, err := s.CommentForMutation(ctx, requester, postID, commentID)
	if err != nil || decision.Denied() {
		return decision, err
	}
	if err := s.writer.DeleteComment(ctx, commentID); err != nil {
		return decision, fmt.Errorf("failed to delete comment: %w", err)
	}
	return decision, nil
}

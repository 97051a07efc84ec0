package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/unlinked-app/backend/internal/models"
	"github.com/unlinked-app/backend/internal/repositories"
	"github.com/unlinked-app/backend/pkg/cloudinary"
	"github.com/unlinked-app/backend/pkg/mailer"
)

// PostHandler handles post, comment and like HTTP requests
type PostHandler struct {
	postRepository         repositories.PostRepository
	userRepository         repositories.UserRepository
	connectionRepository   repositories.ConnectionRepository
	commentRepository      repositories.CommentRepository
	likeRepository         repositories.LikeRepository
	notificationRepository repositories.NotificationRepository
	uploader               cloudinary.Uploader
	mail                   mailer.Mailer
	clientURL              string
}

// NewPostHandler creates a new PostHandler. uploader and mail may be nil.
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, connectionRepo repositories.ConnectionRepository, commentRepo repositories.CommentRepository, likeRepo repositories.LikeRepository, notificationRepo repositories.NotificationRepository, uploader cloudinary.Uploader, mail mailer.Mailer, clientURL string) *PostHandler {
	return &PostHandler{
		postRepository:         postRepo,
		userRepository:         userRepo,
		connectionRepository:   connectionRepo,
		commentRepository:      commentRepo,
		likeRepository:         likeRepo,
		notificationRepository: notificationRepo,
		uploader:               uploader,
		mail:                   mail,
		clientURL:              clientURL,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/post", h.GetFeedPosts)
	g.POST("/post/create", h.CreatePost)
	g.DELETE("/post/delete/:id", h.DeletePost)
	g.GET("/post/:id", h.GetPostByID)
	g.POST("/post/:id/comment", h.CreateComment)
	g.GET("/post/:id/comments", h.GetComments)
	g.POST("/post/:id/like", h.LikePost)
}

// GetFeedPosts returns posts authored by the caller's connections and the
// caller, newest first
func (h *PostHandler) GetFeedPosts(c echo.Context) error {
	user := currentUser(c)

	connections, err := h.connectionRepository.GetConnections(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	authorIDs := make([]uint, 0, len(connections)+1)
	authorIDs = append(authorIDs, user.ID)
	for i := range connections {
		authorIDs = append(authorIDs, connections[i].ID)
	}

	posts, err := h.postRepository.GetPostsByAuthorIDs(c.Request().Context(), authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	enriched := make([]models.EnrichedPost, 0, len(posts))
	authorCache := make(map[uint]models.PublicProfile)
	for _, post := range posts {
		e := models.EnrichedPost{Post: post}
		if author, ok := authorCache[post.AuthorID]; ok {
			e.Author = author
		} else if u, err := h.userRepository.GetUserByID(post.AuthorID); err == nil {
			e.Author = u.ToPublic()
			authorCache[post.AuthorID] = e.Author
		}
		enriched = append(enriched, e)
	}
	return c.JSON(http.StatusOK, enriched)
}

// CreatePost creates a post, uploading the image payload to the image host
// when present. Upload failures are not recovered.
func (h *PostHandler) CreatePost(c echo.Context) error {
	user := currentUser(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		AuthorID: user.ID,
		Content:  req.Content,
	}

	if req.Image != "" {
		if h.uploader == nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Image hosting is not configured")
		}
		url, err := h.uploader.Upload(c.Request().Context(), req.Image)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
		post.Image = url
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, post)
}

// GetPostByID returns a post with its author and comments
func (h *PostHandler) GetPostByID(c echo.Context) error {
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found!")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	enriched := models.EnrichedPost{Post: *post}
	if author, err := h.userRepository.GetUserByID(post.AuthorID); err == nil {
		enriched.Author = author.ToPublic()
	}

	comments, err := h.enrichedComments(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	enriched.Comments = comments

	return c.JSON(http.StatusOK, enriched)
}

// DeletePost deletes a post owned by the caller along with its image,
// comments and likes
func (h *PostHandler) DeletePost(c echo.Context) error {
	user := currentUser(c)
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found!")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	if post.AuthorID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post!")
	}

	if post.Image != "" && h.uploader != nil {
		publicID := cloudinary.PublicIDFromURL(post.Image)
		if publicID != "" {
			if err := h.uploader.Destroy(c.Request().Context(), publicID); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
			}
		}
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if err := h.commentRepository.DeleteCommentsByPostID(postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if err := h.likeRepository.DeleteLikesByPostID(postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

// CreateComment comments on a post and notifies the author when the
// commenter is someone else. The email is best-effort.
func (h *PostHandler) CreateComment(c echo.Context) error {
	user := currentUser(c)
	postID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found!")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  user.ID,
		Content: req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	if post.AuthorID != user.ID {
		notification := &models.Notification{
			RecipientID:   post.AuthorID,
			Type:          models.NotificationComment,
			RelatedUserID: &user.ID,
			RelatedPostID: &postID,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}

		if h.mail != nil {
			if author, err := h.userRepository.GetUserByID(post.AuthorID); err == nil {
				postURL := h.clientURL + "/post/" + postID
				go func(email, recipientName, commenterName, postURL, content string) {
					ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
					defer cancel()
					if err := h.mail.SendCommentNotificationEmail(ctx, email, recipientName, commenterName, postURL, content); err != nil {
						logrus.WithError(err).Error("Error in sending comment notification email")
					}
				}(author.Email, author.Name, user.Name, postURL, req.Content)
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Comment added successfully", "comment": comment})
}

// GetComments lists the comments on a post
func (h *PostHandler) GetComments(c echo.Context) error {
	postID := c.Param("id")

	comments, err := h.enrichedComments(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, comments)
}

// LikePost toggles the caller's like on a post, notifying the author on the
// like direction only
func (h *PostHandler) LikePost(c echo.Context) error {
	user := currentUser(c)
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found!")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	liked, err := h.likeRepository.ToggleLike(postID, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	if liked && post.AuthorID != user.ID {
		notification := &models.Notification{
			RecipientID:   post.AuthorID,
			Type:          models.NotificationLike,
			RelatedUserID: &user.ID,
			RelatedPostID: &postID,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}

func (h *PostHandler) enrichedComments(postID string) ([]models.EnrichedComment, error) {
	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return nil, err
	}

	enriched := make([]models.EnrichedComment, 0, len(comments))
	userCache := make(map[uint]models.PublicProfile)
	for _, comment := range comments {
		e := models.EnrichedComment{Comment: comment}
		if u, ok := userCache[comment.UserID]; ok {
			e.User = u
		} else if user, err := h.userRepository.GetUserByID(comment.UserID); err == nil {
			e.User = user.ToPublic()
			userCache[comment.UserID] = e.User
		}
		enriched = append(enriched, e)
	}
	return enriched, nil
}

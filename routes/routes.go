package routes

import (
	"net/http"
	"time"

	"editorial/controllers"
	"editorial/handlers"
	"editorial/middleware"
	"editorial/utils"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth       *controllers.AuthController
	Post       *controllers.PostController
	PublicPost *controllers.PublicPostController
	GuestPost  *controllers.GuestPostController
	Comment    *controllers.CommentController
	Contact    *controllers.ContactController
	About      *controllers.AboutController
	Upload     *controllers.UploadController
	Page       *controllers.PageController
	WebSocket  *handlers.WebSocketHandler
}

// Limits are the per-IP limiters for login and public submissions.
type Limits struct {
	Login     *middleware.Limiter
	GuestPost *middleware.Limiter
	Comment   *middleware.Limiter
	Contact   *middleware.Limiter
}

func DefaultLimits() Limits {
	return Limits{
		Login:     middleware.NewLimiter(5, 15*time.Minute),
		GuestPost: middleware.NewLimiter(10, time.Hour),
		Comment:   middleware.NewLimiter(20, time.Hour),
		Contact:   middleware.NewLimiter(10, time.Hour),
	}
}

// Stop ends the background sweep of every limiter.
func (l Limits) Stop() {
	for _, limiter := range []*middleware.Limiter{l.Login, l.GuestPost, l.Comment, l.Contact} {
		if limiter != nil {
			limiter.Stop()
		}
	}
}

func SetupRoutes(r *gin.Engine, ctrl Controllers, limits Limits) {
	utils.RegisterJSONTagNames()
	adminRequired := middleware.AdminRequired(ctrl.Auth.AuthService())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/admin/login", middleware.LimitFailures(limits.Login), ctrl.Auth.Login)
		api.POST("/admin/logout", ctrl.Auth.Logout)

		admin := api.Group("/admin")
		admin.Use(adminRequired)
		{
			admin.GET("/me", ctrl.Auth.Me)
			admin.GET("/stats", ctrl.Post.GetStats)

			admin.GET("/posts", ctrl.Post.GetPosts)
			admin.POST("/posts", ctrl.Post.CreatePost)
			admin.GET("/posts/:id", ctrl.Post.GetPost)
			admin.PATCH("/posts/:id", ctrl.Post.UpdatePost)
			admin.DELETE("/posts/:id", ctrl.Post.DeletePost)

			admin.GET("/guest-posts", ctrl.GuestPost.GetGuestPosts)
			admin.PATCH("/guest-posts/:id", ctrl.GuestPost.UpdateGuestPostStatus)
			admin.DELETE("/guest-posts/:id", ctrl.GuestPost.DeleteGuestPost)

			admin.GET("/comments", ctrl.Comment.GetAllComments)
			admin.PATCH("/comments/:id", ctrl.Comment.UpdateCommentStatus)
			admin.DELETE("/comments/:id", ctrl.Comment.DeleteComment)

			admin.GET("/contacts", ctrl.Contact.GetContacts)
			admin.DELETE("/contacts/:id", ctrl.Contact.DeleteContact)

			admin.GET("/about", ctrl.About.GetAbout)
			admin.PUT("/about", ctrl.About.UpdateAbout)

			admin.POST("/upload", ctrl.Upload.Upload)
			admin.GET("/ws", ctrl.WebSocket.HandleWebSocket)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", ctrl.PublicPost.ListPosts)
			posts.POST("", ctrl.PublicPost.ListPosts)
			posts.GET("/:slug", ctrl.PublicPost.GetPost)
			posts.GET("/:slug/comments", ctrl.Comment.GetComments)
			posts.POST("/:slug/comments", middleware.LimitRequests(limits.Comment), ctrl.Comment.SubmitComment)
		}

		api.POST("/guest-post", middleware.LimitRequests(limits.GuestPost), ctrl.GuestPost.SubmitGuestPost)
		api.GET("/about", ctrl.About.GetAbout)

		api.POST("/contact", middleware.LimitRequests(limits.Contact), ctrl.Contact.SubmitContact)
		api.GET("/contact", adminRequired, ctrl.Contact.GetContacts)
		api.DELETE("/contact/:id", adminRequired, ctrl.Contact.DeleteContact)
	}

	pages := r.Group("/admin")
	pages.Use(middleware.AdminPages())
	{
		pages.GET("", ctrl.Page.ServeAdmin)
		pages.GET("/*path", ctrl.Page.ServeAdmin)
	}
}

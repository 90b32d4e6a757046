package controllers

import (
	"net/http"

	"editorial/models"
	"editorial/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PublicPostController struct {
	postService *services.PostService
}

func NewPublicPostController(db *gorm.DB) *PublicPostController {
	return &PublicPostController{
		postService: services.NewPostService(db),
	}
}

// ListPosts godoc
// @Summary Published posts
// @Description home=1 returns {featured, latest}; otherwise a paginated archive.
// @Tags posts
// @Produce json
// @Param home query string false "1 for the home feed"
// @Param q query string false "Search text"
// @Param category query string false "Category, All for every category"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} models.ArchivePage
// @Router /posts [get]
// @Router /posts [post]
func (pc *PublicPostController) ListPosts(c *gin.Context) {
	query := models.PublicPostQuery{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Page:     parsePositiveInt(c.Query("page"), 1),
		Limit:    parsePositiveInt(c.Query("limit"), 9),
	}

	if c.Query("home") == "1" {
		feed, err := pc.postService.Home(c.Request.Context(), query)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, feed)
		return
	}

	page, err := pc.postService.Archive(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPost godoc
// @Summary A published post by slug or id
// @Tags posts
// @Produce json
// @Param slug path string true "Slug or id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /posts/{slug} [get]
func (pc *PublicPostController) GetPost(c *gin.Context) {
	post, err := pc.postService.GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

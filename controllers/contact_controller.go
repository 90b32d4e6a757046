package controllers

import (
	"net/http"

	"editorial/models"
	"editorial/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContactController struct {
	contactService *services.ContactService
}

func NewContactController(db *gorm.DB, notifier services.Notifier) *ContactController {
	return &ContactController{
		contactService: services.NewContactService(db, notifier),
	}
}

// SubmitContact godoc
// @Summary Send a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param body body models.CreateContactRequest true "Message"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /contact [post]
func (cc *ContactController) SubmitContact(c *gin.Context) {
	var req models.CreateContactRequest
	if !bindLooseJSON(c, &req) {
		return
	}

	contact, err := cc.contactService.Submit(c.Request.Context(), &req, requestMeta(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": contact.ID})
}

// GetContacts godoc
// @Summary Contact inbox
// @Tags contact
// @Security CookieAuth
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size, max 50"
// @Success 200 {object} services.ContactPage
// @Router /admin/contacts [get]
// @Router /contact [get]
func (cc *ContactController) GetContacts(c *gin.Context) {
	page, err := cc.contactService.List(c.Request.Context(),
		parsePositiveInt(c.Query("page"), 1),
		parsePositiveInt(c.Query("limit"), 20),
	)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// DeleteContact godoc
// @Summary Delete a contact message
// @Tags contact
// @Security CookieAuth
// @Produce json
// @Param id path string true "Message id"
// @Success 200 {object} map[string]bool
// @Router /admin/contacts/{id} [delete]
// @Router /contact/{id} [delete]
func (cc *ContactController) DeleteContact(c *gin.Context) {
	if err := cc.contactService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// requestMeta reads forwarding headers only through gin's trusted proxies.
func requestMeta(c *gin.Context) models.RequestMeta {
	return models.RequestMeta{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookhive/middleware"
	"bookhive/models"
	"bookhive/utils"
)

func (hb *HandlerBundle) CreateTemplateHandler(c *gin.Context) {
	var req models.TemplateCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	tpl, err := hb.Templates.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (hb *HandlerBundle) UpdateTemplateHandler(c *gin.Context) {
	var req models.TemplateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	tpl, err := hb.Templates.Update(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("templateID"), req)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (hb *HandlerBundle) DeleteTemplateHandler(c *gin.Context) {
	if err := hb.Templates.Delete(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("templateID")); err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (hb *HandlerBundle) GetTemplateHandler(c *gin.Context) {
	tpl, err := hb.Templates.Get(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("templateID"))
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (hb *HandlerBundle) ListTemplatesHandler(c *gin.Context) {
	templates, err := hb.Templates.List(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (hb *HandlerBundle) GetDefaultTemplateHandler(c *gin.Context) {
	tpl, err := hb.Templates.GetDefault(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// PreviewTemplateHandler runs the slot generator without persisting.
func (hb *HandlerBundle) PreviewTemplateHandler(c *gin.Context) {
	var req models.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	defs, err := hb.Templates.Preview(req)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": defs, "count": len(defs)})
}

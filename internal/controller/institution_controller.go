package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/service"
)

type InstitutionController struct {
	institutionService service.InstitutionService
}

func NewInstitutionController(institutionService service.InstitutionService) *InstitutionController {
	return &InstitutionController{institutionService: institutionService}
}

func (ic *InstitutionController) Create(c *gin.Context) {
	var req service.InstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("MISSING_FIELDS", "invalid institution payload"))
		return
	}
	institution, err := ic.institutionService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "institution created", institution)
}

func (ic *InstitutionController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	institution, err := ic.institutionService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "institution fetched", institution)
}

func (ic *InstitutionController) List(c *gin.Context) {
	page, limit, offset := pagination(c)
	institutions, total, err := ic.institutionService.List(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "institutions fetched", institutions, page, limit, total)
}

func (ic *InstitutionController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.InstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("MISSING_FIELDS", "invalid institution payload"))
		return
	}
	institution, err := ic.institutionService.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "institution updated", institution)
}

func (ic *InstitutionController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ic.institutionService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "institution deleted", nil)
}

package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/service"
)

type StreamController struct {
	streamService service.StreamService
}

func NewStreamController(streamService service.StreamService) *StreamController {
	return &StreamController{streamService: streamService}
}

func (sc *StreamController) Create(c *gin.Context) {
	var req service.StreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("MISSING_FIELDS", "invalid stream payload"))
		return
	}
	stream, err := sc.streamService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "stream created", stream)
}

func (sc *StreamController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	stream, err := sc.streamService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "stream fetched", stream)
}

func (sc *StreamController) List(c *gin.Context) {
	page, limit, offset := pagination(c)
	streams, total, err := sc.streamService.List(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "streams fetched", streams, page, limit, total)
}

func (sc *StreamController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.StreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("MISSING_FIELDS", "invalid stream payload"))
		return
	}
	stream, err := sc.streamService.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "stream updated", stream)
}

func (sc *StreamController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := sc.streamService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "stream deleted", nil)
}

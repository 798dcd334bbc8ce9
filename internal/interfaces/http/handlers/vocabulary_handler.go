package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/molgraph/internal/application/conversion"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// VocabularyHandler exposes the registered vocabularies read-only.
type VocabularyHandler struct {
	svc conversion.Service
}

// NewVocabularyHandler returns a VocabularyHandler.
func NewVocabularyHandler(svc conversion.Service) *VocabularyHandler {
	return &VocabularyHandler{svc: svc}
}

// RegisterRoutes mounts the vocabulary endpoints on r.
func (h *VocabularyHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/vocabularies", wrapHandler(h.List))
	r.GET("/vocabularies/:name", wrapHandler(h.Get))
}

// List handles GET /vocabularies.  Vocabularies are ordered by name.
func (h *VocabularyHandler) List(c *gin.Context) (interface{}, error) {
	names := h.svc.Datasets()
	out := make([]mtypes.VocabularyDTO, 0, len(names))
	for _, name := range names {
		v, err := h.svc.Vocabulary(name)
		if err != nil {
			return nil, err
		}
		out = append(out, v.ToDTO())
	}
	return out, nil
}

// Get handles GET /vocabularies/:name.
func (h *VocabularyHandler) Get(c *gin.Context) (interface{}, error) {
	v, err := h.svc.Vocabulary(c.Param("name"))
	if err != nil {
		return nil, err
	}
	return v.ToDTO(), nil
}

//Personal.AI order the ending

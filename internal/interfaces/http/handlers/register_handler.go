package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/molgraph/internal/application/registers"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// MatchRequest is the body of POST /registers/match.  Compiled entries must
// carry an ID.
type MatchRequest struct {
	Processed []mtypes.RegisterEntryDTO `json:"processed"`
	Compiled  []mtypes.RegisterEntryDTO `json:"compiled"`
}

// MatchResponse maps each processed index to the matching compiled IDs.
type MatchResponse struct {
	Correspondence registers.Correspondence `json:"correspondence"`
	Matched        int                      `json:"matched"`
}

// RegisterHandler serves register matching.
type RegisterHandler struct {
	svc registers.Service
}

// NewRegisterHandler returns a RegisterHandler.
func NewRegisterHandler(svc registers.Service) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

// RegisterRoutes mounts the register endpoints on r.
func (h *RegisterHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/registers/match", wrapHandler(h.Match))
}

// Match handles POST /registers/match.
func (h *RegisterHandler) Match(c *gin.Context) (interface{}, error) {
	var req MatchRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	corr, err := h.svc.MatchDTO(c.Request.Context(), req.Processed, req.Compiled)
	if err != nil {
		return nil, err
	}
	return MatchResponse{Correspondence: corr, Matched: corr.Matched()}, nil
}

//Personal.AI order the ending

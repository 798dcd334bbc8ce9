package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/molgraph/internal/application/conversion"
	"github.com/turtacn/molgraph/internal/domain/graph"
	"github.com/turtacn/molgraph/internal/domain/molecule"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// ReconstructRequest is the body of POST /molecules/reconstruct.  An empty
// Dataset selects the server default.
type ReconstructRequest struct {
	Dataset string          `json:"dataset"`
	Graph   mtypes.GraphDTO `json:"graph"`
}

// EncodeRequest is the body of POST /molecules/encode.
type EncodeRequest struct {
	Dataset  string             `json:"dataset"`
	Molecule mtypes.MoleculeDTO `json:"molecule"`
}

// EncodeResponse carries the encoded graph and the dataset it was encoded for.
type EncodeResponse struct {
	Dataset string          `json:"dataset"`
	Graph   mtypes.GraphDTO `json:"graph"`
}

// MoleculeHandler serves graph and molecule conversions.
type MoleculeHandler struct {
	svc            conversion.Service
	defaultDataset string
}

// NewMoleculeHandler returns a MoleculeHandler.
func NewMoleculeHandler(svc conversion.Service, defaultDataset string) *MoleculeHandler {
	return &MoleculeHandler{svc: svc, defaultDataset: defaultDataset}
}

// RegisterRoutes mounts the molecule endpoints on r.
func (h *MoleculeHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/molecules/reconstruct", wrapHandler(h.Reconstruct))
	r.POST("/molecules/encode", wrapHandler(h.Encode))
}

func (h *MoleculeHandler) dataset(name string) string {
	if name == "" {
		return h.defaultDataset
	}
	return name
}

// Reconstruct handles POST /molecules/reconstruct.
func (h *MoleculeHandler) Reconstruct(c *gin.Context) (interface{}, error) {
	var req ReconstructRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	g, err := graph.FromDTO(req.Graph)
	if err != nil {
		return nil, err
	}
	m, err := h.svc.ReconstructKeyed(c.Request.Context(), h.dataset(req.Dataset), g)
	if err != nil {
		return nil, err
	}
	return m.ToDTO(), nil
}

// Encode handles POST /molecules/encode.
func (h *MoleculeHandler) Encode(c *gin.Context) (interface{}, error) {
	var req EncodeRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	m, err := molecule.FromDTO(req.Molecule)
	if err != nil {
		return nil, err
	}
	dataset := h.dataset(req.Dataset)
	g, err := h.svc.Encode(c.Request.Context(), dataset, m)
	if err != nil {
		return nil, err
	}
	return EncodeResponse{Dataset: dataset, Graph: graph.ToDTO(g)}, nil
}

//Personal.AI order the ending

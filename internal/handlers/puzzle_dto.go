package handlers

import (
	"github.com/gorilla/schema"

	"github.com/pieceful-app/pieceful-server/internal/puzzle"
)

func decodeDTO[T any](src map[string][]string) (T, error) {
	var dto T
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type CreateProjectDTO struct {
	Name     string  `schema:"name,required"`
	Rows     int     `schema:"rows"`
	Cols     int     `schema:"cols"`
	ImageKey string  `schema:"image_key"`
	Aspect   float64 `schema:"aspect"`
}

type RevealDTO struct {
	Count int `schema:"count,required"`
}

type SessionDTO struct {
	Pct *float64 `schema:"pct"`
}

type LayoutDTO struct {
	Width  float64 `schema:"width,required"`
	Height float64 `schema:"height,required"`
}

type OutlineDTO struct {
	Row    int     `schema:"row"`
	Col    int     `schema:"col"`
	Width  float64 `schema:"width"`
	Height float64 `schema:"height"`
}

type PreviewDTO struct {
	Rows   int     `schema:"rows"`
	Cols   int     `schema:"cols"`
	Width  float64 `schema:"width,required"`
	Height float64 `schema:"height,required"`
	Aspect float64 `schema:"aspect"`
}

// ProjectDTO is the wire shape of a project. Unlike the document-store path,
// this one nests the edge arrays directly.
type ProjectDTO struct {
	ProjectId string   `json:"project_id"`
	Name      string   `json:"name"`
	Rows      int      `json:"rows"`
	Cols      int      `json:"cols"`
	HEdges    [][]int8 `json:"h_edges"`
	VEdges    [][]int8 `json:"v_edges"`
	Revealed  []int    `json:"revealed"`
	Progress  int      `json:"progress"`
	ImageKey  string   `json:"image_key,omitempty"`
	Aspect    float64  `json:"aspect,omitempty"`
	CreatedAt int64    `json:"created_at"`
}

func NewProjectDTO(p *puzzle.Project) *ProjectDTO {
	return &ProjectDTO{
		ProjectId: p.ID.String(),
		Name:      p.Name,
		Rows:      p.Rows,
		Cols:      p.Cols,
		HEdges:    p.Edges.H,
		VEdges:    p.Edges.V,
		Revealed:  p.Revealed,
		Progress:  p.Progress,
		ImageKey:  p.ImageKey,
		Aspect:    p.Aspect,
		CreatedAt: p.CreatedAt.UnixMilli(),
	}
}

type RevealResultDTO struct {
	RevealedCount int         `json:"revealed_count"`
	Project       *ProjectDTO `json:"project"`
}

type PreviewResultDTO struct {
	Rows   int           `json:"rows"`
	Cols   int           `json:"cols"`
	Layout puzzle.Layout `json:"layout"`
	Paths  []string      `json:"paths"` // row-major piece outlines
}

type OutlineResultDTO struct {
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	CellWidth  float64 `json:"cell_width"`
	CellHeight float64 `json:"cell_height"`
	Path       string  `json:"path"`
}

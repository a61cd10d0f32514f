package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pieceful-app/pieceful-server/internal/config"
	"github.com/pieceful-app/pieceful-server/internal/imageprobe"
	"github.com/pieceful-app/pieceful-server/internal/localstore"
	"github.com/pieceful-app/pieceful-server/internal/middleware"
	"github.com/pieceful-app/pieceful-server/internal/puzzle"
	"github.com/pieceful-app/pieceful-server/internal/repository"
)

// ProjectStore is the slice of the repository the puzzle handlers use.
type ProjectStore interface {
	CreateProject(ctx context.Context, p *puzzle.Project, accountID *int64) (*repository.ProjectRow, error)
	FetchProject(ctx context.Context, id uuid.UUID) (*repository.ProjectRow, error)
	ListProjects(ctx context.Context, accountID *int64) ([]repository.ProjectRow, error)
	UpdateProject(ctx context.Context, p *puzzle.Project) (*repository.ProjectRow, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type PuzzleHandler struct {
	logger   *slog.Logger
	repo     ProjectStore
	local    *localstore.Store
	ws       *config.WebSocket
	session  *config.Session
	notifier puzzle.Notifier
	hub      *Hub
	rnd      *rand.Rand

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewPuzzleHandler(
	logger *slog.Logger,
	repo ProjectStore,
	local *localstore.Store,
	ws *config.WebSocket,
	session *config.Session,
	rnd *rand.Rand,
) *PuzzleHandler {
	hub := NewHub(logger)
	return &PuzzleHandler{
		logger:   logger,
		repo:     repo,
		local:    local,
		ws:       ws,
		session:  session,
		notifier: hub,
		hub:      hub,
		rnd:      rnd,
		locks:    map[uuid.UUID]*sync.Mutex{},
	}
}

// projectLock returns the per-project mutex serializing reveal operations.
// The whole load-mutate-persist cycle runs under it: a reveal that only
// locked the in-memory mutation could have its batch overwritten by a
// concurrent reveal that loaded the same revealed set.
func (h *PuzzleHandler) projectLock(id uuid.UUID) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.locks[id]
	if !ok {
		l = &sync.Mutex{}
		h.locks[id] = l
	}
	return l
}

func accountIDFrom(r *http.Request) *int64 {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		return nil
	}
	return &claims.AccountId
}

func (h *PuzzleHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	dto, err := decodeDTO[CreateProjectDTO](r.PostForm)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	p := puzzle.NewProject(dto.Name, dto.Rows, dto.Cols, h.rnd)
	p.ImageKey = dto.ImageKey
	p.Aspect = dto.Aspect
	if p.Aspect <= 0 && p.ImageKey != "" {
		p.Aspect = h.probeAspect(p.ImageKey)
	}

	if _, err := h.repo.CreateProject(r.Context(), p, accountIDFrom(r)); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create project", "error", err)
		return
	}
	h.snapshot(p)

	sendJSONOrLog(w, h.logger, NewProjectDTO(p))
}

func (h *PuzzleHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.ListProjects(r.Context(), accountIDFrom(r))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to list projects", "error", err)
		return
	}

	dtos := make([]*ProjectDTO, 0, len(rows))
	for _, row := range rows {
		p, err := row.ToProject()
		if err != nil {
			h.logger.Warn("skipping undecodable project",
				"project_id", row.ProjectID, "error", err)
			continue
		}
		dtos = append(dtos, NewProjectDTO(p))
	}

	sendJSONOrLog(w, h.logger, dtos)
}

func (h *PuzzleHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.logger, NewProjectDTO(p))
}

func (h *PuzzleHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeDTO[RevealDTO](r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	lock := h.projectLock(id)
	lock.Lock()
	defer lock.Unlock()

	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	n := p.Reveal(dto.Count, h.rnd)
	h.persist(r, p)

	sendJSONOrLog(w, h.logger, &RevealResultDTO{
		RevealedCount: n,
		Project:       NewProjectDTO(p),
	})
}

func (h *PuzzleHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeDTO[SessionDTO](r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	pct := h.session.DefaultPct
	if dto.Pct != nil {
		pct = *dto.Pct
	}
	if pct < 0 || pct > 100 {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(
			fmt.Errorf("pct must be between 0 and 100"),
		))
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	lock := h.projectLock(id)
	lock.Lock()
	defer lock.Unlock()

	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	n := p.CompleteSession(pct, h.rnd)
	h.persist(r, p)

	sendJSONOrLog(w, h.logger, &RevealResultDTO{
		RevealedCount: n,
		Project:       NewProjectDTO(p),
	})
}

func (h *PuzzleHandler) Layout(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeDTO[LayoutDTO](r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	if p.Aspect <= 0 && p.ImageKey != "" {
		if aspect := h.probeAspect(p.ImageKey); aspect > 0 {
			p.Aspect = aspect
			h.persist(r, p)
		}
	}

	layout := puzzle.ComputeLayout(dto.Width, dto.Height, p.Aspect, p.Rows, p.Cols)
	sendJSONOrLog(w, h.logger, layout)
}

func (h *PuzzleHandler) Outline(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeDTO[OutlineDTO](r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	if dto.Row < 0 || dto.Row >= p.Rows || dto.Col < 0 || dto.Col >= p.Cols {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(
			fmt.Errorf("cell %d:%d is outside the %dx%d grid",
				dto.Row, dto.Col, p.Rows, p.Cols),
		))
		return
	}

	cellW, cellH := dto.Width, dto.Height
	if cellW <= 0 || cellH <= 0 {
		cellW, cellH = 100, 100
	}

	path := p.CellOutline(dto.Row, dto.Col, cellW, cellH)
	sendJSONOrLog(w, h.logger, &OutlineResultDTO{
		Row:        dto.Row,
		Col:        dto.Col,
		CellWidth:  cellW,
		CellHeight: cellH,
		Path:       path.SVG(),
	})
}

// Preview cuts a throwaway grid for the given dimensions. Nothing is stored;
// each call draws fresh edges, so previews differ between refreshes.
func (h *PuzzleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeDTO[PreviewDTO](r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	rows, cols := dto.Rows, dto.Cols
	if rows < 2 || cols < 2 {
		rows, cols = puzzle.NormalRows, puzzle.NormalCols
	}

	edges := puzzle.GenerateEdges(rows, cols, h.rnd)
	layout := puzzle.ComputeLayout(dto.Width, dto.Height, dto.Aspect, rows, cols)

	paths := make([]string, 0, rows*cols)
	for r := range rows {
		for c := range cols {
			top, right, bottom, left := edges.Signs(r, c)
			path := puzzle.BuildOutline(layout.CellWidth, layout.CellHeight,
				top, right, bottom, left)
			paths = append(paths, path.SVG())
		}
	}

	sendJSONOrLog(w, h.logger, &PreviewResultDTO{
		Rows:   rows,
		Cols:   cols,
		Layout: layout,
		Paths:  paths,
	})
}

func (h *PuzzleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeleteProject(r.Context(), p.ID); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to delete project", "error", err)
		return
	}

	// release the associated image blob and the local snapshot
	if p.ImageKey != "" {
		if err := h.local.DeleteBlob(p.ImageKey); err != nil {
			h.logger.Warn("unable to release image blob",
				"image_key", p.ImageKey, "error", err)
		}
	}
	if err := h.local.Delete(snapshotKey(p.ID)); err != nil {
		h.logger.Warn("unable to delete local snapshot", "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

// loadProject fetches, authorizes and normalizes the project addressed by the
// request path. Legacy grids are migrated and missing edges regenerated
// before anything else reads them; repairs are persisted best-effort.
func (h *PuzzleHandler) loadProject(w http.ResponseWriter, r *http.Request) (*puzzle.Project, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}

	row, err := h.repo.FetchProject(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch project", "error", err)
		return nil, false
	}

	if row.AccountID != nil {
		claims, ok := middleware.ClaimsFrom(r.Context())
		if !ok || claims.AccountId != *row.AccountID {
			w.WriteHeader(http.StatusNotFound)
			return nil, false
		}
	}

	p, err := row.ToProject()
	if err != nil {
		// corrupt edge payload: fall back to the raw row and let the
		// repair below regenerate the grid
		h.logger.Warn("project has undecodable edges, regenerating",
			"project_id", row.ProjectID, "error", err)
		p = &puzzle.Project{
			ID:       row.ProjectID,
			Name:     row.Name,
			Rows:     int(row.GridRows),
			Cols:     int(row.GridCols),
			Progress: int(row.Progress),
			Aspect:   row.Aspect,
		}
		if row.ImageKey != nil {
			p.ImageKey = *row.ImageKey
		}
		for _, i := range row.Revealed {
			p.Revealed = append(p.Revealed, int(i))
		}
	}

	migrated := p.Normalize(h.rnd)
	repaired := p.EnsureEdges(h.rnd)
	if migrated || repaired {
		h.persist(r, p)
	}

	return p, true
}

// persist writes the mutated project to the document store and the local
// snapshot, then signals subscribers. Failures are logged, never rolled
// back: the in-memory state stays authoritative for this response.
func (h *PuzzleHandler) persist(r *http.Request, p *puzzle.Project) {
	if _, err := h.repo.UpdateProject(r.Context(), p); err != nil {
		h.logger.Error("unable to persist project, state kept in memory",
			"project_id", p.ID, "error", err)
	}
	h.snapshot(p)
	h.notifier.ProjectChanged(p)
}

func snapshotKey(id uuid.UUID) string {
	return "project:" + id.String()
}

func (h *PuzzleHandler) snapshot(p *puzzle.Project) {
	if err := h.local.Set(snapshotKey(p.ID), p); err != nil {
		h.logger.Warn("unable to write local snapshot",
			"project_id", p.ID, "error", err)
	}
}

// probeAspect resolves an image reference to its cached aspect ratio, probing
// the stored blob on a miss. Returns 0 when the image cannot be resolved;
// layout then falls back to the default ratio.
func (h *PuzzleHandler) probeAspect(imageKey string) float64 {
	data, err := h.local.GetBlob(imageKey)
	if err != nil {
		h.logger.Warn("unable to resolve image blob",
			"image_key", imageKey, "error", err)
		return 0
	}
	info, err := imageprobe.Probe(data)
	if err != nil {
		h.logger.Warn("unable to probe image",
			"image_key", imageKey, "error", err)
		return 0
	}
	return info.Aspect
}

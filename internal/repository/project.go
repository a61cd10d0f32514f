package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pieceful-app/pieceful-server/internal/puzzle"
)

type ProjectRow struct {
	ProjectID uuid.UUID
	AccountID *int64
	Name      string
	GridRows  int32
	GridCols  int32
	HEdges    string
	VEdges    string
	Revealed  []int32
	Progress  int32
	ImageKey  *string
	Aspect    float64
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// ToProject decodes a stored row back into the domain shape.
func (row ProjectRow) ToProject() (*puzzle.Project, error) {
	edges, err := DecodeEdges(row.HEdges, row.VEdges)
	if err != nil {
		return nil, err
	}

	revealed := make([]int, len(row.Revealed))
	for i, v := range row.Revealed {
		revealed[i] = int(v)
	}

	var imageKey string
	if row.ImageKey != nil {
		imageKey = *row.ImageKey
	}

	var createdAt time.Time
	if row.CreatedAt.Valid {
		createdAt = row.CreatedAt.Time
	}

	return &puzzle.Project{
		ID:        row.ProjectID,
		Name:      row.Name,
		Rows:      int(row.GridRows),
		Cols:      int(row.GridCols),
		Edges:     edges,
		Revealed:  revealed,
		Progress:  int(row.Progress),
		ImageKey:  imageKey,
		Aspect:    row.Aspect,
		CreatedAt: createdAt,
	}, nil
}

func projectArgs(p *puzzle.Project) (pgx.NamedArgs, error) {
	hEdges, vEdges, err := EncodeEdges(p.Edges)
	if err != nil {
		return nil, err
	}

	revealed := make([]int32, len(p.Revealed))
	for i, v := range p.Revealed {
		revealed[i] = int32(v)
	}

	var imageKey *string
	if p.ImageKey != "" {
		imageKey = &p.ImageKey
	}

	return pgx.NamedArgs{
		"project_id": p.ID,
		"name":       p.Name,
		"grid_rows":  int32(p.Rows),
		"grid_cols":  int32(p.Cols),
		"h_edges":    hEdges,
		"v_edges":    vEdges,
		"revealed":   revealed,
		"progress":   int32(p.Progress),
		"image_key":  imageKey,
		"aspect":     p.Aspect,
	}, nil
}

func (q *Queries) CreateProject(
	ctx context.Context, p *puzzle.Project, accountID *int64,
) (*ProjectRow, error) {
	args, err := projectArgs(p)
	if err != nil {
		return nil, err
	}
	args["account_id"] = accountID

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO project (
			project_id, account_id, name, grid_rows, grid_cols,
			h_edges, v_edges, revealed, progress, image_key, aspect
		)
		VALUES (
			@project_id, @account_id, @name, @grid_rows, @grid_cols,
			@h_edges, @v_edges, @revealed, @progress, @image_key, @aspect
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[ProjectRow])
}

func (q *Queries) FetchProject(ctx context.Context, id uuid.UUID) (*ProjectRow, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM project WHERE project_id = $1", id,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[ProjectRow])
}

// ListProjects returns an account's projects, or the anonymous ones when
// accountID is nil, newest first.
func (q *Queries) ListProjects(ctx context.Context, accountID *int64) ([]ProjectRow, error) {
	var rows pgx.Rows
	if accountID == nil {
		rows, _ = q.db.Query(
			ctx, "SELECT * FROM project WHERE account_id IS NULL ORDER BY created_at DESC",
		)
	} else {
		rows, _ = q.db.Query(
			ctx, "SELECT * FROM project WHERE account_id = $1 ORDER BY created_at DESC",
			*accountID,
		)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[ProjectRow])
}

// UpdateProject persists the mutable part of a project: grid shape and edges
// (migration may rewrite them), the revealed set, progress, image and aspect.
func (q *Queries) UpdateProject(ctx context.Context, p *puzzle.Project) (*ProjectRow, error) {
	args, err := projectArgs(p)
	if err != nil {
		return nil, err
	}

	rows, _ := q.db.Query(
		ctx,
		`UPDATE project SET
			name = @name,
			grid_rows = @grid_rows,
			grid_cols = @grid_cols,
			h_edges = @h_edges,
			v_edges = @v_edges,
			revealed = @revealed,
			progress = @progress,
			image_key = @image_key,
			aspect = @aspect,
			updated_at = now()
		WHERE project_id = @project_id
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[ProjectRow])
}

func (q *Queries) DeleteProject(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, "DELETE FROM project WHERE project_id = $1", id)
	return err
}

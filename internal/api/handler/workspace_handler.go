package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/ports"
)

// workspaceReader is the read side of service.WorkspaceService.
type workspaceReader interface {
	Clients(f ports.ListFilter) []domain.Client
	Projects(f ports.ListFilter) []domain.Project
	Metrics() []domain.Metric
}

type WorkspaceHandler struct {
	workspace workspaceReader
}

func NewWorkspaceHandler(workspace workspaceReader) *WorkspaceHandler {
	return &WorkspaceHandler{workspace: workspace}
}

type listResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func newList[T any](items []T) listResponse[T] {
	return listResponse[T]{Data: items, Total: len(items)}
}

func filterFrom(c echo.Context) ports.ListFilter {
	return ports.ListFilter{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
	}
}

// AdminClients lists the agency's clients.
//
// @Summary      List clients
// @Tags         workspace
// @Produce      json
// @Param        search  query     string  false  "Name, company or email substring"
// @Param        status  query     string  false  "Client status"
// @Success      200     {object}  map[string]any
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Router       /api/workspace/admin/clients [get]
func (h *WorkspaceHandler) AdminClients(c echo.Context) error {
	return c.JSON(http.StatusOK, newList(h.workspace.Clients(filterFrom(c))))
}

// AdminMetrics returns the dashboard metric cards.
//
// @Summary      Dashboard metrics
// @Tags         workspace
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/workspace/admin/metrics [get]
func (h *WorkspaceHandler) AdminMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, newList(h.workspace.Metrics()))
}

// ClientProjects lists the projects visible in the client workspace.
//
// @Summary      List projects
// @Tags         workspace
// @Produce      json
// @Param        search  query     string  false  "Name or description substring"
// @Param        status  query     string  false  "Project status"
// @Success      200     {object}  map[string]any
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Router       /api/workspace/client/projects [get]
func (h *WorkspaceHandler) ClientProjects(c echo.Context) error {
	return c.JSON(http.StatusOK, newList(h.workspace.Projects(filterFrom(c))))
}

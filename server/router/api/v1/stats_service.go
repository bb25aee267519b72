package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgai/hr-assistant/server/finops"
	"github.com/orgai/hr-assistant/server/stats"
)

type UsageStatsResponse struct {
	Usage *stats.Stats       `json:"usage,omitempty"`
	Costs *finops.CostReport `json:"costs,omitempty"`
}

// UsageStats reports usage counters and accumulated AI spend.
func (s *APIV1Service) UsageStats(c echo.Context) error {
	response := &UsageStatsResponse{}
	if s.Stats != nil {
		response.Usage = s.Stats.GetStats()
	}
	if s.Costs != nil {
		response.Costs = s.Costs.Report()
	}
	return c.JSON(http.StatusOK, response)
}

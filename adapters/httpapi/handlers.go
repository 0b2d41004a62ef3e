package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"goshuffle/adapters/jsonseq"
	"goshuffle/app"
	"goshuffle/internal/errors"
	"goshuffle/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

// shuffleResponse mirrors app.ShuffleResult with the items kept as raw JSON
type shuffleResponse struct {
	Items     json.RawMessage `json:"items"`
	Strategy  string          `json:"strategy"`
	Repeats   int             `json:"repeats"`
	Seed      *int64          `json:"seed,omitempty"`
	RuntimeMs int64           `json:"runtime_ms"`
}

// handleShuffle shuffles the "items" array of the request body. Elements
// are kept as raw JSON so any element type round-trips unchanged.
func (s *Server) handleShuffle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.respondError(c, errors.InvalidInput("failed to read request body"))
		return
	}
	if !gjson.ValidBytes(body) {
		s.respondError(c, errors.InvalidInput("request body must be valid JSON"))
		return
	}

	items, err := jsonseq.Field(body, "items")
	if err != nil {
		s.respondError(c, err)
		return
	}

	req := app.ShuffleRequest{
		Items:    items,
		Strategy: gjson.GetBytes(body, "strategy").String(),
		InPlace:  gjson.GetBytes(body, "in_place").Bool(),
	}
	repeats, err := integerField(body, "repeats")
	if err != nil {
		s.respondError(c, err)
		return
	}
	if repeats != nil {
		n := int(*repeats)
		req.Repeats = &n
	}
	if req.Seed, err = integerField(body, "seed"); err != nil {
		s.respondError(c, err)
		return
	}

	res, err := s.shuffles.Shuffle(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, shuffleResponse{
		Items:     jsonseq.Encode(res.Items),
		Strategy:  res.Strategy,
		Repeats:   res.Repeats,
		Seed:      res.Seed,
		RuntimeMs: res.RuntimeMs,
	})
}

// integerField reads an optional integer from body. Fractions, exponents
// and values outside int64 are rejected rather than truncated.
func integerField(body []byte, path string) (*int64, error) {
	v := gjson.GetBytes(body, path)
	if !v.Exists() {
		return nil, nil
	}
	if v.Type != gjson.Number {
		return nil, errors.InvalidInput(path + " must be a number")
	}
	n, err := strconv.ParseInt(v.Raw, 10, 64)
	if err != nil {
		return nil, errors.InvalidInput(path + " must be an integer in the int64 range, got " + v.Raw)
	}
	return &n, nil
}

func (s *Server) handleStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": s.shuffles.Strategies()})
}

func (s *Server) handleGetDefault(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategy": s.shuffles.Default().Name()})
}

type setDefaultRequest struct {
	Strategy string `json:"strategy" binding:"required"`
}

func (s *Server) handleSetDefault(c *gin.Context) {
	var req setDefaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("strategy is required"))
		return
	}

	strategy, err := s.shuffles.SetDefault(req.Strategy)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"strategy": strategy.Name()})
}

type simulateRequest struct {
	Strategy string  `json:"strategy"`
	DeckSize int     `json:"deck_size"`
	Repeats  *int    `json:"repeats"`
	Trials   int     `json:"trials"`
	Workers  int     `json:"workers"`
	Seed     *int64  `json:"seed"`
	Alpha    float64 `json:"alpha"`
}

// handleSimulate runs a simulation and renders it as JSON, Markdown or
// HTML depending on the format query parameter
func (s *Server) handleSimulate(c *gin.Context) {
	var req simulateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondError(c, errors.InvalidInput("invalid simulation request: "+err.Error()))
			return
		}
	}

	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "markdown" && format != "html" {
		s.respondError(c, errors.InvalidInput("format must be json, markdown or html"))
		return
	}

	res, err := s.simulations.Simulate(c.Request.Context(), app.SimulationRequest{
		Strategy: req.Strategy,
		DeckSize: req.DeckSize,
		Repeats:  req.Repeats,
		Trials:   req.Trials,
		Workers:  req.Workers,
		Seed:     req.Seed,
		Alpha:    req.Alpha,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	switch format {
	case "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown(res)))
	case "html":
		c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(res))
	default:
		c.JSON(http.StatusOK, res)
	}
}

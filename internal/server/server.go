package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zerox80/tresormatch/internal/config"
	"github.com/zerox80/tresormatch/internal/core"
	"github.com/zerox80/tresormatch/internal/core/match"
	"github.com/zerox80/tresormatch/internal/core/model"
	"github.com/zerox80/tresormatch/internal/driver"
)

type Server struct {
	Inventory *core.Inventory
	Config    *config.Config
	logger    zerolog.Logger
}

// NewServer loads the configuration, applies environment overrides, connects
// to Memgraph and wires the inventory orchestrator.
func NewServer(logger zerolog.Logger) (*Server, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		logger.Warn().Str("path", cfgPath).Msg("config file not found, using defaults")
		cfg = config.Default()
	}

	// Environment overrides win over the config file.
	if uri := os.Getenv("MEMGRAPH_URI"); uri != "" {
		cfg.Memgraph.URI = uri
	}
	if user := os.Getenv("MEMGRAPH_USER"); user != "" {
		cfg.Memgraph.User = user
	}
	if password := os.Getenv("MEMGRAPH_PASSWORD"); password != "" {
		cfg.Memgraph.Password = password
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}

	if lvl, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		logger = logger.Level(lvl)
	}

	d, err := driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
	if err != nil {
		return nil, err
	}
	if err := d.BuildIndices(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("failed to build indices")
	}

	return &Server{
		Inventory: core.NewInventory(d),
		Config:    cfg,
		logger:    logger,
	}, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	if s.Config != nil && s.Config.Server.Mode != "" {
		gin.SetMode(s.Config.Server.Mode)
	}
	r := gin.Default()

	r.GET("/health", s.Health)

	r.POST("/items", s.CreateItem)
	r.GET("/items", s.ListItems)
	r.GET("/items/:uuid", s.GetItem)
	r.DELETE("/items/:uuid", s.DeleteItem)

	r.GET("/duplicates", s.FindDuplicates)

	r.POST("/quarantine", s.AddQuarantine)
	r.GET("/quarantine", s.ListQuarantine)
	r.POST("/quarantine/:uuid/deactivate", s.DeactivateQuarantine)
	r.POST("/quarantine/:uuid/reactivate", s.ReactivateQuarantine)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type CreateItemRequest struct {
	OwnerID      string      `json:"owner_id" binding:"required"`
	Name         string      `json:"name" binding:"required"`
	Description  string      `json:"description"`
	WodisNumber  string      `json:"wodis_number"`
	PurchaseDate *model.Date `json:"purchase_date"`
}

func (s *Server) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	item, err := s.Inventory.CreateItem(c.Request.Context(), model.Item{
		OwnerID:      req.OwnerID,
		Name:         req.Name,
		Description:  req.Description,
		WodisNumber:  req.WodisNumber,
		PurchaseDate: req.PurchaseDate,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (s *Server) ListItems(c *gin.Context) {
	ownerID := c.Query("owner_id")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner_id is required"})
		return
	}

	limit := match.MaxLimit
	if raw := c.Query("limit"); raw != "" {
		resolved, err := match.ResolveOptions(match.Params{Limit: raw})
		if err != nil {
			s.respondValidation(c, err)
			return
		}
		limit = resolved.Limit
	}

	items, err := s.Inventory.ListItems(c.Request.Context(), ownerID, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) GetItem(c *gin.Context) {
	item, err := s.Inventory.GetItem(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		s.respondLookupError(c, err, "Failed to load item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) DeleteItem(c *gin.Context) {
	if err := s.Inventory.DeleteItem(c.Request.Context(), c.Param("uuid")); err != nil {
		s.respondLookupError(c, err, "Failed to delete item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// FindDuplicates resolves the match configuration from query parameters and
// runs one analysis pass. Configuration problems come back as a 400 with one
// message per field; a pass that finds nothing is a normal 200 with zero
// groups.
func (s *Server) FindDuplicates(c *gin.Context) {
	ownerID := c.Query("owner_id")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner_id is required"})
		return
	}

	params := match.Params{
		Preset:                c.Query("preset"),
		NameMode:              c.Query("name_mode"),
		DescriptionMode:       c.Query("description_mode"),
		WodisMode:             c.Query("wodis_mode"),
		PurchaseToleranceDays: c.Query("purchase_tolerance_days"),
		Limit:                 c.Query("limit"),
		RequireAnyTextMatch:   c.Query("require_any_text_match"),
	}

	opts, err := match.ResolveOptions(params)
	if err != nil {
		s.respondValidation(c, err)
		return
	}
	if !opts.HasActiveCriterion() {
		s.respondValidation(c, match.ErrNoActiveCriterion())
		return
	}

	presetUsed := ""
	if params.IsAutoPreset() {
		presetUsed = match.PresetAuto
	}

	report, err := s.Inventory.FindDuplicates(c.Request.Context(), ownerID, opts, presetUsed)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("duplicate analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze duplicates"})
		return
	}

	c.JSON(http.StatusOK, report)
}

type AddQuarantineRequest struct {
	OwnerID string `json:"owner_id" binding:"required"`
	ItemA   string `json:"item_a" binding:"required"`
	ItemB   string `json:"item_b" binding:"required"`
}

func (s *Server) AddQuarantine(c *gin.Context) {
	var req AddQuarantineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.ItemA == req.ItemB {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_a and item_b must differ"})
		return
	}

	pair, err := s.Inventory.AddQuarantine(c.Request.Context(), req.OwnerID, req.ItemA, req.ItemB)
	if err != nil {
		s.respondLookupError(c, err, "Failed to quarantine pair")
		return
	}

	c.JSON(http.StatusCreated, pair)
}

func (s *Server) ListQuarantine(c *gin.Context) {
	ownerID := c.Query("owner_id")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner_id is required"})
		return
	}

	pairs, err := s.Inventory.ListActiveQuarantine(c.Request.Context(), ownerID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list quarantine pairs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list quarantine pairs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pairs": pairs})
}

func (s *Server) DeactivateQuarantine(c *gin.Context) {
	if err := s.Inventory.DeactivateQuarantine(c.Request.Context(), c.Param("uuid")); err != nil {
		s.respondLookupError(c, err, "Failed to deactivate quarantine pair")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

func (s *Server) ReactivateQuarantine(c *gin.Context) {
	if err := s.Inventory.ReactivateQuarantine(c.Request.Context(), c.Param("uuid")); err != nil {
		s.respondLookupError(c, err, "Failed to reactivate quarantine pair")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reactivated"})
}

func (s *Server) respondValidation(c *gin.Context, err error) {
	var verr *match.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) respondLookupError(c *gin.Context, err error, message string) {
	if errors.Is(err, core.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	s.logger.Error().Err(err).Msg(message)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

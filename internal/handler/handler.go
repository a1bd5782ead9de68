package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mjczone/dappermatic-sub001/internal/model"
	"github.com/mjczone/dappermatic-sub001/internal/schemaops"
)

// PrimaryKeyService is the protocol surface the handlers call. Tests
// substitute a mock; production wires *schemaops.PrimaryKeys.
type PrimaryKeyService interface {
	Get(ctx context.Context, caller model.Caller, datasourceID, tableName, schemaName string) (*model.PrimaryKeyConstraint, error)
	Create(ctx context.Context, caller model.Caller, datasourceID string, def *model.PrimaryKeyConstraint) (*model.PrimaryKeyConstraint, error)
	Drop(ctx context.Context, caller model.Caller, datasourceID, tableName, schemaName string) error
}

// DatasourceLister exposes the registered datasource identifiers.
type DatasourceLister interface {
	Names() []string
}

type Handler struct {
	primaryKeys PrimaryKeyService
	datasources DatasourceLister
}

func New(primaryKeys PrimaryKeyService, datasources DatasourceLister) *Handler {
	return &Handler{primaryKeys: primaryKeys, datasources: datasources}
}

// Register mounts all routes on the router.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/ping", Ping)
	r.GET("/datasources", h.ListDatasourcesHandler)

	pk := r.Group("/datasources/:datasource/tables/:table/primary-key")
	pk.GET("", h.GetPrimaryKeyHandler)
	pk.POST("", h.CreatePrimaryKeyHandler)
	pk.DELETE("", h.DropPrimaryKeyHandler)
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

func (h *Handler) ListDatasourcesHandler(c *gin.Context) {
	names := h.datasources.Names()
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"datasources": names})
}

func (h *Handler) GetPrimaryKeyHandler(c *gin.Context) {
	pk, err := h.primaryKeys.Get(c.Request.Context(), callerFrom(c),
		c.Param("datasource"), c.Param("table"), c.Query("schema"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ToPrimaryKeyDTO(pk))
}

func (h *Handler) CreatePrimaryKeyHandler(c *gin.Context) {
	var req model.CreatePrimaryKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	def := &model.PrimaryKeyConstraint{
		ConstraintName: req.ConstraintName,
		TableName:      c.Param("table"),
		SchemaName:     c.Query("schema"),
		ColumnNames:    req.ColumnNames,
	}

	pk, err := h.primaryKeys.Create(c.Request.Context(), callerFrom(c), c.Param("datasource"), def)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.ToPrimaryKeyDTO(pk))
}

func (h *Handler) DropPrimaryKeyHandler(c *gin.Context) {
	table := c.Param("table")
	err := h.primaryKeys.Drop(c.Request.Context(), callerFrom(c),
		c.Param("datasource"), table, c.Query("schema"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "primary key constraint dropped successfully",
		"table":   table,
	})
}

func callerFrom(c *gin.Context) model.Caller {
	token := c.GetHeader("Authorization")
	token = strings.TrimPrefix(token, "Bearer ")
	return model.Caller{
		Subject: c.GetHeader("X-Caller"),
		Token:   strings.TrimSpace(token),
	}
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case schemaops.IsValidation(err):
		status = http.StatusBadRequest
	case schemaops.IsPermissionDenied(err):
		status = http.StatusForbidden
	case schemaops.IsNotFound(err):
		status = http.StatusNotFound
	case schemaops.IsDatasource(err), schemaops.IsStore(err):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		log.Printf("schema operation failed: %v", unwrapAll(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// unwrapAll walks to the root cause for the server log; the response body
// only ever carries the taxonomy message.
func unwrapAll(err error) error {
	for {
		u := errors.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"bet-dashboard/internal/analysis"
	"bet-dashboard/internal/api/models"
	"bet-dashboard/internal/data"

	"github.com/gin-gonic/gin"
)

// NoHistoryMessage is shown when the picks history cannot be found.
const NoHistoryMessage = "Nenhum histórico de aposta encontrado."

// Store holds the outcome of the startup load: either an engine or the
// error that prevented building one.
type Store struct {
	engine  *analysis.Engine
	loadErr error
	loc     *time.Location
}

// NewStore wraps a successfully loaded engine.
func NewStore(engine *analysis.Engine, loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{engine: engine, loc: loc}
}

// NewFailedStore records a load failure. Data endpoints answer with an error
// instead of the server refusing to start.
func NewFailedStore(err error, loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{loadErr: err, loc: loc}
}

// Location is the time zone calendar days are read in.
func (s *Store) Location() *time.Location { return s.loc }

// Ready reports whether data endpoints can be served.
func (s *Store) Ready() bool { return s.loadErr == nil && s.engine != nil }

// Engine returns the engine, or writes the load error and returns false.
func (s *Store) Engine(c *gin.Context) (*analysis.Engine, bool) {
	if s.Ready() {
		return s.engine, true
	}

	var notFound *data.DataNotFoundError
	var malformed *data.MalformedRecordError
	switch {
	case errors.As(s.loadErr, &notFound):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "DATA_NOT_FOUND",
				Message: NoHistoryMessage,
				Details: map[string]interface{}{"source": notFound.Source},
			},
		})
	case errors.As(s.loadErr, &malformed):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "DATA_MALFORMED",
				Message: malformed.Error(),
				Details: map[string]interface{}{
					"index": malformed.Index,
					"field": malformed.Field,
					"value": malformed.Value,
				},
			},
		})
	default:
		msg := "dataset not loaded"
		if s.loadErr != nil {
			msg = s.loadErr.Error()
		}
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "DATA_UNAVAILABLE",
				Message: msg,
			},
		})
	}
	return nil, false
}

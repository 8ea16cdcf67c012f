package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"adoption-server/internal/managers"
	"adoption-server/internal/schemas"
	"adoption-server/internal/utils"
)

type DashboardHdl interface {
	HandleGetDashboardRequest(c *gin.Context)
}

type DashboardHandler struct {
	DatabaseManager managers.DatabaseMgr
}

func NewDashboardHandler(databaseManager *managers.DatabaseMgr) DashboardHdl {
	return &DashboardHandler{
		DatabaseManager: *databaseManager,
	}
}

const recentEntryCount = 5

// HandleGetDashboardRequest composes the caller's adoptions and journal into
// summary statistics. Pure reads, no mutation.
func (handler *DashboardHandler) HandleGetDashboardRequest(c *gin.Context) {
	claims := c.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	userId := claims["sub"].(string)
	pool := handler.DatabaseManager.GetPool()

	var createdAt pgtype.Timestamptz
	queryString := "SELECT created_at FROM adoption_schema.users WHERE user_id = $1"
	if err := pool.QueryRow(c, queryString, userId).Scan(&createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	adoptions, err := loadAdoptionsWithNotes(c, handler.DatabaseManager, userId)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	dashboard := schemas.DashboardDTO{
		Adoptions:  adoptions,
		DaysActive: int(time.Since(createdAt.Time).Hours() / 24),
	}

	for _, adoption := range adoptions {
		dashboard.TotalPrayers += adoption.PrayerCount
		dashboard.NoteCount += len(adoption.Notes)
	}

	queryString = "SELECT COUNT(*) FROM adoption_schema.journal_entries WHERE user_id = $1"
	if err := pool.QueryRow(c, queryString, userId).Scan(&dashboard.JournalCount); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	queryString = `SELECT entry_id, school_id, content, created_at FROM adoption_schema.journal_entries
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := pool.Query(c, queryString, userId, recentEntryCount)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	recentEntries, scanErr := scanJournalEntries(rows)
	if scanErr != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, scanErr)
		return
	}
	dashboard.RecentEntries = recentEntries

	utils.WriteAndLogResponse(c, gin.H{"dashboard": dashboard}, http.StatusOK)
}

package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"adoption-server/internal/managers"
	"adoption-server/internal/schemas"
	"adoption-server/internal/utils"
)

type JournalHdl interface {
	CreateEntry(c *gin.Context)
	ListEntries(c *gin.Context)
	DeleteEntry(c *gin.Context)
}

type JournalHandler struct {
	DatabaseManager managers.DatabaseMgr
}

func NewJournalHandler(databaseManager *managers.DatabaseMgr) JournalHdl {
	return &JournalHandler{
		DatabaseManager: *databaseManager,
	}
}

// trimmedText normalizes user-provided journal text before storage.
func trimmedText(text string) string {
	return strings.TrimSpace(text)
}

// CreateEntry appends a standalone journal entry for the caller, optionally
// linked to a school.
func (handler *JournalHandler) CreateEntry(c *gin.Context) {
	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	entryRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.CreateJournalEntryRequest)
	claims := c.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	userId := claims["sub"].(string)

	text := trimmedText(entryRequest.EntryText)
	if text == "" {
		err = errors.New("empty entry text")
		utils.WriteAndLogError(c, schemas.EmptyJournalEntry, http.StatusBadRequest, err)
		return
	}

	var schoolId *uuid.UUID
	if entryRequest.SchoolID != "" {
		parsed, parseErr := uuid.Parse(entryRequest.SchoolID)
		if parseErr != nil {
			err = parseErr
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}

		var existingId uuid.UUID
		queryString := "SELECT school_id FROM adoption_schema.schools WHERE school_id = $1"
		if err = tx.QueryRow(c, queryString, parsed).Scan(&existingId); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				utils.WriteAndLogError(c, schemas.SchoolNotFound, http.StatusNotFound, err)
				return
			}
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		schoolId = &parsed
	}

	entryId := uuid.New()
	createdAt := time.Now()

	queryString := "INSERT INTO adoption_schema.journal_entries (entry_id, user_id, school_id, content, created_at) VALUES ($1, $2, $3, $4, $5)"
	if _, err = tx.Exec(c, queryString, entryId, userId, schoolId, text, createdAt); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	entry := schemas.JournalEntryDTO{
		EntryId:   entryId.String(),
		EntryText: text,
		CreatedAt: createdAt.Format(time.RFC3339),
	}
	if schoolId != nil {
		entry.SchoolId = schoolId.String()
	}

	utils.WriteAndLogResponse(c, gin.H{"entry": entry}, http.StatusCreated)
}

// ListEntries returns the caller's journal entries, newest first, optionally
// filtered by school and capped at the limit query parameter.
func (handler *JournalHandler) ListEntries(c *gin.Context) {
	claims := c.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	userId := claims["sub"].(string)

	limit := utils.ParseLimitParam(c)

	var rows pgx.Rows
	var err error
	if schoolIdParam := c.Query(utils.SchoolIdParamKey); schoolIdParam != "" {
		schoolId, parseErr := uuid.Parse(schoolIdParam)
		if parseErr != nil {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, parseErr)
			return
		}

		queryString := `SELECT entry_id, school_id, content, created_at FROM adoption_schema.journal_entries
			WHERE user_id = $1 AND school_id = $2 ORDER BY created_at DESC LIMIT $3`
		rows, err = handler.DatabaseManager.GetPool().Query(c, queryString, userId, schoolId, limit)
	} else {
		queryString := `SELECT entry_id, school_id, content, created_at FROM adoption_schema.journal_entries
			WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
		rows, err = handler.DatabaseManager.GetPool().Query(c, queryString, userId, limit)
	}
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	entries, scanErr := scanJournalEntries(rows)
	if scanErr != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, scanErr)
		return
	}

	utils.WriteAndLogResponse(c, gin.H{"entries": entries}, http.StatusOK)
}

// DeleteEntry removes one of the caller's journal entries. Entries of other
// users are indistinguishable from absent ones.
func (handler *JournalHandler) DeleteEntry(c *gin.Context) {
	entryId, err := uuid.Parse(c.Param(utils.EntryIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	claims := c.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	userId := claims["sub"].(string)

	queryString := "DELETE FROM adoption_schema.journal_entries WHERE entry_id = $1 AND user_id = $2"
	commandTag, err := handler.DatabaseManager.GetPool().Exec(c, queryString, entryId, userId)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if commandTag.RowsAffected() == 0 {
		utils.WriteAndLogError(c, schemas.EntryNotFound, http.StatusNotFound, errors.New("entry not found"))
		return
	}

	utils.WriteAndLogResponse(c, gin.H{}, http.StatusOK)
}

// scanJournalEntries maps journal rows onto response DTOs.
func scanJournalEntries(rows pgx.Rows) ([]schemas.JournalEntryDTO, error) {
	entries := make([]schemas.JournalEntryDTO, 0)
	for rows.Next() {
		entry := schemas.JournalEntryDTO{}
		var entryId uuid.UUID
		var schoolId *uuid.UUID
		var createdAt pgtype.Timestamptz
		if err := rows.Scan(&entryId, &schoolId, &entry.EntryText, &createdAt); err != nil {
			return nil, err
		}
		entry.EntryId = entryId.String()
		if schoolId != nil {
			entry.SchoolId = schoolId.String()
		}
		entry.CreatedAt = createdAt.Time.Format(time.RFC3339)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

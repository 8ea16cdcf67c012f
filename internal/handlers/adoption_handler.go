package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"adoption-server/internal/managers"
	"adoption-server/internal/schemas"
	"adoption-server/internal/utils"
)

type AdoptionHdl interface {
	ClaimSchool(c *gin.Context)
	ListAdoptions(c *gin.Context)
	AppendNote(c *gin.Context)
	RecordPrayer(c *gin.Context)
}

type AdoptionHandler struct {
	DatabaseManager managers.DatabaseMgr
	MailManager     managers.MailMgr
}

func NewAdoptionHandler(databaseManager *managers.DatabaseMgr, mailManager *managers.MailMgr) AdoptionHdl {
	return &AdoptionHandler{
		DatabaseManager: *databaseManager,
		MailManager:     *mailManager,
	}
}

// Named constraints from the adoptions table. The unique indexes are the sole
// arbiters of racing claims: the (user_id, school_id) pair identifies a retry
// by the same user, the school_id index any other competing adopter.
const (
	userSchoolConstraint = "adoptions_user_school_key"
	schoolConstraint     = "adoptions_school_key"
)

// ClaimSchool atomically and exclusively binds a school to the requesting user.
// The adoption insert and the school flag update commit or roll back together,
// so schools.adopted stays equivalent to adopter_id being set at all times.
func (handler *AdoptionHandler) ClaimSchool(c *gin.Context) {
	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	claimRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.ClaimRequest)
	claims := c.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	userId := claims["sub"].(string)
	schoolId := claimRequest.SchoolID

	// Look up the school inside the claim transaction
	school := schemas.SchoolDTO{SchoolId: schoolId}
	var adopted bool
	queryString := "SELECT name, address, latitude, longitude, description, adopted FROM adoption_schema.schools WHERE school_id = $1"
	row := tx.QueryRow(c, queryString, schoolId)
	if err = row.Scan(&school.Name, &school.Address, &school.Latitude, &school.Longitude, &school.Description, &adopted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.SchoolNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if adopted {
		err = errors.New("school already adopted")
		utils.WriteAndLogError(c, schemas.AlreadyAdoptedBySomeone, http.StatusBadRequest, err)
		return
	}

	// Insert the adoption. A unique violation here means we lost a race that
	// the earlier read could not see; the constraint name tells us to whom.
	adoptionId := uuid.New()
	dateAdopted := time.Now()

	queryString = "INSERT INTO adoption_schema.adoptions (adoption_id, user_id, school_id, date_adopted, prayer_count) VALUES ($1, $2, $3, $4, 0)"
	if _, err = tx.Exec(c, queryString, adoptionId, userId, schoolId, dateAdopted); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == userSchoolConstraint {
				utils.WriteAndLogError(c, schemas.AlreadyAdoptedByYou, http.StatusBadRequest, err)
				return
			}
			utils.WriteAndLogError(c, schemas.AlreadyAdoptedBySomeone, http.StatusBadRequest, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	// Mark the school adopted in the same transaction
	queryString = "UPDATE adoption_schema.schools SET adopted = TRUE, adopter_id = $1 WHERE school_id = $2"
	if _, err = tx.Exec(c, queryString, userId, schoolId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	// Resolve the adopter for the confirmation mail before the transaction closes
	var adopterEmail, adopterName string
	queryString = "SELECT email, name FROM adoption_schema.users WHERE user_id = $1"
	if err = tx.QueryRow(c, queryString, userId).Scan(&adopterEmail, &adopterName); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	// Mail failures must not fail the claim
	if mailErr := handler.MailManager.SendAdoptionMail(adopterEmail, adopterName, school.Name); mailErr != nil {
		utils.LogMessageWithFieldsAndError(c, "warn", "Error sending adoption mail", mailErr)
	}

	school.Adopted = true
	school.Adopter = &schemas.AdopterDTO{Name: adopterName, Email: adopterEmail}

	adoption := schemas.AdoptionDTO{
		AdoptionId:  adoptionId.String(),
		DateAdopted: dateAdopted.Format(time.RFC3339),
		PrayerCount: 0,
		School:      school,
		Notes:       []schemas.NoteDTO{},
	}

	utils.WriteAndLogResponse(c, gin.H{"adoption": adoption}, http.StatusCreated)
}

// ListAdoptions returns the caller's adoptions, newest first, with resolved
// school summaries and the embedded journal sub-entries.
func (handler *AdoptionHandler) ListAdoptions(c *gin.Context) {
	claims := c.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	userId := claims["sub"].(string)

	adoptions, err := loadAdoptionsWithNotes(c, handler.DatabaseManager, userId)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, gin.H{"adoptions": adoptions}, http.StatusOK)
}

// loadAdoptionsWithNotes resolves a user's adoptions newest first, each with
// its school summary and its journal sub-entries oldest first. Shared between
// the adoption listing and the dashboard aggregation.
func loadAdoptionsWithNotes(c *gin.Context, databaseMgr managers.DatabaseMgr, userId string) ([]schemas.AdoptionDTO, error) {
	queryString := `SELECT a.adoption_id, a.date_adopted, a.prayer_count,
			s.school_id, s.name, s.address, s.latitude, s.longitude, s.description
		FROM adoption_schema.adoptions a
		INNER JOIN adoption_schema.schools s ON a.school_id = s.school_id
		WHERE a.user_id = $1 ORDER BY a.date_adopted DESC`
	rows, err := databaseMgr.GetPool().Query(c, queryString, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	adoptions := make([]schemas.AdoptionDTO, 0)
	adoptionIndex := make(map[string]int)
	for rows.Next() {
		adoption := schemas.AdoptionDTO{Notes: []schemas.NoteDTO{}}
		var adoptionId, schoolId uuid.UUID
		var dateAdopted pgtype.Timestamptz
		if err := rows.Scan(&adoptionId, &dateAdopted, &adoption.PrayerCount, &schoolId, &adoption.School.Name,
			&adoption.School.Address, &adoption.School.Latitude, &adoption.School.Longitude, &adoption.School.Description); err != nil {
			return nil, err
		}
		adoption.AdoptionId = adoptionId.String()
		adoption.DateAdopted = dateAdopted.Time.Format(time.RFC3339)
		adoption.School.SchoolId = schoolId.String()
		adoption.School.Adopted = true
		adoptionIndex[adoption.AdoptionId] = len(adoptions)
		adoptions = append(adoptions, adoption)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	// Attach the embedded journal sub-entries, oldest first
	queryString = `SELECT n.adoption_id, n.note_id, n.content, n.created_at
		FROM adoption_schema.adoption_notes n
		INNER JOIN adoption_schema.adoptions a ON n.adoption_id = a.adoption_id
		WHERE a.user_id = $1 ORDER BY n.created_at ASC`
	noteRows, err := databaseMgr.GetPool().Query(c, queryString, userId)
	if err != nil {
		return nil, err
	}
	defer noteRows.Close()

	for noteRows.Next() {
		var adoptionId, noteId uuid.UUID
		var content string
		var createdAt pgtype.Timestamptz
		if err := noteRows.Scan(&adoptionId, &noteId, &content, &createdAt); err != nil {
			return nil, err
		}
		if index, ok := adoptionIndex[adoptionId.String()]; ok {
			adoptions[index].Notes = append(adoptions[index].Notes, schemas.NoteDTO{
				NoteId:    noteId.String(),
				Text:      content,
				CreatedAt: createdAt.Time.Format(time.RFC3339),
			})
		}
	}

	return adoptions, noteRows.Err()
}

// AppendNote appends a journal sub-entry to one of the caller's adoptions.
// Foreign adoptions are indistinguishable from absent ones.
func (handler *AdoptionHandler) AppendNote(c *gin.Context) {
	adoptionId, err := uuid.Parse(c.Param(utils.AdoptionIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	noteRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.CreateNoteRequest)
	claims := c.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	userId := claims["sub"].(string)

	text := trimmedText(noteRequest.Text)
	if text == "" {
		err = errors.New("empty note text")
		utils.WriteAndLogError(c, schemas.EmptyJournalEntry, http.StatusBadRequest, err)
		return
	}

	var ownedId uuid.UUID
	queryString := "SELECT adoption_id FROM adoption_schema.adoptions WHERE adoption_id = $1 AND user_id = $2"
	if err = tx.QueryRow(c, queryString, adoptionId, userId).Scan(&ownedId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.AdoptionNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	noteId := uuid.New()
	createdAt := time.Now()

	queryString = "INSERT INTO adoption_schema.adoption_notes (note_id, adoption_id, content, created_at) VALUES ($1, $2, $3, $4)"
	if _, err = tx.Exec(c, queryString, noteId, adoptionId, text, createdAt); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	note := schemas.NoteDTO{
		NoteId:    noteId.String(),
		Text:      text,
		CreatedAt: createdAt.Format(time.RFC3339),
	}

	utils.WriteAndLogResponse(c, gin.H{"note": note}, http.StatusCreated)
}

// RecordPrayer increments the prayer counter on one of the caller's adoptions.
func (handler *AdoptionHandler) RecordPrayer(c *gin.Context) {
	adoptionId, err := uuid.Parse(c.Param(utils.AdoptionIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	claims := c.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	userId := claims["sub"].(string)

	var prayerCount int
	queryString := "UPDATE adoption_schema.adoptions SET prayer_count = prayer_count + 1 WHERE adoption_id = $1 AND user_id = $2 RETURNING prayer_count"
	row := handler.DatabaseManager.GetPool().QueryRow(c, queryString, adoptionId, userId)
	if err := row.Scan(&prayerCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.AdoptionNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, gin.H{"prayerCount": prayerCount}, http.StatusOK)
}

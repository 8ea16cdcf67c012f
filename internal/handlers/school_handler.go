package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"adoption-server/internal/managers"
	"adoption-server/internal/schemas"
	"adoption-server/internal/utils"
)

type SchoolHdl interface {
	ListSchools(c *gin.Context)
	HandleGetSchoolRequest(c *gin.Context)
	CreateSchool(c *gin.Context)
}

type SchoolHandler struct {
	DatabaseManager managers.DatabaseMgr
}

func NewSchoolHandler(databaseManager *managers.DatabaseMgr) SchoolHdl {
	return &SchoolHandler{
		DatabaseManager: *databaseManager,
	}
}

// uniqueViolation is the SQLSTATE code pgx reports on a unique-constraint breach.
const uniqueViolation = "23505"

// ListSchools returns all schools ordered by name, with adopter summaries where adopted.
func (handler *SchoolHandler) ListSchools(c *gin.Context) {
	queryString := `SELECT s.school_id, s.name, s.address, s.latitude, s.longitude, s.description, s.adopted, u.name, u.email
		FROM adoption_schema.schools s LEFT JOIN adoption_schema.users u ON s.adopter_id = u.user_id
		ORDER BY s.name ASC`
	rows, err := handler.DatabaseManager.GetPool().Query(c, queryString)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	schools := make([]schemas.SchoolDTO, 0)
	for rows.Next() {
		school := schemas.SchoolDTO{}
		var schoolId uuid.UUID
		var adopterName, adopterEmail pgtype.Text
		if err := rows.Scan(&schoolId, &school.Name, &school.Address, &school.Latitude, &school.Longitude,
			&school.Description, &school.Adopted, &adopterName, &adopterEmail); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		school.SchoolId = schoolId.String()
		if school.Adopted && adopterName.Valid {
			school.Adopter = &schemas.AdopterDTO{Name: adopterName.String, Email: adopterEmail.String}
		}
		schools = append(schools, school)
	}

	utils.WriteAndLogResponse(c, gin.H{"schools": schools}, http.StatusOK)
}

// HandleGetSchoolRequest returns the school specified in the path.
func (handler *SchoolHandler) HandleGetSchoolRequest(c *gin.Context) {
	schoolId, err := uuid.Parse(c.Param(utils.SchoolIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	school := schemas.SchoolDTO{SchoolId: schoolId.String()}
	var adopterName, adopterEmail pgtype.Text

	queryString := `SELECT s.name, s.address, s.latitude, s.longitude, s.description, s.adopted, u.name, u.email
		FROM adoption_schema.schools s LEFT JOIN adoption_schema.users u ON s.adopter_id = u.user_id
		WHERE s.school_id = $1`
	row := handler.DatabaseManager.GetPool().QueryRow(c, queryString, schoolId)
	if err := row.Scan(&school.Name, &school.Address, &school.Latitude, &school.Longitude,
		&school.Description, &school.Adopted, &adopterName, &adopterEmail); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.SchoolNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if school.Adopted && adopterName.Valid {
		school.Adopter = &schemas.AdopterDTO{Name: adopterName.String, Email: adopterEmail.String}
	}

	utils.WriteAndLogResponse(c, gin.H{"school": school}, http.StatusOK)
}

// CreateSchool creates a new school. Admin-only; duplicate names are rejected
// through the unique constraint on the school name.
func (handler *SchoolHandler) CreateSchool(c *gin.Context) {
	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	createSchoolRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.CreateSchoolRequest)

	schoolId := uuid.New()
	createdAt := time.Now()

	queryString := `INSERT INTO adoption_schema.schools (school_id, name, address, latitude, longitude, description, adopted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)`
	if _, err = tx.Exec(c, queryString, schoolId, createSchoolRequest.Name, createSchoolRequest.Address,
		*createSchoolRequest.Latitude, *createSchoolRequest.Longitude, createSchoolRequest.Description, createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			utils.WriteAndLogError(c, schemas.SchoolNameTaken, http.StatusBadRequest, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	school := schemas.SchoolDTO{
		SchoolId:    schoolId.String(),
		Name:        createSchoolRequest.Name,
		Address:     createSchoolRequest.Address,
		Latitude:    *createSchoolRequest.Latitude,
		Longitude:   *createSchoolRequest.Longitude,
		Description: createSchoolRequest.Description,
		Adopted:     false,
	}

	utils.WriteAndLogResponse(c, gin.H{"school": school}, http.StatusCreated)
}

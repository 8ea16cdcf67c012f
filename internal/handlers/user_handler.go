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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/crypto/bcrypt"

	"adoption-server/internal/managers"
	"adoption-server/internal/schemas"
	"adoption-server/internal/utils"
)

type UserHdl interface {
	RegisterUser(c *gin.Context)
	LoginUser(c *gin.Context)
	LogoutUser(c *gin.Context)
	HandleGetMeRequest(c *gin.Context)
}

type UserHandler struct {
	DatabaseManager   managers.DatabaseMgr
	JWTManager        managers.JWTMgr
	MailManager       managers.MailMgr
	RevocationManager managers.RevocationMgr
}

func NewUserHandler(databaseManager *managers.DatabaseMgr, jwtManager *managers.JWTMgr, mailManager *managers.MailMgr, revocationManager *managers.RevocationMgr) UserHdl {
	return &UserHandler{
		DatabaseManager:   *databaseManager,
		JWTManager:        *jwtManager,
		MailManager:       *mailManager,
		RevocationManager: *revocationManager,
	}
}

// RegisterUser creates a new user account and returns a bearer token plus the user summary.
func (handler *UserHandler) RegisterUser(c *gin.Context) {
	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	registrationRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.RegistrationRequest)
	email := strings.ToLower(strings.TrimSpace(registrationRequest.Email))

	// Check if the email is taken
	queryString := "SELECT user_id FROM adoption_schema.users WHERE email = $1"
	var existingId uuid.UUID
	if err = tx.QueryRow(c, queryString, email).Scan(&existingId); err == nil {
		err = errors.New("email taken")
		utils.WriteAndLogError(c, schemas.EmailTaken, http.StatusBadRequest, err)
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	err = nil

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registrationRequest.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	// Insert the user into the database
	userId := uuid.New()
	createdAt := time.Now()

	// A unique violation here means a concurrent registration won the race
	// that the earlier read could not see.
	queryString = "INSERT INTO adoption_schema.users (user_id, email, password, name, role, created_at) VALUES ($1, $2, $3, $4, $5, $6)"
	if _, err = tx.Exec(c, queryString, userId, email, hashedPassword, registrationRequest.Name, schemas.RoleAdopter, createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			utils.WriteAndLogError(c, schemas.EmailTaken, http.StatusBadRequest, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	// Generate a token for the user
	token, err := handler.JWTManager.GenerateJWT(userId.String(), schemas.RoleAdopter)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	// Mail failures must not fail the registration
	if mailErr := handler.MailManager.SendWelcomeMail(email, registrationRequest.Name); mailErr != nil {
		utils.LogMessageWithFieldsAndError(c, "warn", "Error sending welcome mail", mailErr)
	}

	tokenDto := &schemas.TokenDTO{
		Token: token,
		User: schemas.UserDTO{
			UserId:    userId.String(),
			Email:     email,
			Name:      registrationRequest.Name,
			Role:      schemas.RoleAdopter,
			CreatedAt: createdAt.Format(time.RFC3339),
		},
	}

	utils.WriteAndLogResponse(c, gin.H{"token": tokenDto.Token, "user": tokenDto.User}, http.StatusCreated)
}

// LoginUser validates the credentials and returns a bearer token plus the user summary.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (handler *UserHandler) LoginUser(c *gin.Context) {
	loginRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.LoginRequest)
	email := strings.ToLower(strings.TrimSpace(loginRequest.Email))

	var userId uuid.UUID
	var hashedPassword, name, role string
	var createdAt pgtype.Timestamptz

	queryString := "SELECT user_id, password, name, role, created_at FROM adoption_schema.users WHERE email = $1"
	row := handler.DatabaseManager.GetPool().QueryRow(c, queryString, email)
	if err := row.Scan(&userId, &hashedPassword, &name, &role, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusUnauthorized, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(loginRequest.Password)); err != nil {
		utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusUnauthorized, err)
		return
	}

	token, err := handler.JWTManager.GenerateJWT(userId.String(), role)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	userDto := schemas.UserDTO{
		UserId:    userId.String(),
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: createdAt.Time.Format(time.RFC3339),
	}

	utils.WriteAndLogResponse(c, gin.H{"token": token, "user": userDto}, http.StatusOK)
}

// LogoutUser revokes the presented token. Revoking an already revoked token succeeds.
func (handler *UserHandler) LogoutUser(c *gin.Context) {
	claims := c.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	tokenString := c.Value(utils.JWTTokenKey.String()).(string)

	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("token without expiry"))
		return
	}

	handler.RevocationManager.Revoke(tokenString, expiresAt.Time)

	utils.WriteAndLogResponse(c, gin.H{}, http.StatusOK)
}

// HandleGetMeRequest returns the authenticated user.
func (handler *UserHandler) HandleGetMeRequest(c *gin.Context) {
	claims := c.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	userId := claims["sub"].(string)

	user := schemas.UserDTO{UserId: userId}
	var createdAt pgtype.Timestamptz

	queryString := "SELECT email, name, role, created_at FROM adoption_schema.users WHERE user_id = $1"
	row := handler.DatabaseManager.GetPool().QueryRow(c, queryString, userId)
	if err := row.Scan(&user.Email, &user.Name, &user.Role, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	user.CreatedAt = createdAt.Time.Format(time.RFC3339)

	utils.WriteAndLogResponse(c, gin.H{"user": user}, http.StatusOK)
}

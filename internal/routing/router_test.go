package routing

import (
	"crypto/ed25519"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"adoption-server/internal/managers"
	"adoption-server/internal/managers/mocks"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func setupMocks(t *testing.T) (*mocks.MockDatabaseManager, managers.JWTMgr, *mocks.MockMailManager, managers.RevocationMgr) {
	poolMock, err := pgxmock.NewPool()
	if err != nil {
		log.Errorf("Error creating mock database pool: %v", err)
	}

	databaseMgrMock := &mocks.MockDatabaseManager{}
	databaseMgrMock.On("GetPool").Return(poolMock)

	t.Setenv("ENVIRONMENT", "test")
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Errorf("Error generating key pair: %v", err)
	}
	revocationMgr := managers.NewRevocationManager()
	jwtMgr := managers.NewJWTManager(privateKey, publicKey, time.Hour, revocationMgr)

	mailMgrMock := &mocks.MockMailManager{}
	mailMgrMock.On("SendWelcomeMail", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
	mailMgrMock.On("SendAdoptionMail", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)

	return databaseMgrMock, jwtMgr, mailMgrMock, revocationMgr
}

func newTestServer(t *testing.T) (*httptest.Server, pgxmock.PgxPoolIface, managers.JWTMgr) {
	databaseMgrMock, jwtMgr, mailMgrMock, revocationMgr := setupMocks(t)

	router := InitRouter(databaseMgrMock, mailMgrMock, jwtMgr, revocationMgr)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
	return server, poolMock, jwtMgr
}

func TestHealth(t *testing.T) {
	server, poolMock, _ := newTestServer(t)
	poolMock.ExpectPing()

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/health").Expect().Status(http.StatusOK)
	response.JSON().Object().HasValue("success", true)
	response.JSON().Path("$.health.status").IsEqual("ok")

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestUserRegistration(t *testing.T) {
	type registration struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}

	testCases := []struct {
		name   string
		body   registration
		status int
	}{
		{
			"ValidRegistration",
			registration{Email: "tester@example.com", Password: "test.Password123", Name: "Test User"},
			http.StatusCreated,
		},
		{
			"InvalidEmail",
			registration{Email: "tester@example@.com", Password: "test.Password123", Name: "Test User"},
			http.StatusBadRequest,
		},
		{
			"DuplicateEmail",
			registration{Email: "taken@example.com", Password: "test.Password123", Name: "Test User"},
			http.StatusBadRequest,
		},
		{
			"RacedDuplicateEmail",
			registration{Email: "raced@example.com", Password: "test.Password123", Name: "Test User"},
			http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server, poolMock, _ := newTestServer(t)

			switch tc.name {
			case "InvalidEmail":
				// Rejected by validation before any database access
			case "DuplicateEmail":
				poolMock.ExpectBegin()
				poolMock.ExpectQuery("SELECT user_id").WithArgs(tc.body.Email).
					WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(uuid.New().String()))
				poolMock.ExpectRollback()
			case "RacedDuplicateEmail":
				// A concurrent registration commits between the pre-read and the insert
				poolMock.ExpectBegin()
				poolMock.ExpectQuery("SELECT user_id").WithArgs(tc.body.Email).
					WillReturnRows(pgxmock.NewRows([]string{"user_id"}))
				poolMock.ExpectExec("INSERT INTO adoption_schema.users").
					WithArgs(pgxmock.AnyArg(), tc.body.Email, pgxmock.AnyArg(), tc.body.Name, "adopter", pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
				poolMock.ExpectRollback()
			default:
				poolMock.ExpectBegin()
				poolMock.ExpectQuery("SELECT user_id").WithArgs(tc.body.Email).
					WillReturnRows(pgxmock.NewRows([]string{"user_id"}))
				poolMock.ExpectExec("INSERT INTO adoption_schema.users").
					WithArgs(pgxmock.AnyArg(), tc.body.Email, pgxmock.AnyArg(), tc.body.Name, "adopter", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				poolMock.ExpectCommit()
			}

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/register").WithJSON(tc.body).Expect().Status(tc.status)

			switch tc.name {
			case "ValidRegistration":
				response.JSON().Object().HasValue("success", true)
				response.JSON().Path("$.token").String().NotEmpty()
				response.JSON().Path("$.user.email").IsEqual(tc.body.Email)
				response.JSON().Path("$.user.role").IsEqual("adopter")
			case "InvalidEmail":
				response.JSON().Path("$.error.code").IsEqual("ADT-001")
			case "DuplicateEmail", "RacedDuplicateEmail":
				response.JSON().Path("$.error.code").IsEqual("ADT-002")
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestUserLogin(t *testing.T) {
	type login struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	password := "test.Password123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userId := uuid.New().String()
	createdAt, _ := time.Parse(time.RFC3339, "2024-03-15T10:00:00Z")

	testCases := []struct {
		name      string
		body      login
		status    int
		errorCode string
	}{
		{"ValidLogin", login{Email: "tester@example.com", Password: password}, http.StatusOK, ""},
		{"WrongPassword", login{Email: "tester@example.com", Password: "not.the.password"}, http.StatusUnauthorized, "ADT-003"},
		{"UnknownEmail", login{Email: "nobody@example.com", Password: password}, http.StatusUnauthorized, "ADT-003"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server, poolMock, _ := newTestServer(t)

			rows := pgxmock.NewRows([]string{"user_id", "password", "name", "role", "created_at"})
			if tc.name != "UnknownEmail" {
				rows.AddRow(userId, string(hash), "Test User", "adopter", createdAt)
			}
			poolMock.ExpectQuery("SELECT user_id, password, name, role, created_at").
				WithArgs(tc.body.Email).WillReturnRows(rows)

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/login").WithJSON(tc.body).Expect().Status(tc.status)

			if tc.errorCode != "" {
				response.JSON().Path("$.error.code").IsEqual(tc.errorCode)
			} else {
				response.JSON().Path("$.token").String().NotEmpty()
				response.JSON().Path("$.user.userId").IsEqual(userId)
				response.JSON().Path("$.user.createdAt").IsEqual("2024-03-15T10:00:00Z")
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestGetMeRequiresToken(t *testing.T) {
	server, _, _ := newTestServer(t)

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/me").Expect().Status(http.StatusUnauthorized)
	response.JSON().Path("$.error.code").IsEqual("ADT-004")
}

func TestGetMe(t *testing.T) {
	server, poolMock, jwtMgr := newTestServer(t)

	userId := uuid.New().String()
	token, _ := jwtMgr.GenerateJWT(userId, "adopter")
	createdAt, _ := time.Parse(time.RFC3339, "2024-03-15T10:00:00Z")

	poolMock.ExpectQuery("SELECT email, name, role, created_at").WithArgs(userId).
		WillReturnRows(pgxmock.NewRows([]string{"email", "name", "role", "created_at"}).
			AddRow("tester@example.com", "Test User", "adopter", createdAt))

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/me").WithHeader("Authorization", "Bearer "+token).
		Expect().Status(http.StatusOK)
	response.JSON().Path("$.user").IsEqual(map[string]interface{}{
		"userId":    userId,
		"email":     "tester@example.com",
		"name":      "Test User",
		"role":      "adopter",
		"createdAt": "2024-03-15T10:00:00Z",
	})

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	server, poolMock, jwtMgr := newTestServer(t)

	userId := uuid.New().String()
	token, _ := jwtMgr.GenerateJWT(userId, "adopter")

	expect := httpexpect.Default(t, server.URL)
	expect.POST("/logout").WithHeader("Authorization", "Bearer "+token).
		Expect().Status(http.StatusOK).JSON().Object().HasValue("success", true)

	// The same token must now be rejected on every protected route
	response := expect.GET("/me").WithHeader("Authorization", "Bearer "+token).
		Expect().Status(http.StatusUnauthorized)
	response.JSON().Path("$.error.code").IsEqual("ADT-006")

	// A second logout with the revoked token is rejected by the JWT gate
	expect.POST("/logout").WithHeader("Authorization", "Bearer "+token).
		Expect().Status(http.StatusUnauthorized)

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCreateSchool(t *testing.T) {
	latitude := 48.137
	longitude := 11.575
	schoolBody := map[string]interface{}{
		"name":        "Riverside Elementary",
		"address":     "12 River Road, Springfield",
		"latitude":    latitude,
		"longitude":   longitude,
		"description": "A small school by the river.",
	}

	testCases := []struct {
		name      string
		role      string
		status    int
		errorCode string
	}{
		{"AsAdmin", "admin", http.StatusCreated, ""},
		{"AsAdopter", "adopter", http.StatusForbidden, "ADT-007"},
		{"DuplicateName", "admin", http.StatusBadRequest, "ADT-010"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server, poolMock, jwtMgr := newTestServer(t)
			token, _ := jwtMgr.GenerateJWT(uuid.New().String(), tc.role)

			switch tc.name {
			case "AsAdmin":
				poolMock.ExpectBegin()
				poolMock.ExpectExec("INSERT INTO adoption_schema.schools").
					WithArgs(pgxmock.AnyArg(), "Riverside Elementary", "12 River Road, Springfield",
						latitude, longitude, "A small school by the river.", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				poolMock.ExpectCommit()
			case "DuplicateName":
				poolMock.ExpectBegin()
				poolMock.ExpectExec("INSERT INTO adoption_schema.schools").
					WithArgs(pgxmock.AnyArg(), "Riverside Elementary", "12 River Road, Springfield",
						latitude, longitude, "A small school by the river.", pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "schools_name_key"})
				poolMock.ExpectRollback()
			}

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/schools").WithHeader("Authorization", "Bearer "+token).
				WithJSON(schoolBody).Expect().Status(tc.status)

			if tc.errorCode != "" {
				response.JSON().Path("$.error.code").IsEqual(tc.errorCode)
			} else {
				response.JSON().Path("$.school.name").IsEqual("Riverside Elementary")
				response.JSON().Path("$.school.adopted").IsEqual(false)
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestListSchools(t *testing.T) {
	server, poolMock, _ := newTestServer(t)

	adoptedId := uuid.New().String()
	openId := uuid.New().String()

	poolMock.ExpectQuery("SELECT s.school_id, s.name").
		WillReturnRows(pgxmock.NewRows([]string{
			"school_id", "name", "address", "latitude", "longitude", "description", "adopted", "adopter_name", "adopter_email",
		}).
			AddRow(adoptedId, "Hillcrest Academy", "3 Hill Street", 52.52, 13.405, "", true, "Test User", "tester@example.com").
			AddRow(openId, "Riverside Elementary", "12 River Road", 48.137, 11.575, "", false, nil, nil))

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/schools").Expect().Status(http.StatusOK)

	schools := response.JSON().Path("$.schools").Array()
	schools.Length().IsEqual(2)

	adopted := schools.Value(0).Object()
	adopted.HasValue("schoolId", adoptedId)
	adopted.HasValue("adopted", true)
	adopted.Path("$.adopter").IsEqual(map[string]interface{}{
		"name":  "Test User",
		"email": "tester@example.com",
	})

	open := schools.Value(1).Object()
	open.HasValue("schoolId", openId)
	open.HasValue("adopted", false)
	open.NotContainsKey("adopter")

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestGetSchool(t *testing.T) {
	server, poolMock, _ := newTestServer(t)

	schoolId := uuid.New().String()
	poolMock.ExpectQuery("SELECT s.name, s.address").WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"name", "address", "latitude", "longitude", "description", "adopted", "adopter_name", "adopter_email"}))

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/schools/" + schoolId).Expect().Status(http.StatusNotFound)
	response.JSON().Path("$.error.code").IsEqual("ADT-009")

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestClaimSchool(t *testing.T) {
	userId := uuid.New().String()
	schoolId := uuid.New().String()

	schoolColumns := []string{"name", "address", "latitude", "longitude", "description", "adopted"}

	testCases := []struct {
		name      string
		status    int
		errorCode string
	}{
		{"Successful", http.StatusCreated, ""},
		{"SchoolNotFound", http.StatusNotFound, "ADT-009"},
		{"AlreadyAdopted", http.StatusBadRequest, "ADT-012"},
		{"RaceLostToSelf", http.StatusBadRequest, "ADT-011"},
		{"RaceLostToOther", http.StatusBadRequest, "ADT-012"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server, poolMock, jwtMgr := newTestServer(t)
			token, _ := jwtMgr.GenerateJWT(userId, "adopter")

			poolMock.ExpectBegin()
			switch tc.name {
			case "SchoolNotFound":
				poolMock.ExpectQuery("SELECT name, address").WithArgs(schoolId).
					WillReturnRows(pgxmock.NewRows(schoolColumns))
				poolMock.ExpectRollback()
			case "AlreadyAdopted":
				poolMock.ExpectQuery("SELECT name, address").WithArgs(schoolId).
					WillReturnRows(pgxmock.NewRows(schoolColumns).
						AddRow("Riverside Elementary", "12 River Road", 48.137, 11.575, "", true))
				poolMock.ExpectRollback()
			case "RaceLostToSelf", "RaceLostToOther":
				constraint := "adoptions_school_key"
				if tc.name == "RaceLostToSelf" {
					constraint = "adoptions_user_school_key"
				}
				poolMock.ExpectQuery("SELECT name, address").WithArgs(schoolId).
					WillReturnRows(pgxmock.NewRows(schoolColumns).
						AddRow("Riverside Elementary", "12 River Road", 48.137, 11.575, "", false))
				poolMock.ExpectExec("INSERT INTO adoption_schema.adoptions").
					WithArgs(pgxmock.AnyArg(), userId, schoolId, pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: constraint})
				poolMock.ExpectRollback()
			default:
				poolMock.ExpectQuery("SELECT name, address").WithArgs(schoolId).
					WillReturnRows(pgxmock.NewRows(schoolColumns).
						AddRow("Riverside Elementary", "12 River Road", 48.137, 11.575, "", false))
				poolMock.ExpectExec("INSERT INTO adoption_schema.adoptions").
					WithArgs(pgxmock.AnyArg(), userId, schoolId, pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				poolMock.ExpectExec("UPDATE adoption_schema.schools").
					WithArgs(userId, schoolId).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				poolMock.ExpectQuery("SELECT email, name").WithArgs(userId).
					WillReturnRows(pgxmock.NewRows([]string{"email", "name"}).
						AddRow("tester@example.com", "Test User"))
				poolMock.ExpectCommit()
			}

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/adoptions").WithHeader("Authorization", "Bearer "+token).
				WithJSON(map[string]string{"schoolId": schoolId}).Expect().Status(tc.status)

			if tc.errorCode != "" {
				response.JSON().Path("$.error.code").IsEqual(tc.errorCode)
			} else {
				response.JSON().Path("$.adoption.prayerCount").IsEqual(0)
				response.JSON().Path("$.adoption.school.schoolId").IsEqual(schoolId)
				response.JSON().Path("$.adoption.school.adopted").IsEqual(true)
				response.JSON().Path("$.adoption.school.adopter.email").IsEqual("tester@example.com")
				response.JSON().Path("$.adoption.notes").Array().IsEmpty()
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestListAdoptions(t *testing.T) {
	server, poolMock, jwtMgr := newTestServer(t)

	userId := uuid.New().String()
	token, _ := jwtMgr.GenerateJWT(userId, "adopter")

	adoptionId := uuid.New().String()
	schoolId := uuid.New().String()
	noteId := uuid.New().String()
	dateAdopted, _ := time.Parse(time.RFC3339, "2024-04-01T09:00:00Z")
	noteCreatedAt, _ := time.Parse(time.RFC3339, "2024-04-02T09:00:00Z")

	poolMock.ExpectQuery("SELECT a.adoption_id, a.date_adopted").WithArgs(userId).
		WillReturnRows(pgxmock.NewRows([]string{
			"adoption_id", "date_adopted", "prayer_count", "school_id", "name", "address", "latitude", "longitude", "description",
		}).AddRow(adoptionId, dateAdopted, 3, schoolId, "Riverside Elementary", "12 River Road", 48.137, 11.575, ""))
	poolMock.ExpectQuery("SELECT n.adoption_id, n.note_id").WithArgs(userId).
		WillReturnRows(pgxmock.NewRows([]string{"adoption_id", "note_id", "content", "created_at"}).
			AddRow(adoptionId, noteId, "Prayed for the teachers today.", noteCreatedAt))

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/adoptions").WithHeader("Authorization", "Bearer "+token).
		Expect().Status(http.StatusOK)

	adoptions := response.JSON().Path("$.adoptions").Array()
	adoptions.Length().IsEqual(1)
	adoptions.Value(0).Object().HasValue("adoptionId", adoptionId)
	adoptions.Value(0).Object().HasValue("prayerCount", 3)
	adoptions.Value(0).Path("$.school.name").IsEqual("Riverside Elementary")
	adoptions.Value(0).Path("$.notes[0].text").IsEqual("Prayed for the teachers today.")

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestAppendNote(t *testing.T) {
	userId := uuid.New().String()
	adoptionId := uuid.New().String()

	testCases := []struct {
		name      string
		text      string
		status    int
		errorCode string
	}{
		{"Successful", "Prayed for the teachers today.", http.StatusCreated, ""},
		{"WhitespaceOnly", "   ", http.StatusBadRequest, "ADT-015"},
		{"ForeignAdoption", "Prayed for the teachers today.", http.StatusNotFound, "ADT-013"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server, poolMock, jwtMgr := newTestServer(t)
			token, _ := jwtMgr.GenerateJWT(userId, "adopter")

			poolMock.ExpectBegin()
			switch tc.name {
			case "WhitespaceOnly":
				poolMock.ExpectRollback()
			case "ForeignAdoption":
				poolMock.ExpectQuery("SELECT adoption_id").WithArgs(pgxmock.AnyArg(), userId).
					WillReturnRows(pgxmock.NewRows([]string{"adoption_id"}))
				poolMock.ExpectRollback()
			default:
				poolMock.ExpectQuery("SELECT adoption_id").WithArgs(pgxmock.AnyArg(), userId).
					WillReturnRows(pgxmock.NewRows([]string{"adoption_id"}).AddRow(adoptionId))
				poolMock.ExpectExec("INSERT INTO adoption_schema.adoption_notes").
					WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), tc.text, pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				poolMock.ExpectCommit()
			}

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/adoptions/"+adoptionId+"/notes").
				WithHeader("Authorization", "Bearer "+token).
				WithJSON(map[string]string{"text": tc.text}).Expect().Status(tc.status)

			if tc.errorCode != "" {
				response.JSON().Path("$.error.code").IsEqual(tc.errorCode)
			} else {
				response.JSON().Path("$.note.text").IsEqual(tc.text)
				response.JSON().Path("$.note.noteId").String().NotEmpty()
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestRecordPrayer(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		errorCode string
	}{
		{"Successful", http.StatusOK, ""},
		{"NotFound", http.StatusNotFound, "ADT-013"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server, poolMock, jwtMgr := newTestServer(t)

			userId := uuid.New().String()
			adoptionId := uuid.New().String()
			token, _ := jwtMgr.GenerateJWT(userId, "adopter")

			rows := pgxmock.NewRows([]string{"prayer_count"})
			if tc.name == "Successful" {
				rows.AddRow(4)
			}
			poolMock.ExpectQuery("UPDATE adoption_schema.adoptions").
				WithArgs(pgxmock.AnyArg(), userId).WillReturnRows(rows)

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/adoptions/"+adoptionId+"/prayers").
				WithHeader("Authorization", "Bearer "+token).Expect().Status(tc.status)

			if tc.errorCode != "" {
				response.JSON().Path("$.error.code").IsEqual(tc.errorCode)
			} else {
				response.JSON().Path("$.prayerCount").IsEqual(4)
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestCreateJournalEntry(t *testing.T) {
	userId := uuid.New().String()

	testCases := []struct {
		name      string
		entryText string
		status    int
		errorCode string
	}{
		{"Successful", "Grateful for this school.", http.StatusCreated, ""},
		{"WhitespaceOnly", "  \t ", http.StatusBadRequest, "ADT-015"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server, poolMock, jwtMgr := newTestServer(t)
			token, _ := jwtMgr.GenerateJWT(userId, "adopter")

			poolMock.ExpectBegin()
			if tc.name == "Successful" {
				poolMock.ExpectExec("INSERT INTO adoption_schema.journal_entries").
					WithArgs(pgxmock.AnyArg(), userId, pgxmock.AnyArg(), "Grateful for this school.", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				poolMock.ExpectCommit()
			} else {
				poolMock.ExpectRollback()
			}

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/journal").WithHeader("Authorization", "Bearer "+token).
				WithJSON(map[string]string{"entryText": tc.entryText}).Expect().Status(tc.status)

			if tc.errorCode != "" {
				response.JSON().Path("$.error.code").IsEqual(tc.errorCode)
			} else {
				response.JSON().Path("$.entry.entryText").IsEqual("Grateful for this school.")
				response.JSON().Path("$.entry.entryId").String().NotEmpty()
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestListJournalEntries(t *testing.T) {
	server, poolMock, jwtMgr := newTestServer(t)

	userId := uuid.New().String()
	token, _ := jwtMgr.GenerateJWT(userId, "adopter")

	entryId := uuid.New().String()
	createdAt, _ := time.Parse(time.RFC3339, "2024-04-03T09:00:00Z")

	poolMock.ExpectQuery("SELECT entry_id, school_id").WithArgs(userId, 50).
		WillReturnRows(pgxmock.NewRows([]string{"entry_id", "school_id", "content", "created_at"}).
			AddRow(entryId, (*uuid.UUID)(nil), "Grateful for this school.", createdAt))

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/journal").WithHeader("Authorization", "Bearer "+token).
		Expect().Status(http.StatusOK)

	entries := response.JSON().Path("$.entries").Array()
	entries.Length().IsEqual(1)
	entries.Value(0).Object().HasValue("entryId", entryId)
	entries.Value(0).Object().HasValue("entryText", "Grateful for this school.")
	entries.Value(0).Object().NotContainsKey("schoolId")

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestDeleteJournalEntry(t *testing.T) {
	testCases := []struct {
		name      string
		affected  int64
		status    int
		errorCode string
	}{
		{"Successful", 1, http.StatusOK, ""},
		{"NotFound", 0, http.StatusNotFound, "ADT-014"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server, poolMock, jwtMgr := newTestServer(t)

			userId := uuid.New().String()
			entryId := uuid.New().String()
			token, _ := jwtMgr.GenerateJWT(userId, "adopter")

			poolMock.ExpectExec("DELETE FROM adoption_schema.journal_entries").
				WithArgs(pgxmock.AnyArg(), userId).
				WillReturnResult(pgxmock.NewResult("DELETE", tc.affected))

			expect := httpexpect.Default(t, server.URL)
			response := expect.DELETE("/journal/"+entryId).
				WithHeader("Authorization", "Bearer "+token).Expect().Status(tc.status)

			if tc.errorCode != "" {
				response.JSON().Path("$.error.code").IsEqual(tc.errorCode)
			} else {
				response.JSON().Object().HasValue("success", true)
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestDashboard(t *testing.T) {
	server, poolMock, jwtMgr := newTestServer(t)

	userId := uuid.New().String()
	token, _ := jwtMgr.GenerateJWT(userId, "adopter")

	accountCreatedAt := time.Now().Add(-10 * 24 * time.Hour)
	adoptionId := uuid.New().String()
	schoolId := uuid.New().String()
	noteId := uuid.New().String()
	entryId := uuid.New().String()
	dateAdopted, _ := time.Parse(time.RFC3339, "2024-04-01T09:00:00Z")
	noteCreatedAt, _ := time.Parse(time.RFC3339, "2024-04-02T09:00:00Z")
	entryCreatedAt, _ := time.Parse(time.RFC3339, "2024-04-03T09:00:00Z")

	poolMock.ExpectQuery("SELECT created_at").WithArgs(userId).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(accountCreatedAt))
	poolMock.ExpectQuery("SELECT a.adoption_id, a.date_adopted").WithArgs(userId).
		WillReturnRows(pgxmock.NewRows([]string{
			"adoption_id", "date_adopted", "prayer_count", "school_id", "name", "address", "latitude", "longitude", "description",
		}).AddRow(adoptionId, dateAdopted, 7, schoolId, "Riverside Elementary", "12 River Road", 48.137, 11.575, ""))
	poolMock.ExpectQuery("SELECT n.adoption_id, n.note_id").WithArgs(userId).
		WillReturnRows(pgxmock.NewRows([]string{"adoption_id", "note_id", "content", "created_at"}).
			AddRow(adoptionId, noteId, "Prayed for the teachers today.", noteCreatedAt))
	poolMock.ExpectQuery("SELECT COUNT").WithArgs(userId).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	poolMock.ExpectQuery("SELECT entry_id, school_id").WithArgs(userId, 5).
		WillReturnRows(pgxmock.NewRows([]string{"entry_id", "school_id", "content", "created_at"}).
			AddRow(entryId, (*uuid.UUID)(nil), "Grateful for this school.", entryCreatedAt))

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/dashboard").WithHeader("Authorization", "Bearer "+token).
		Expect().Status(http.StatusOK)

	dashboard := response.JSON().Path("$.dashboard").Object()
	dashboard.HasValue("totalPrayers", 7)
	dashboard.HasValue("noteCount", 1)
	dashboard.HasValue("journalCount", 2)
	dashboard.HasValue("daysActive", 10)
	dashboard.Path("$.adoptions[0].adoptionId").IsEqual(adoptionId)
	dashboard.Path("$.recentEntries[0].entryId").IsEqual(entryId)

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

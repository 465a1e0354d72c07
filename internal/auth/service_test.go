package auth_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/evisarw/visa-management/internal/auth"
	userDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/user"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

type mockAuthRepository struct {
	credentials map[string]credential
	users       map[int64]*auth.User
	emails      map[string]bool
	nextID      int64

	createError error
}

type credential struct {
	userID       int64
	passwordHash string
	isActive     bool
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		credentials: make(map[string]credential),
		users:       make(map[int64]*auth.User),
		emails:      make(map[string]bool),
		nextID:      1,
	}
}

func (m *mockAuthRepository) addUser(email, password, role string, isActive bool, permissions []string) int64 {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	id := m.nextID
	m.nextID++
	m.credentials[email] = credential{userID: id, passwordHash: string(hash), isActive: isActive}
	m.users[id] = &auth.User{ID: id, Email: email, Role: role, Permissions: permissions}
	m.emails[email] = true
	return id
}

func (m *mockAuthRepository) GetCredentialsByEmail(email string) (int64, string, bool, error) {
	cred, exists := m.credentials[email]
	if !exists {
		return 0, "", false, errors.New("user not found")
	}
	return cred.userID, cred.passwordHash, cred.isActive, nil
}

func (m *mockAuthRepository) GetUserWithPermissions(userID int64) (*auth.User, error) {
	u, exists := m.users[userID]
	if !exists {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (m *mockAuthRepository) EmailExists(email string) (bool, error) {
	return m.emails[email], nil
}

func (m *mockAuthRepository) CreateUser(email, firstName, lastName, passwordHash, role string) (int64, error) {
	if m.createError != nil {
		return 0, m.createError
	}
	id := m.nextID
	m.nextID++
	m.credentials[email] = credential{userID: id, passwordHash: passwordHash, isActive: true}
	m.users[id] = &auth.User{ID: id, Email: email, Role: role}
	m.emails[email] = true
	return id, nil
}

var _ = Describe("AuthService", func() {
	var (
		service  *auth.Service
		mockRepo *mockAuthRepository
		tokenGen *auth.JWTTokenGenerator
	)

	BeforeEach(func() {
		mockRepo = newMockAuthRepository()
		tokenGen = auth.NewJWTTokenGenerator("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
		service = auth.NewService(mockRepo, tokenGen, bcrypt.MinCost)
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			mockRepo.addUser("officer@evisa.gov.rw", "StrongPass123", userDatamodel.RoleOfficer, true,
				[]string{"applications:view"})
		})

		It("issues tokens for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "officer@evisa.gov.rw",
				Password: "StrongPass123",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(tokens.AccessToken).ToNot(BeEmpty())
			Expect(tokens.RefreshToken).ToNot(BeEmpty())

			claims, err := tokenGen.ValidateToken(tokens.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Email).To(Equal("officer@evisa.gov.rw"))
			Expect(claims.Role).To(Equal(userDatamodel.RoleOfficer))
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "officer@evisa.gov.rw",
				Password: "WrongPass123",
			})

			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown email", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "nobody@evisa.gov.rw",
				Password: "StrongPass123",
			})

			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects an inactive account with the same error", func() {
			mockRepo.addUser("inactive@evisa.gov.rw", "StrongPass123", userDatamodel.RoleOfficer, false, nil)

			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "inactive@evisa.gov.rw",
				Password: "StrongPass123",
			})

			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects missing fields", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "officer@evisa.gov.rw"})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Signup", func() {
		It("registers a new applicant with the user role", func() {
			tokens, err := service.Signup(auth.SignupDTO{
				FirstName: "Amina",
				LastName:  "Uwase",
				Email:     "amina.uwase@example.com",
				Password:  "StrongPass123",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(tokens.AccessToken).ToNot(BeEmpty())

			claims, err := tokenGen.ValidateToken(tokens.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Role).To(Equal(userDatamodel.RoleUser))
		})

		It("rejects a duplicate email", func() {
			mockRepo.addUser("amina.uwase@example.com", "StrongPass123", userDatamodel.RoleUser, true, nil)

			_, err := service.Signup(auth.SignupDTO{
				FirstName: "Amina",
				LastName:  "Uwase",
				Email:     "amina.uwase@example.com",
				Password:  "StrongPass123",
			})

			Expect(err).To(Equal(auth.ErrEmailTaken))
		})

		It("rejects a short password", func() {
			_, err := service.Signup(auth.SignupDTO{
				FirstName: "Amina",
				LastName:  "Uwase",
				Email:     "amina.uwase@example.com",
				Password:  "short",
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RefreshTokens", func() {
		It("exchanges a valid refresh token for a new pair", func() {
			mockRepo.addUser("officer@evisa.gov.rw", "StrongPass123", userDatamodel.RoleOfficer, true, nil)
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "officer@evisa.gov.rw",
				Password: "StrongPass123",
			})
			Expect(err).ToNot(HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(refreshed.AccessToken).ToNot(BeEmpty())
			Expect(refreshed.RefreshToken).ToNot(BeEmpty())
		})

		It("rejects a garbage token", func() {
			_, err := service.RefreshTokens("not-a-token")

			Expect(err).To(Equal(auth.ErrInvalidToken))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("rejects a token signed with another secret", func() {
			otherGen := auth.NewJWTTokenGenerator("other-secret", "other-refresh", 15*time.Minute, 7*24*time.Hour)
			token, err := otherGen.GenerateAccessToken(1, "officer@evisa.gov.rw", userDatamodel.RoleOfficer, nil)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			Expect(err).To(Equal(auth.ErrInvalidToken))
		})
	})
})

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskflow/taskflow-api/internal/apperrors"
	"github.com/taskflow/taskflow-api/internal/config"
	"github.com/taskflow/taskflow-api/internal/jwtutil"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	cfg     *config.Config
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = openTestDB(&suite.Suite)
	suite.cfg = &config.Config{
		JWTSecret:    "test-secret-key",
		JWTExpiresIn: time.Hour,
		BcryptCost:   bcrypt.MinCost,
	}
	suite.service = NewAuthService(repository.NewUserRepository(suite.db), suite.cfg)
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	closeTestDB(&suite.Suite, suite.db)
}

func (suite *AuthServiceTestSuite) register(username, email, password string) *AuthResult {
	result, err := suite.service.Register(RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	suite.Require().NoError(err)
	return result
}

func (suite *AuthServiceTestSuite) TestRegisterAndLogin() {
	registered := suite.register("alice", "alice@example.com", "Secret12")

	suite.NotEmpty(registered.Token)
	suite.Equal(models.RoleUser, registered.User.Role)

	result, err := suite.service.Login(LoginInput{Email: "alice@example.com", Password: "Secret12"})
	suite.NoError(err)
	suite.Equal(registered.User.ID, result.User.ID)

	claims, err := jwtutil.Validate(suite.cfg.JWTSecret, result.Token)
	suite.NoError(err)
	suite.Equal(registered.User.ID, claims.UserID)
	suite.Equal(models.RoleUser, claims.Role)
}

func (suite *AuthServiceTestSuite) TestLoginFailuresAreIndistinguishable() {
	suite.register("alice", "alice@example.com", "Secret12")

	_, unknownEmailErr := suite.service.Login(LoginInput{Email: "nobody@example.com", Password: "Secret12"})
	_, wrongPasswordErr := suite.service.Login(LoginInput{Email: "alice@example.com", Password: "wrong"})

	suite.Require().Error(unknownEmailErr)
	suite.Require().Error(wrongPasswordErr)
	suite.True(apperrors.IsKind(unknownEmailErr, apperrors.KindUnauthorized))
	suite.True(apperrors.IsKind(wrongPasswordErr, apperrors.KindUnauthorized))
	suite.Equal(unknownEmailErr.Error(), wrongPasswordErr.Error())
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	suite.register("alice", "alice@example.com", "Secret12")

	_, err := suite.service.Register(RegisterInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "Secret12",
	})

	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateUsername() {
	suite.register("alice", "alice@example.com", "Secret12")

	_, err := suite.service.Register(RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "Secret12",
	})

	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *AuthServiceTestSuite) TestPasswordIsHashed() {
	suite.register("alice", "alice@example.com", "Secret12")

	var user models.User
	suite.Require().NoError(suite.db.Where("email = ?", "alice@example.com").First(&user).Error)
	suite.NotEqual("Secret12", user.PasswordHash)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Secret12")))
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

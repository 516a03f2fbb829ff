package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskflow/taskflow-api/internal/apperrors"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.db = openTestDB(&suite.Suite)
	suite.service = NewUserService(repository.NewUserRepository(suite.db), bcrypt.MinCost)
}

func (suite *UserServiceTestSuite) TearDownTest() {
	closeTestDB(&suite.Suite, suite.db)
}

func (suite *UserServiceTestSuite) TestCreateUserDefaultsRole() {
	user, err := suite.service.CreateUser(CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Secret12",
	})

	suite.NoError(err)
	suite.Equal(models.RoleUser, user.Role)
	suite.NotEqual("Secret12", user.PasswordHash)
}

func (suite *UserServiceTestSuite) TestCreateUserInvalidRole() {
	_, err := suite.service.CreateUser(CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Secret12",
		Role:     "superuser",
	})

	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *UserServiceTestSuite) TestUpdateUserPartial() {
	user := createTestUser(&suite.Suite, suite.db, "alice")

	name := "Alice"
	updated, err := suite.service.UpdateUser(user.ID, UpdateUserInput{Name: &name})

	suite.NoError(err)
	suite.Equal("Alice", updated.Name)
	suite.Equal("alice", updated.Username)
	suite.Equal("alice@example.com", updated.Email)
}

func (suite *UserServiceTestSuite) TestUpdateUserTakenEmail() {
	createTestUser(&suite.Suite, suite.db, "alice")
	bob := createTestUser(&suite.Suite, suite.db, "bob")

	email := "alice@example.com"
	_, err := suite.service.UpdateUser(bob.ID, UpdateUserInput{Email: &email})

	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *UserServiceTestSuite) TestUpdateUserKeepingOwnEmail() {
	user := createTestUser(&suite.Suite, suite.db, "alice")

	email := "alice@example.com"
	name := "Alice"
	_, err := suite.service.UpdateUser(user.ID, UpdateUserInput{Email: &email, Name: &name})

	suite.NoError(err)
}

func (suite *UserServiceTestSuite) TestDeleteUserCascades() {
	user := createTestUser(&suite.Suite, suite.db, "alice")
	project := createTestProject(&suite.Suite, suite.db, "Website", user.ID)
	status := createTestStatus(&suite.Suite, suite.db, "To Do")
	task := createTestTask(&suite.Suite, suite.db, "assigned", project.ID, status.ID)
	suite.Require().NoError(suite.db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: user.ID}).Error)

	suite.NoError(suite.service.DeleteUser(user.ID))

	var users, members, assignments int64
	suite.db.Model(&models.User{}).Count(&users)
	suite.db.Model(&models.ProjectMember{}).Count(&members)
	suite.db.Model(&models.TaskAssignment{}).Count(&assignments)
	suite.Zero(users)
	suite.Zero(members)
	suite.Zero(assignments)

	// The project and the task outlive their creator.
	var projects, tasks int64
	suite.db.Model(&models.Project{}).Count(&projects)
	suite.db.Model(&models.Task{}).Count(&tasks)
	suite.Equal(int64(1), projects)
	suite.Equal(int64(1), tasks)
}

func (suite *UserServiceTestSuite) TestDeleteUserMissing() {
	err := suite.service.DeleteUser(404)
	suite.True(apperrors.IsKind(err, apperrors.KindNotFound))
}

func (suite *UserServiceTestSuite) TestGetUserTasksSkipsArchived() {
	user := createTestUser(&suite.Suite, suite.db, "alice")
	project := createTestProject(&suite.Suite, suite.db, "Website", user.ID)
	status := createTestStatus(&suite.Suite, suite.db, "To Do")
	live := createTestTask(&suite.Suite, suite.db, "live", project.ID, status.ID)
	archived := createTestTask(&suite.Suite, suite.db, "archived", project.ID, status.ID)
	suite.Require().NoError(suite.db.Create(&models.TaskAssignment{TaskID: live.ID, UserID: user.ID}).Error)
	suite.Require().NoError(suite.db.Create(&models.TaskAssignment{TaskID: archived.ID, UserID: user.ID}).Error)
	suite.Require().NoError(suite.db.Model(&models.Task{}).Where("id = ?", archived.ID).Update("deleted", true).Error)

	tasks, err := suite.service.GetUserTasks(user.ID)

	suite.NoError(err)
	suite.Require().Len(tasks, 1)
	suite.Equal(live.ID, tasks[0].ID)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/taskflow/taskflow-api/internal/apperrors"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProjectService

	creator *models.User
}

func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.db = openTestDB(&suite.Suite)
	suite.service = NewProjectService(repository.NewProjectRepository(suite.db))
	suite.creator = createTestUser(&suite.Suite, suite.db, "alice")
}

func (suite *ProjectServiceTestSuite) TearDownTest() {
	closeTestDB(&suite.Suite, suite.db)
}

func (suite *ProjectServiceTestSuite) memberIDs(projectID uint64) []uint64 {
	var ids []uint64
	suite.db.Model(&models.ProjectMember{}).
		Where("project_id = ?", projectID).
		Order("user_id ASC").
		Pluck("user_id", &ids)
	return ids
}

func (suite *ProjectServiceTestSuite) TestCreateProjectMembershipIsCreatorUnionUsers() {
	bob := createTestUser(&suite.Suite, suite.db, "bob")

	project, err := suite.service.CreateProject(CreateProjectInput{
		Name:    "Website",
		UserIDs: []uint64{bob.ID, bob.ID, suite.creator.ID},
	}, suite.creator.ID)

	suite.NoError(err)
	suite.Equal(suite.creator.ID, project.CreatorID)
	suite.Equal([]uint64{suite.creator.ID, bob.ID}, suite.memberIDs(project.ID))
}

func (suite *ProjectServiceTestSuite) TestCreateProjectUnknownUsersLeavesNothingBehind() {
	_, err := suite.service.CreateProject(CreateProjectInput{
		Name:    "Ghost",
		UserIDs: []uint64{12345},
	}, suite.creator.ID)

	suite.Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
	suite.Equal("One or more user_ids do not exist", err.Error())

	var projects int64
	suite.db.Model(&models.Project{}).Count(&projects)
	suite.Zero(projects)
}

func (suite *ProjectServiceTestSuite) TestUpdateProjectMergesFields() {
	project := createTestProject(&suite.Suite, suite.db, "Old name", suite.creator.ID)

	description := "fresh description"
	updated, err := suite.service.UpdateProject(project.ID, UpdateProjectInput{Description: &description})

	suite.NoError(err)
	suite.Equal("Old name", updated.Name)
	suite.Equal(description, updated.Description)
}

func (suite *ProjectServiceTestSuite) TestUpdateProjectEmptyMemberListKeepsCreator() {
	bob := createTestUser(&suite.Suite, suite.db, "bob")
	project := createTestProject(&suite.Suite, suite.db, "Team", suite.creator.ID)
	suite.Require().NoError(suite.db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: bob.ID}).Error)

	empty := []uint64{}
	_, err := suite.service.UpdateProject(project.ID, UpdateProjectInput{UserIDs: &empty})

	suite.NoError(err)
	suite.Equal([]uint64{suite.creator.ID}, suite.memberIDs(project.ID))
}

func (suite *ProjectServiceTestSuite) TestUpdateProjectMissing() {
	name := "whatever"
	_, err := suite.service.UpdateProject(999, UpdateProjectInput{Name: &name})

	suite.True(apperrors.IsKind(err, apperrors.KindNotFound))
}

func (suite *ProjectServiceTestSuite) TestDeleteProjectCascades() {
	tag := createTestTag(&suite.Suite, suite.db, "infra")
	status := createTestStatus(&suite.Suite, suite.db, "To Do")
	project := createTestProject(&suite.Suite, suite.db, "Doomed", suite.creator.ID)
	task := createTestTask(&suite.Suite, suite.db, "orphan-to-be", project.ID, status.ID)
	suite.Require().NoError(suite.db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: suite.creator.ID}).Error)
	suite.Require().NoError(suite.db.Create(&models.TaskTag{TaskID: task.ID, TagID: tag.ID}).Error)

	suite.NoError(suite.service.DeleteProject(project.ID))

	var projects, tasks, members, assignments, links int64
	suite.db.Model(&models.Project{}).Count(&projects)
	suite.db.Model(&models.Task{}).Count(&tasks)
	suite.db.Model(&models.ProjectMember{}).Count(&members)
	suite.db.Model(&models.TaskAssignment{}).Count(&assignments)
	suite.db.Model(&models.TaskTag{}).Count(&links)
	suite.Zero(projects)
	suite.Zero(tasks)
	suite.Zero(members)
	suite.Zero(assignments)
	suite.Zero(links)

	// The user and the tag survive the cascade.
	var users, tags int64
	suite.db.Model(&models.User{}).Count(&users)
	suite.db.Model(&models.Tag{}).Count(&tags)
	suite.Equal(int64(1), users)
	suite.Equal(int64(1), tags)
}

func (suite *ProjectServiceTestSuite) TestDeleteProjectMissing() {
	err := suite.service.DeleteProject(999)
	suite.True(apperrors.IsKind(err, apperrors.KindNotFound))
}

func (suite *ProjectServiceTestSuite) TestAddUsersIsIdempotent() {
	bob := createTestUser(&suite.Suite, suite.db, "bob")
	project := createTestProject(&suite.Suite, suite.db, "Team", suite.creator.ID)

	suite.NoError(suite.service.AddUsers(project.ID, []uint64{bob.ID}))
	suite.NoError(suite.service.AddUsers(project.ID, []uint64{bob.ID}))

	suite.Equal([]uint64{suite.creator.ID, bob.ID}, suite.memberIDs(project.ID))
}

func (suite *ProjectServiceTestSuite) TestRemoveUserAbsentIsNoOp() {
	project := createTestProject(&suite.Suite, suite.db, "Team", suite.creator.ID)

	suite.NoError(suite.service.RemoveUser(project.ID, 777))
	suite.Equal([]uint64{suite.creator.ID}, suite.memberIDs(project.ID))
}

func (suite *ProjectServiceTestSuite) TestRemoveUserMissingProject() {
	err := suite.service.RemoveUser(999, suite.creator.ID)
	suite.True(apperrors.IsKind(err, apperrors.KindNotFound))
}

func (suite *ProjectServiceTestSuite) TestListProjectsCounts() {
	bob := createTestUser(&suite.Suite, suite.db, "bob")
	status := createTestStatus(&suite.Suite, suite.db, "To Do")
	project := createTestProject(&suite.Suite, suite.db, "Website", suite.creator.ID)
	suite.Require().NoError(suite.db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: bob.ID}).Error)
	createTestTask(&suite.Suite, suite.db, "live", project.ID, status.ID)
	archived := createTestTask(&suite.Suite, suite.db, "archived", project.ID, status.ID)
	suite.Require().NoError(suite.db.Model(&models.Task{}).Where("id = ?", archived.ID).Update("deleted", true).Error)

	summaries, err := suite.service.ListProjects()

	suite.NoError(err)
	suite.Require().Len(summaries, 1)
	suite.Equal("alice", summaries[0].CreatorUsername)
	suite.Equal(int64(2), summaries[0].NumCollaborators)
	suite.Equal(int64(1), summaries[0].NumTasks)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}

package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/taskflow/taskflow-api/internal/apperrors"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService

	user    *models.User
	project *models.Project
	status  *models.TaskStatus
}

func (suite *TaskServiceTestSuite) SetupTest() {
	suite.db = openTestDB(&suite.Suite)
	suite.service = NewTaskService(repository.NewTaskRepository(suite.db))

	suite.user = createTestUser(&suite.Suite, suite.db, "alice")
	suite.project = createTestProject(&suite.Suite, suite.db, "Website", suite.user.ID)
	suite.status = createTestStatus(&suite.Suite, suite.db, "To Do")
}

func (suite *TaskServiceTestSuite) TearDownTest() {
	closeTestDB(&suite.Suite, suite.db)
}

func (suite *TaskServiceTestSuite) taskCount() int64 {
	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	return count
}

func (suite *TaskServiceTestSuite) TestCreateTaskDefaults() {
	task, err := suite.service.CreateTask(CreateTaskInput{
		Description: "Write the landing page",
		ProjectID:   suite.project.ID,
		StatusID:    suite.status.ID,
	})

	suite.NoError(err)
	suite.Equal(models.PriorityLow, task.Priority)
	suite.False(task.Completed)
	suite.Equal("To Do", task.Status.Name)
}

func (suite *TaskServiceTestSuite) TestCreateTaskUnknownProjectLeavesNothingBehind() {
	before := suite.taskCount()

	_, err := suite.service.CreateTask(CreateTaskInput{
		Description: "Orphan",
		ProjectID:   9999,
		StatusID:    suite.status.ID,
		UserIDs:     []uint64{suite.user.ID},
	})

	suite.Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindNotFound))
	suite.Equal("Project not found", err.Error())
	suite.Equal(before, suite.taskCount())
}

func (suite *TaskServiceTestSuite) TestCreateTaskUnknownUsersRollsBackTask() {
	before := suite.taskCount()

	_, err := suite.service.CreateTask(CreateTaskInput{
		Description: "Half-made",
		ProjectID:   suite.project.ID,
		StatusID:    suite.status.ID,
		UserIDs:     []uint64{suite.user.ID, 4242},
	})

	suite.Error(err)
	suite.Equal("One or more users not found", err.Error())
	suite.Equal(before, suite.taskCount())

	var assignments int64
	suite.db.Model(&models.TaskAssignment{}).Count(&assignments)
	suite.Zero(assignments)
}

func (suite *TaskServiceTestSuite) TestCreateTaskDuplicateTagIDs() {
	tag := createTestTag(&suite.Suite, suite.db, "urgent")

	task, err := suite.service.CreateTask(CreateTaskInput{
		Description: "Tagged twice",
		ProjectID:   suite.project.ID,
		StatusID:    suite.status.ID,
		TagIDs:      []uint64{tag.ID, tag.ID},
	})

	suite.NoError(err)

	var links int64
	suite.db.Model(&models.TaskTag{}).Where("task_id = ?", task.ID).Count(&links)
	suite.Equal(int64(1), links)
	suite.Len(task.TagLinks, 1)
}

func (suite *TaskServiceTestSuite) TestCreateTaskInvalidPriority() {
	_, err := suite.service.CreateTask(CreateTaskInput{
		Description: "Bad priority",
		ProjectID:   suite.project.ID,
		StatusID:    suite.status.ID,
		Priority:    "urgent",
	})

	suite.Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *TaskServiceTestSuite) TestListTasksFiltersAndPagination() {
	other := createTestProject(&suite.Suite, suite.db, "Backend", suite.user.ID)
	for i := 0; i < 12; i++ {
		createTestTask(&suite.Suite, suite.db, "task", suite.project.ID, suite.status.ID)
	}
	createTestTask(&suite.Suite, suite.db, "elsewhere", other.ID, suite.status.ID)

	projectID := suite.project.ID
	tasks, total, err := suite.service.ListTasks(ListTasksInput{
		ProjectID: &projectID,
		Page:      2,
		PageSize:  10,
	})

	suite.NoError(err)
	suite.Equal(int64(12), total)
	suite.Len(tasks, 2)
}

func (suite *TaskServiceTestSuite) TestListTasksByAssignee() {
	bob := createTestUser(&suite.Suite, suite.db, "bob")
	mine := createTestTask(&suite.Suite, suite.db, "mine", suite.project.ID, suite.status.ID)
	createTestTask(&suite.Suite, suite.db, "unassigned", suite.project.ID, suite.status.ID)
	suite.Require().NoError(suite.db.Create(&models.TaskAssignment{TaskID: mine.ID, UserID: bob.ID}).Error)

	tasks, total, err := suite.service.ListTasks(ListTasksInput{UserID: &bob.ID, Page: 1, PageSize: 10})

	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(tasks, 1)
	suite.Equal(mine.ID, tasks[0].ID)
}

func (suite *TaskServiceTestSuite) TestArchiveHidesTask() {
	task := createTestTask(&suite.Suite, suite.db, "to archive", suite.project.ID, suite.status.ID)

	suite.NoError(suite.service.ArchiveTask(task.ID))

	_, err := suite.service.GetTask(task.ID)
	suite.True(apperrors.IsKind(err, apperrors.KindNotFound))

	_, total, err := suite.service.ListTasks(ListTasksInput{Page: 1, PageSize: 10})
	suite.NoError(err)
	suite.Zero(total)

	// The row itself survives.
	suite.Equal(int64(1), suite.taskCount())
}

func (suite *TaskServiceTestSuite) TestArchiveTwice() {
	task := createTestTask(&suite.Suite, suite.db, "gone", suite.project.ID, suite.status.ID)

	suite.NoError(suite.service.ArchiveTask(task.ID))
	err := suite.service.ArchiveTask(task.ID)
	suite.True(apperrors.IsKind(err, apperrors.KindNotFound))
}

func (suite *TaskServiceTestSuite) TestUpdateTaskMergesFields() {
	task := createTestTask(&suite.Suite, suite.db, "original", suite.project.ID, suite.status.ID)

	completed := true
	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{Completed: &completed})

	suite.NoError(err)
	suite.True(updated.Completed)
	suite.Equal("original", updated.Description)
	suite.Equal(suite.status.ID, updated.StatusID)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskReplacesRelations() {
	bob := createTestUser(&suite.Suite, suite.db, "bob")
	carol := createTestUser(&suite.Suite, suite.db, "carol")
	task := createTestTask(&suite.Suite, suite.db, "handover", suite.project.ID, suite.status.ID)
	suite.Require().NoError(suite.db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: bob.ID}).Error)

	userIDs := []uint64{carol.ID}
	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{UserIDs: &userIDs})

	suite.NoError(err)
	suite.Require().Len(updated.Assignments, 1)
	suite.Equal(carol.ID, updated.Assignments[0].UserID)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskClearsRelationsWithEmptySlice() {
	bob := createTestUser(&suite.Suite, suite.db, "bob")
	task := createTestTask(&suite.Suite, suite.db, "dropped", suite.project.ID, suite.status.ID)
	suite.Require().NoError(suite.db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: bob.ID}).Error)

	empty := []uint64{}
	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{UserIDs: &empty})

	suite.NoError(err)
	suite.Empty(updated.Assignments)
}

func (suite *TaskServiceTestSuite) TestDeleteTaskRemovesJoinRows() {
	tag := createTestTag(&suite.Suite, suite.db, "infra")
	task := createTestTask(&suite.Suite, suite.db, "doomed", suite.project.ID, suite.status.ID)
	suite.Require().NoError(suite.db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: suite.user.ID}).Error)
	suite.Require().NoError(suite.db.Create(&models.TaskTag{TaskID: task.ID, TagID: tag.ID}).Error)

	suite.NoError(suite.service.DeleteTask(task.ID))

	var assignments, links int64
	suite.db.Model(&models.TaskAssignment{}).Where("task_id = ?", task.ID).Count(&assignments)
	suite.db.Model(&models.TaskTag{}).Where("task_id = ?", task.ID).Count(&links)
	suite.Zero(assignments)
	suite.Zero(links)
	suite.Zero(suite.taskCount())
}

func (suite *TaskServiceTestSuite) TestAddUsersIsIdempotent() {
	task := createTestTask(&suite.Suite, suite.db, "shared", suite.project.ID, suite.status.ID)

	suite.NoError(suite.service.AddUsers(task.ID, []uint64{suite.user.ID}))
	suite.NoError(suite.service.AddUsers(task.ID, []uint64{suite.user.ID}))

	users, err := suite.service.GetUsers(task.ID)
	suite.NoError(err)
	suite.Len(users, 1)
}

func (suite *TaskServiceTestSuite) TestRemoveUserAbsentIsNoOp() {
	task := createTestTask(&suite.Suite, suite.db, "lonely", suite.project.ID, suite.status.ID)

	suite.NoError(suite.service.RemoveUser(task.ID, suite.user.ID))
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
